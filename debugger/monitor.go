// Package debugger implements a line-oriented monitor over a running
// core.CPU: register/stack inspection, single-step execution,
// disassembly and breakpoints, reusing core's own decoder so what the
// monitor prints always matches what the CPU executes.
package debugger

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/floofi-org/vixen/core"
)

// Monitor wraps a *core.CPU with a small command surface: regs, step,
// disas, mem, break/clear, stack, devices, run, reset, quit.
type Monitor struct {
	CPU *core.CPU
	Out io.Writer

	breakpoints map[uint32]bool
	resetROM    []byte
}

// NewMonitor attaches a monitor to cpu. resetROM is the image `reset`
// reloads, mirroring the debugger's own reset command needing
// something to reset back to since core.CPU has no memory of its
// original ROM once LoadROM returns.
func NewMonitor(cpu *core.CPU, out io.Writer, resetROM []byte) *Monitor {
	return &Monitor{CPU: cpu, Out: out, breakpoints: map[uint32]bool{}, resetROM: resetROM}
}

func (m *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(m.Out, format, args...)
}

// Execute runs one command line and reports whether the monitor
// should keep reading further commands (false for "quit").
func (m *Monitor) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "regs":
		m.cmdRegs()
	case "step":
		return true, m.cmdStep(args)
	case "disas":
		return true, m.cmdDisas(args)
	case "mem":
		return true, m.cmdMem(args)
	case "break":
		return true, m.cmdBreak(args)
	case "clear":
		return true, m.cmdClear(args)
	case "stack":
		m.cmdStack()
	case "devices":
		m.cmdDevices()
	case "run":
		return true, m.cmdRun()
	case "reset":
		return true, m.cmdReset()
	case "quit", "exit":
		return false, nil
	default:
		m.printf("unknown command %q\n", cmd)
	}
	return true, nil
}

func (m *Monitor) cmdRegs() {
	m.CPU.Lock()
	defer m.CPU.Unlock()
	for _, id := range core.AllRegisters {
		m.printf("%-3s = 0x%08X\n", id.String(), m.CPU.Registers.Get(id))
	}
	m.printf("pc  = 0x%08X\n", m.CPU.ProgramCounter)
	m.printf("sp  = 0x%08X\n", m.CPU.StackPointer)
	m.printf("sr  = %s\n", m.CPU.Status.String())
}

func (m *Monitor) cmdStep(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("step: %w", err)
		}
		n = v
	}
	for i := 0; i < n; i++ {
		if err := m.CPU.Tick(); err != nil {
			m.printFault(err)
			return nil
		}
		m.CPU.Lock()
		pc := m.CPU.ProgramCounter
		m.CPU.Unlock()
		if m.breakpoints[pc] {
			m.printf("breakpoint hit at 0x%08X\n", pc)
			return nil
		}
	}
	return nil
}

func (m *Monitor) cmdDisas(args []string) error {
	m.CPU.Lock()
	addr := m.CPU.ProgramCounter
	m.CPU.Unlock()
	count := 8

	if len(args) > 0 {
		v, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
		if err != nil {
			return fmt.Errorf("disas: %w", err)
		}
		addr = uint32(v)
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("disas: %w", err)
		}
		count = v
	}
	for i := 0; i < count; i++ {
		m.printf("0x%08X  %s\n", addr, m.CPU.Disassemble(addr))
		addr += core.InstructionSize
	}
	return nil
}

func (m *Monitor) cmdMem(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("mem: address required")
	}
	addr64, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("mem: %w", err)
	}
	length := 64
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("mem: %w", err)
		}
		length = v
	}
	addr := uint32(addr64)
	m.CPU.Lock()
	start := int(addr)
	if start > len(m.CPU.Memory) {
		start = len(m.CPU.Memory)
	}
	end := start + length
	if end > len(m.CPU.Memory) {
		end = len(m.CPU.Memory)
	}
	if end < start {
		end = start
	}
	data := append([]byte(nil), m.CPU.Memory[start:end]...)
	m.CPU.Unlock()
	m.printf("0x%08X  %s\n", addr, core.ByteDump(data, 16, 11))
	return nil
}

func (m *Monitor) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("break: address required")
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("break: %w", err)
	}
	m.breakpoints[uint32(addr)] = true
	m.printf("breakpoint set at 0x%08X\n", addr)
	return nil
}

func (m *Monitor) cmdClear(args []string) error {
	if len(args) == 0 {
		m.breakpoints = map[uint32]bool{}
		m.printf("all breakpoints cleared\n")
		return nil
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	delete(m.breakpoints, uint32(addr))
	m.printf("breakpoint cleared at 0x%08X\n", addr)
	return nil
}

func (m *Monitor) cmdStack() {
	m.printf("%s", m.CPU.StackTrace())
}

func (m *Monitor) cmdDevices() {
	for _, dev := range m.CPU.IO.Devices() {
		base := dev.BaseAddress()
		end := base + dev.PortCount()*4
		m.printf("%-10s 0x%08X..0x%08X  %d ports\n", dev.Name(), base, end, dev.PortCount())
	}
}

// printFault renders the crash report shown when a fault the
// interrupt engine couldn't route reaches the monitor: the fault
// itself, the full register file, a hex dump of the instruction the
// machine stopped on, and the system-stack unwinding with its root
// cause annotated.
func (m *Monitor) printFault(fault error) {
	m.printf("fault: %s\n", fault)
	m.cmdRegs()

	m.CPU.Lock()
	pc := m.CPU.ProgramCounter
	end := uint64(pc) + core.InstructionSize
	if end > uint64(len(m.CPU.Memory)) {
		end = uint64(len(m.CPU.Memory))
	}
	window := append([]byte(nil), m.CPU.Memory[pc:end]...)
	m.CPU.Unlock()

	m.printf("at 0x%08X  %s\n", pc, core.ByteDump(window, 16, 12))
	m.printf("%s", m.CPU.StackTrace())
}

// cmdRun steps until a breakpoint is hit or a fault reaches the host.
func (m *Monitor) cmdRun() error {
	for {
		if err := m.CPU.Tick(); err != nil {
			m.printFault(err)
			return nil
		}
		m.CPU.Lock()
		pc := m.CPU.ProgramCounter
		m.CPU.Unlock()
		if m.breakpoints[pc] {
			m.printf("breakpoint hit at 0x%08X\n", pc)
			return nil
		}
	}
}

func (m *Monitor) cmdReset() error {
	if m.resetROM == nil {
		return fmt.Errorf("reset: no ROM image to reload")
	}
	return m.CPU.LoadROM(m.resetROM)
}

// Breakpoints returns the sorted set of currently armed breakpoint
// addresses.
func (m *Monitor) Breakpoints() []uint32 {
	out := make([]uint32, 0, len(m.breakpoints))
	for addr := range m.breakpoints {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
