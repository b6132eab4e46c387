package core

import (
	"fmt"
	"sync"
)

// CPU is the whole Vixen machine: registers, flat memory, the two
// stacks and the I/O bus. A single mutex guards every field, since
// the debugger and the emulator's host loop both poke at a running
// CPU from outside the tick path.
type CPU struct {
	mu sync.Mutex

	Registers      Registers
	Status         StatusRegister
	ProgramCounter uint32
	StackPointer   uint32

	Memory []byte

	SystemStack SystemStack
	IO          *IOController

	Spec Specification

	Running bool
}

// NewCPU allocates a machine with memorySize bytes of RAM and an
// empty bus. Call LoadROM before ticking it.
func NewCPU(memorySize int) *CPU {
	if memorySize <= 0 {
		memorySize = DefaultMemorySize
	}
	return &CPU{
		Memory: make([]byte, memorySize),
		IO:     NewIOController(),
		Spec:   DefaultSpecification,
	}
}

// AttachDevice maps a device onto the bus.
func (c *CPU) AttachDevice(dev BusDevice) error {
	return c.IO.Add(dev)
}

// LoadROM copies rom into memory starting at ROMBase, writes the
// specification blob, resets the stack pointer and program counter,
// and saves the reset state as the first system-stack frame so a
// stack trace always has a root frame to unwind to.
func (c *CPU) LoadROM(rom []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ROMBase+len(rom) > len(c.Memory) {
		return fmt.Errorf("rom of %d bytes does not fit at 0x%X in a %d-byte machine", len(rom), ROMBase, len(c.Memory))
	}
	copy(c.Memory[ROMBase:], rom)
	writeSpecBlob(c.Memory, c.Spec)

	c.Registers = Registers{}
	c.Status = StatusRegister{}
	c.ProgramCounter = ROMBase
	c.StackPointer = UserStackTop
	c.SystemStack = SystemStack{}
	c.Running = true
	return c.SaveInterruptState()
}

// HasInterruptHandler reports whether a non-zero primary vector is
// configured.
func (c *CPU) HasInterruptHandler() bool {
	word := readWord(c.Memory, VectorInterrupt)
	return word != 0
}

func (c *CPU) vector(addr uint32) uint32 {
	return readWord(c.Memory, addr)
}

// readMemory dispatches to the bus if addr is device-owned, otherwise
// reads straight from RAM. Reads are unrestricted besides the bounds
// check: only writes are confined to the writable window.
func (c *CPU) readMemory(addr uint32) (uint32, error) {
	if c.IO.Contains(addr) {
		return c.IO.ReadBus(addr)
	}
	if uint64(addr)+4 > uint64(len(c.Memory)) {
		return 0, IllegalMemory
	}
	return readWord(c.Memory, addr), nil
}

// writeMemory dispatches to the bus if addr is device-owned,
// otherwise enforces the writable window before writing to RAM.
func (c *CPU) writeMemory(addr uint32, val uint32) error {
	if c.IO.Contains(addr) {
		return c.IO.WriteBus(addr, val)
	}
	if addr < WritableWindowStart || addr > WritableWindowEnd {
		return IllegalMemory
	}
	if uint64(addr)+4 > uint64(len(c.Memory)) {
		return IllegalMemory
	}
	writeWord(c.Memory, addr, val)
	return nil
}

// PokeWord writes directly to memory bypassing the writable-window
// check, for host-side setup: installing interrupt vectors, staging
// test fixtures, loader-time initialization.
func (c *CPU) PokeWord(addr uint32, val uint32) {
	writeWord(c.Memory, addr, val)
}

// PeekWord reads directly from memory bypassing the bus, for
// host-side inspection (debugger memory dumps).
func (c *CPU) PeekWord(addr uint32) uint32 {
	return readWord(c.Memory, addr)
}

// tickUnhandled runs one device tick then fetches and executes a
// single instruction, raising whatever fault either stage produces.
// Devices advance every tick, even while a handler runs, so the
// terminal keeps flushing and the RTC keeps counting; the event a
// device raises mid-handler is discarded, and a maskable event under
// interrupt_disable is dropped without preempting the instruction
// path. This is the non-reentrant half of Tick.
func (c *CPU) tickUnhandled() error {
	if err := c.IO.Tick(); err != nil {
		event, ok := err.(Interrupt)
		switch {
		case c.Status.Interrupt || c.Status.DoubleFault:
			// discarded while a handler is running
		case ok && c.Status.InterruptDisable && event.IsMaskable():
			// masked: dropped before it preempts anything
		default:
			return err
		}
	}

	ins, err := c.FetchInstruction(c.ProgramCounter)
	if err != nil {
		return err
	}
	if err := c.execute(ins); err != nil {
		return err
	}
	c.ProgramCounter += InstructionSize
	return nil
}

// Tick advances the machine by one instruction. A fault with a
// configured handler consumes the tick on dispatch: the saved state
// points at the preempted instruction and handler code begins
// executing on the next Tick call.
func (c *CPU) Tick() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tickLocked()
}

// tickLocked runs one unhandled tick and decides what to do with
// whatever fault comes back: a masked decode/execute fault is dropped
// and the PC steps over the faulting instruction exactly as if it had
// executed cleanly; anything else dispatches to the handler, or
// surfaces straight to the host if none is configured or a double
// fault is already in progress.
func (c *CPU) tickLocked() error {
	err := c.tickUnhandled()
	if err == nil {
		return nil
	}
	interrupt, ok := err.(Interrupt)
	if !ok {
		return err
	}
	if c.Status.InterruptDisable && interrupt.IsMaskable() {
		// Decode and execute both leave PC untouched on failure, so
		// this advance is the only one that runs for the instruction.
		c.ProgramCounter += InstructionSize
		return nil
	}
	if c.Status.DoubleFault || !c.HasInterruptHandler() {
		return interrupt
	}
	return c.handleInterrupt(interrupt)
}

// handleInterrupt saves state and dispatches to the primary or
// double-fault vector, escalating the (interrupt, double_fault) pair
// one level.
func (c *CPU) handleInterrupt(interrupt Interrupt) error {
	if err := c.SaveInterruptState(); err != nil {
		return err
	}
	if c.Status.Interrupt {
		c.Status.DoubleFault = true
		c.Registers.R14 = uint32(interrupt)
		c.ProgramCounter = c.vector(VectorDoubleFault)
		return nil
	}
	c.Status.Interrupt = true
	c.ProgramCounter = c.vector(VectorInterrupt)
	return nil
}

// Irt services the irt instruction: pop one system-stack frame,
// reversing one level of the interrupt state machine.
func (c *CPU) Irt() error {
	wasDoubleFault := c.Status.DoubleFault
	if err := c.RestoreInterruptState(); err != nil {
		return err
	}
	if wasDoubleFault {
		c.Status.DoubleFault = false
	} else {
		c.Status.Interrupt = false
	}
	return nil
}

// StackTrace renders the system stack frame-by-frame, newest first,
// annotating the root cause and double-fault cause.
func (c *CPU) StackTrace() string {
	frames := c.SystemStack.Frames()
	out := ""
	for i := len(frames) - 1; i >= 0; i-- {
		frame := frames[i]
		depthFromTop := len(frames) - 1 - i
		label := "-"
		if c.Status.DoubleFault && depthFromTop == 0 {
			label = "<double fault cause>"
		} else if (c.Status.DoubleFault && depthFromTop == 1) || (!c.Status.DoubleFault && c.Status.Interrupt && depthFromTop == 0) {
			label = "<root cause>"
		}
		out += fmt.Sprintf("#%d  pc=0x%08X  status=%s  %s\n", depthFromTop, frame.PC, StatusFromByte(frame.Status), label)
	}
	return out
}

// Lock/Unlock expose the CPU's mutex to callers that need to hold it
// across several register/memory reads, such as the debugger's
// register dump, without introducing a second locking scheme.
func (c *CPU) Lock()   { c.mu.Lock() }
func (c *CPU) Unlock() { c.mu.Unlock() }
