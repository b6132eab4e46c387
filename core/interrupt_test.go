package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// divByZeroROM is one instruction: div #1, #0 (op 0x013, modes
// Immediate,Immediate,Implied).
func divByZeroROM() []byte {
	ins := Instruction{
		Operation: OpDiv,
		Modes:     [3]Addressing{Immediate, Immediate, Implied},
		Words:     [3]uint32{1, 0, 0},
	}
	encoded := ins.Encode()
	return encoded[:]
}

func jamROM() []byte {
	ins := Instruction{Operation: OpJam, Modes: [3]Addressing{Implied, Implied, Implied}}
	encoded := ins.Encode()
	return encoded[:]
}

func TestInterruptEngineDispatchesToPrimaryHandler(t *testing.T) {
	cpu := NewCPU(0)
	require.NoError(t, cpu.LoadROM(divByZeroROM()))
	cpu.PokeWord(VectorInterrupt, 0x00000220)

	require.NoError(t, cpu.Tick())

	require.Equal(t, uint32(0x00000220), cpu.ProgramCounter)
	require.True(t, cpu.Status.Interrupt)
	require.False(t, cpu.Status.DoubleFault)
	// LoadROM itself saves one reset frame before any instruction
	// runs; the fault dispatch pushes a second frame on top of it.
	frames := cpu.SystemStack.Frames()
	require.Len(t, frames, 2)
	require.Equal(t, uint32(ROMBase), frames[len(frames)-1].PC)
}

func TestDoubleFaultEscalation(t *testing.T) {
	cpu := NewCPU(0)
	require.NoError(t, cpu.LoadROM(divByZeroROM()))
	cpu.PokeWord(VectorInterrupt, 0x00000220)
	cpu.PokeWord(VectorDoubleFault, 0x00000240)
	// Install jam at the primary handler address so the second tick
	// double-faults.
	jam := jamROM()
	copy(cpu.Memory[0x220:], jam)

	require.NoError(t, cpu.Tick()) // dispatch to primary handler
	require.NoError(t, cpu.Tick()) // handler runs jam -> double fault

	require.True(t, cpu.Status.DoubleFault)
	require.Equal(t, uint32(Failure), cpu.Registers.R14)
	require.Equal(t, uint32(0x00000240), cpu.ProgramCounter)
}

func TestTripleFaultPropagatesToHost(t *testing.T) {
	cpu := NewCPU(0)
	require.NoError(t, cpu.LoadROM(jamROM()))
	cpu.PokeWord(VectorInterrupt, 0x220)
	cpu.PokeWord(VectorDoubleFault, 0x240)
	copy(cpu.Memory[0x220:], jamROM())
	copy(cpu.Memory[0x240:], jamROM())

	require.NoError(t, cpu.Tick()) // -> Handling
	require.NoError(t, cpu.Tick()) // -> Double-faulted
	err := cpu.Tick()              // jam while double-faulted: fatal, propagates
	require.Equal(t, Failure, err)
}

func TestNoHandlerConfiguredSurfacesFaultDirectly(t *testing.T) {
	cpu := NewCPU(0)
	require.NoError(t, cpu.LoadROM(divByZeroROM()))
	err := cpu.Tick()
	require.Equal(t, DivideByZero, err)
	require.False(t, cpu.Status.Interrupt)
}

func TestMaskedFaultIsDroppedWhenInterruptDisableSet(t *testing.T) {
	// IllegalInstruction is maskable; an unknown opcode under
	// interrupt_disable should be silently absorbed and PC should
	// simply advance, leaving status otherwise unchanged.
	cpu := NewCPU(0)
	badIns := Instruction{Operation: Operation(0xFFF), Modes: [3]Addressing{Implied, Implied, Implied}}
	encoded := badIns.Encode()
	require.NoError(t, cpu.LoadROM(encoded[:]))
	cpu.PokeWord(VectorInterrupt, 0x220) // handler configured but fault is masked first
	cpu.Status.InterruptDisable = true

	pcBefore := cpu.ProgramCounter
	require.NoError(t, cpu.Tick())
	require.Equal(t, pcBefore+InstructionSize, cpu.ProgramCounter)
	require.False(t, cpu.Status.Interrupt)
}

func TestIrtReversesOneInterruptLevel(t *testing.T) {
	cpu := NewCPU(0)
	require.NoError(t, cpu.LoadROM(divByZeroROM()))
	cpu.PokeWord(VectorInterrupt, 0x220)
	require.NoError(t, cpu.Tick())
	require.True(t, cpu.Status.Interrupt)

	require.NoError(t, cpu.Irt())
	require.False(t, cpu.Status.Interrupt)
	require.Equal(t, uint32(ROMBase), cpu.ProgramCounter)
}
