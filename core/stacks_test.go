package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserStackPushPullRoundTrip(t *testing.T) {
	cpu := NewCPU(0)
	cpu.StackPointer = UserStackTop
	spBefore := cpu.StackPointer

	require.NoError(t, cpu.userStackPushDword(0x7F))
	val, err := cpu.userStackPullDword()
	require.NoError(t, err)
	require.Equal(t, uint32(0x7F), val)
	require.Equal(t, spBefore, cpu.StackPointer)
}

// TestUserStackPushPullRoundTripDistinctBytes guards against a
// byte-swap between the push and pull halves: the two low bytes here
// are distinct and non-zero, so reading them back in the wrong order
// changes the value.
func TestUserStackPushPullRoundTripDistinctBytes(t *testing.T) {
	cpu := NewCPU(0)
	cpu.StackPointer = UserStackTop
	spBefore := cpu.StackPointer

	require.NoError(t, cpu.userStackPushDword(0x1234))
	val, err := cpu.userStackPullDword()
	require.NoError(t, err)
	require.Equal(t, uint32(0x1234), val)
	require.Equal(t, spBefore, cpu.StackPointer)
}

// TestUserStackPushPullRoundTripFullWidth confirms all 32 bits
// survive the round trip, not just the low 16.
func TestUserStackPushPullRoundTripFullWidth(t *testing.T) {
	cpu := NewCPU(0)
	cpu.StackPointer = UserStackTop
	spBefore := cpu.StackPointer

	require.NoError(t, cpu.userStackPushDword(0x89ABCDEF))
	val, err := cpu.userStackPullDword()
	require.NoError(t, err)
	require.Equal(t, uint32(0x89ABCDEF), val)
	require.Equal(t, spBefore, cpu.StackPointer)
}

func TestUserStackPushAWritesByteAtOriginalSP(t *testing.T) {
	cpu := NewCPU(0)
	cpu.StackPointer = UserStackTop
	spBefore := cpu.StackPointer
	cpu.Registers.A = 0x7F

	require.NoError(t, execOne(t, cpu, OpPha, [3]Addressing{Implied, Implied, Implied}, [3]uint32{}))
	require.Equal(t, byte(0x7F), cpu.Memory[spBefore])

	require.NoError(t, execOne(t, cpu, OpPla, [3]Addressing{Implied, Implied, Implied}, [3]uint32{}))
	require.Equal(t, uint32(0x7F), cpu.Registers.A)
	require.Equal(t, spBefore, cpu.StackPointer)
}

func TestUserStackOverflowLeavesSPUnchanged(t *testing.T) {
	cpu := NewCPU(0)
	cpu.StackPointer = UserStackBase + 1
	spBefore := cpu.StackPointer
	err := cpu.userStackPushDword(1)
	require.Equal(t, StackOverflow, err)
	require.Equal(t, spBefore, cpu.StackPointer)
}

func TestUserStackUnderflowLeavesSPUnchanged(t *testing.T) {
	cpu := NewCPU(0)
	cpu.StackPointer = UserStackTop
	spBefore := cpu.StackPointer
	_, err := cpu.userStackPullDword()
	require.Equal(t, StackUnderflow, err)
	require.Equal(t, spBefore, cpu.StackPointer)
}

func TestSystemStackSaveRestoreIsIdentity(t *testing.T) {
	var s SystemStack
	require.NoError(t, s.SaveState(0x1234, 0x55))
	frame, err := s.RestoreState()
	require.NoError(t, err)
	require.Equal(t, uint32(0x1234), frame.PC)
	require.Equal(t, byte(0x55), frame.Status)
}

func TestSystemStackOverflowAtCapacity(t *testing.T) {
	var s SystemStack
	for i := 0; i < SystemStackLimit; i++ {
		require.NoError(t, s.SaveState(uint32(i), 0))
	}
	err := s.SaveState(999, 0)
	require.Equal(t, StackOverflow, err)
	require.Equal(t, SystemStackLimit, s.Depth())
}

func TestSystemStackUnderflowOnEmptyPop(t *testing.T) {
	var s SystemStack
	_, err := s.RestoreState()
	require.Equal(t, StackUnderflow, err)
}

func TestSystemStackPopsInReverseOrder(t *testing.T) {
	var s SystemStack
	require.NoError(t, s.SaveState(1, 0))
	require.NoError(t, s.SaveState(2, 0))
	require.NoError(t, s.SaveState(3, 0))

	for _, want := range []uint32{3, 2, 1} {
		frame, err := s.RestoreState()
		require.NoError(t, err)
		require.Equal(t, want, frame.PC)
	}
}
