package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func execOne(t *testing.T, cpu *CPU, op Operation, modes [3]Addressing, words [3]uint32) error {
	t.Helper()
	return cpu.execute(Instruction{Operation: op, Modes: modes, Words: words})
}

func TestAddFlagInvariants(t *testing.T) {
	cases := []struct {
		a, b                              uint32
		wantCarry, wantZero, wantOverflow bool
	}{
		{1, 1, false, false, false},
		{0xFFFFFFFF, 1, true, true, false},
		{0x7FFFFFFF, 1, false, false, true}, // signed overflow: positive+positive=negative
		{0x80000000, 0x80000000, true, true, true},
	}
	for _, tc := range cases {
		cpu := NewCPU(4096)
		err := execOne(t, cpu, OpAdd, [3]Addressing{Immediate, Immediate, Implied}, [3]uint32{tc.a, tc.b, 0})
		require.NoError(t, err)
		require.Equal(t, tc.a+tc.b, cpu.Registers.A)
		require.Equal(t, tc.wantCarry, cpu.Status.Carry, "carry for %#x+%#x", tc.a, tc.b)
		require.Equal(t, tc.wantZero, cpu.Status.Zero, "zero for %#x+%#x", tc.a, tc.b)
		require.Equal(t, tc.wantOverflow, cpu.Status.Overflow, "overflow for %#x+%#x", tc.a, tc.b)
	}
}

func TestMulOverflowFollowsProductSignRule(t *testing.T) {
	cases := []struct {
		a, b, wantResult uint32
		wantOverflow     bool
	}{
		// Same-sign operands (both positive) whose truncated 32-bit
		// product wraps into the negative range: overflow.
		{0x10000, 0x8000, 0x80000000, true},
		// Same-sign operands whose truncated product stays
		// non-negative: no overflow, even though the true product
		// vastly exceeds 32 bits.
		{100000, 100000, 1410065408, false},
	}
	for _, tc := range cases {
		cpu := NewCPU(4096)
		err := execOne(t, cpu, OpMul, [3]Addressing{Immediate, Immediate, Implied}, [3]uint32{tc.a, tc.b, 0})
		require.NoError(t, err)
		require.Equal(t, tc.wantResult, cpu.Registers.A, "%#x*%#x", tc.a, tc.b)
		require.Equal(t, tc.wantOverflow, cpu.Status.Overflow, "overflow for %#x*%#x", tc.a, tc.b)
	}
}

func TestDivideByZeroFaultsAndLeavesStateUnchanged(t *testing.T) {
	cpu := NewCPU(4096)
	cpu.Registers.A = 0x1234
	statusBefore := cpu.Status
	err := execOne(t, cpu, OpDiv, [3]Addressing{Immediate, Immediate, Implied}, [3]uint32{5, 0, 0})
	require.Equal(t, DivideByZero, err)
	require.Equal(t, uint32(0x1234), cpu.Registers.A)
	require.Equal(t, statusBefore, cpu.Status)
}

func TestModByZeroFaults(t *testing.T) {
	cpu := NewCPU(4096)
	err := execOne(t, cpu, OpMod, [3]Addressing{Immediate, Immediate, Implied}, [3]uint32{5, 0, 0})
	require.Equal(t, DivideByZero, err)
}

func TestDivSignedOverflowCornerCase(t *testing.T) {
	cpu := NewCPU(4096)
	err := execOne(t, cpu, OpDiv, [3]Addressing{Immediate, Immediate, Implied}, [3]uint32{128, 255, 0})
	require.NoError(t, err)
	require.True(t, cpu.Status.Overflow)
}

func TestSubSetsCarryOnBorrow(t *testing.T) {
	cases := []struct {
		a, b      uint32
		wantCarry bool
	}{
		{5, 3, false},
		{7, 7, false},
		{3, 5, true},
		{0, 1, true},
	}
	for _, tc := range cases {
		cpu := NewCPU(4096)
		err := execOne(t, cpu, OpSub, [3]Addressing{Immediate, Immediate, Implied}, [3]uint32{tc.a, tc.b, 0})
		require.NoError(t, err)
		require.Equal(t, tc.a-tc.b, cpu.Registers.A)
		require.Equal(t, tc.wantCarry, cpu.Status.Carry, "carry for %#x-%#x", tc.a, tc.b)
	}
}

func TestSbcThreadsBorrowThroughCarry(t *testing.T) {
	// With carry clear, sbc subtracts one extra; the borrow lands in
	// carry the same way sub's does.
	cpu := NewCPU(4096)
	err := execOne(t, cpu, OpSbc, [3]Addressing{Immediate, Immediate, Implied}, [3]uint32{5, 5, 0})
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFFFFF), cpu.Registers.A)
	require.True(t, cpu.Status.Carry)

	cpu = NewCPU(4096)
	cpu.Status.Carry = true
	err = execOne(t, cpu, OpSbc, [3]Addressing{Immediate, Immediate, Implied}, [3]uint32{5, 5, 0})
	require.NoError(t, err)
	require.Equal(t, uint32(0), cpu.Registers.A)
	require.False(t, cpu.Status.Carry)
}

func TestLteGtePutRelationInZero(t *testing.T) {
	cases := []struct {
		op                  Operation
		reg, val            uint32
		wantZero, wantCarry bool
	}{
		{OpLte, 3, 5, true, false},
		{OpLte, 5, 5, true, false},
		{OpLte, 7, 5, false, true},
		{OpGte, 7, 5, true, false},
		{OpGte, 5, 5, true, false},
		{OpGte, 3, 5, false, true},
	}
	for _, tc := range cases {
		cpu := NewCPU(4096)
		cpu.Registers.A = tc.reg
		err := execOne(t, cpu, tc.op, [3]Addressing{Immediate, Implied, Implied}, [3]uint32{tc.val, 0, 0})
		require.NoError(t, err)
		require.Equal(t, tc.wantZero, cpu.Status.Zero, "%s zero for %d vs %d", tc.op, tc.reg, tc.val)
		require.Equal(t, tc.wantCarry, cpu.Status.Carry, "%s carry for %d vs %d", tc.op, tc.reg, tc.val)
	}
}

func TestCmpSetsExactRelationFlags(t *testing.T) {
	cases := []struct {
		reg, op                      uint32
		wantZero, wantCarry, wantNeg bool
	}{
		{5, 5, true, true, false},
		{5, 3, false, true, false},
		{3, 5, false, false, true},
	}
	for _, tc := range cases {
		cpu := NewCPU(4096)
		cpu.Registers.A = tc.reg
		err := execOne(t, cpu, OpCmp, [3]Addressing{Immediate, Implied, Implied}, [3]uint32{tc.op, 0, 0})
		require.NoError(t, err)
		require.Equal(t, tc.wantZero, cpu.Status.Zero)
		require.Equal(t, tc.wantCarry, cpu.Status.Carry)
		require.Equal(t, tc.wantNeg, cpu.Status.Negative)
	}
}

func TestMovIsATransferNotACopy(t *testing.T) {
	cpu := NewCPU(4096)
	cpu.Registers.R0 = 42
	cpu.Registers.R1 = 0
	err := execOne(t, cpu, OpMov, [3]Addressing{Direct, Direct, Implied}, [3]uint32{uint32(RegR0), uint32(RegR1), 0})
	require.NoError(t, err)
	require.Equal(t, uint32(0), cpu.Registers.R0)
	require.Equal(t, uint32(42), cpu.Registers.R1)
}

func TestIllegalAddressingModeRejected(t *testing.T) {
	cpu := NewCPU(4096)
	// add only accepts numeric source modes; Implied is not one of them.
	err := execOne(t, cpu, OpAdd, [3]Addressing{Implied, Immediate, Implied}, [3]uint32{uint32(RegA), 1, 0})
	require.Equal(t, IllegalInstruction, err)
}
