package core

// execArithmetic dispatches the thirteen arithmetic opcodes. Every
// member of this group reads two numeric source operands (or one, for
// the unary members) and writes its result to A.
func (c *CPU) execArithmetic(ins Instruction) error {
	switch ins.Operation {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpMin, OpMax, OpAdc, OpSbc:
		a, err := c.resolveChecked(ins.Modes[0], ins.Words[0], numericSourceModes)
		if err != nil {
			return err
		}
		b, err := c.resolveChecked(ins.Modes[1], ins.Words[1], numericSourceModes)
		if err != nil {
			return err
		}
		return c.execBinaryArithmetic(ins.Operation, a.Value, b.Value)

	case OpSqt, OpCbt, OpSqr, OpCbe:
		a, err := c.resolveChecked(ins.Modes[0], ins.Words[0], numericSourceModes)
		if err != nil {
			return err
		}
		return c.execUnaryArithmetic(ins.Operation, a.Value)
	}
	return IllegalInstruction
}

func (c *CPU) execBinaryArithmetic(op Operation, a, b uint32) error {
	switch op {
	case OpAdd:
		sum := uint64(a) + uint64(b)
		overflow := signBit32(a) == signBit32(b) && signBit32(uint32(sum)) != signBit32(a)
		c.setArithmeticFlags(sum, overflow, &c.Registers.A)

	case OpSub:
		diff := int64(a) - int64(b)
		// Carry records that a borrow occurred, mirroring add's
		// carry-out.
		c.Status.Carry = diff < 0
		result := uint32(diff)
		c.Status.Zero = result == 0
		c.Status.Overflow = signBit32(a) != signBit32(b) && signBit32(result) != signBit32(a)
		c.Status.Negative = signBit32(result)
		c.Registers.A = result

	case OpMul:
		product := uint64(a) * uint64(b)
		// Product-sign rule: same-sign operands must yield a
		// non-negative product and different-sign operands a negative
		// one; anything else means the truncated 32-bit result wrapped.
		sameSign := signBit32(a) == signBit32(b)
		negativeResult := signBit32(uint32(product))
		overflow := sameSign == negativeResult
		c.setArithmeticFlags(product, overflow, &c.Registers.A)

	case OpDiv:
		if b == 0 {
			return DivideByZero
		}
		quotient := a / b
		c.Status.Carry = false
		c.Status.Zero = quotient == 0
		c.Status.Overflow = a == 128 && b == 255
		c.Status.Negative = signBit32(quotient)
		c.Registers.A = quotient

	case OpMod:
		if b == 0 {
			return DivideByZero
		}
		remainder := a % b
		c.Status.Zero = remainder == 0
		c.Status.Negative = signBit32(remainder)
		c.Registers.A = remainder

	case OpMin:
		result := a
		if b < a {
			result = b
		}
		c.Status.Zero = result == 0
		c.Status.Negative = signBit32(result)
		c.Registers.A = result

	case OpMax:
		result := a
		if b > a {
			result = b
		}
		c.Status.Zero = result == 0
		c.Status.Negative = signBit32(result)
		c.Registers.A = result

	case OpAdc:
		carryIn := uint64(0)
		if c.Status.Carry {
			carryIn = 1
		}
		sum := uint64(a) + uint64(b) + carryIn
		overflow := signBit32(a) == signBit32(b) && signBit32(uint32(sum)) != signBit32(a)
		c.setArithmeticFlags(sum, overflow, &c.Registers.A)

	case OpSbc:
		borrowIn := int64(1)
		if c.Status.Carry {
			borrowIn = 0
		}
		diff := int64(a) - int64(b) - borrowIn
		c.Status.Carry = diff < 0
		result := uint32(diff)
		c.Status.Zero = result == 0
		c.Status.Overflow = signBit32(a) != signBit32(b) && signBit32(result) != signBit32(a)
		c.Status.Negative = signBit32(result)
		c.Registers.A = result
	}
	return nil
}

func (c *CPU) execUnaryArithmetic(op Operation, a uint32) error {
	switch op {
	case OpSqt:
		result := isqrt(a)
		c.Status.Zero = result == 0
		c.Registers.A = result

	case OpCbt:
		result := icbrt(a)
		c.Status.Zero = result == 0
		c.Registers.A = result

	case OpSqr:
		signed := int32(a)
		mag := signed
		if mag < 0 {
			mag = -mag
		}
		c.Status.Overflow = mag > 11
		result := uint32(signed * signed)
		c.Status.Zero = result == 0
		c.Registers.A = result

	case OpCbe:
		signed := int32(a)
		mag := signed
		if mag < 0 {
			mag = -mag
		}
		c.Status.Overflow = mag > 5
		result := uint32(signed * signed * signed)
		c.Status.Zero = result == 0
		c.Registers.A = result
	}
	return nil
}

// isqrt returns floor(sqrt(n)) using integer-only Newton's method.
func isqrt(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	x := uint64(n)
	r := x
	for {
		next := (r + x/r) / 2
		if next >= r {
			break
		}
		r = next
	}
	return uint32(r)
}

// icbrt returns floor(cbrt(n)) by binary search over uint32.
func icbrt(n uint32) uint32 {
	var lo, hi uint32 = 0, 1625 // 1626^3 > max uint32, so the root is at most 1625
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if uint64(mid)*uint64(mid)*uint64(mid) <= uint64(n) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
