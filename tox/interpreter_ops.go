package tox

// Operators are defined per concrete operand kind pair; combinations
// outside the table are runtime type errors naming the operator and the
// kinds involved. Number division follows IEEE semantics, so a zero
// divisor yields an infinity or NaN rather than an error.

func (i *Interpreter) evalUnary(e *UnaryExpr) (Value, error) {
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return NewNil(), err
	}
	switch e.Operator {
	case tokenMinus:
		if right.Kind() == KindNumber {
			return NewNumber(-right.Number()), nil
		}
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	}
	return NewNil(), i.errorAt(e.Line(), "unsupported operand for '%s': %s", e.Operator, right.Kind())
}

func (i *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return NewNil(), err
	}
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return NewNil(), err
	}

	// Equality is total: any two values compare, differing kinds compare
	// unequal.
	switch e.Operator {
	case tokenEqualEqual:
		return NewBool(left.Equal(right)), nil
	case tokenBangEqual:
		return NewBool(!left.Equal(right)), nil
	}

	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		if val, ok := numberBinary(e.Operator, left.Number(), right.Number()); ok {
			return val, nil
		}
	case left.Kind() == KindString && right.Kind() == KindString:
		if val, ok := stringBinary(e.Operator, left.Text(), right.Text()); ok {
			return val, nil
		}
	}
	return NewNil(), i.errorAt(e.Line(), "unsupported operands for '%s': %s and %s", e.Operator, left.Kind(), right.Kind())
}

func numberBinary(op TokenType, a, b float64) (Value, bool) {
	switch op {
	case tokenPlus:
		return NewNumber(a + b), true
	case tokenMinus:
		return NewNumber(a - b), true
	case tokenStar:
		return NewNumber(a * b), true
	case tokenSlash:
		return NewNumber(a / b), true
	case tokenGreater:
		return NewBool(a > b), true
	case tokenGreaterEqual:
		return NewBool(a >= b), true
	case tokenLess:
		return NewBool(a < b), true
	case tokenLessEqual:
		return NewBool(a <= b), true
	}
	return NewNil(), false
}

// stringBinary supports concatenation and lexicographic ordering by byte
// order.
func stringBinary(op TokenType, a, b string) (Value, bool) {
	switch op {
	case tokenPlus:
		return NewString(a + b), true
	case tokenGreater:
		return NewBool(a > b), true
	case tokenGreaterEqual:
		return NewBool(a >= b), true
	case tokenLess:
		return NewBool(a < b), true
	case tokenLessEqual:
		return NewBool(a <= b), true
	}
	return NewNil(), false
}
