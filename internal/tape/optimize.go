package tape

// binaryCSE records a binary instruction with hash-consing, constant folding
// and algebraic identities.
func (t *Tape) binaryCSE(op OpCode, a, b Var) Var {
	ka, aConst := t.constant(a)
	kb, bConst := t.constant(b)

	switch {
	case aConst && bConst:
		return t.Const(eval(op, ka, kb))
	case op == OpAdd && aConst && ka == 0:
		return b
	case (op == OpAdd || op == OpSub) && bConst && kb == 0:
		return a
	case op == OpMul && aConst && ka == 1:
		return b
	case (op == OpMul || op == OpDiv) && bConst && kb == 1:
		return a
	}

	// a+b and a*b are commutative: one canonical operand order
	if (op == OpAdd || op == OpMul) && b < a {
		a, b = b, a
	}
	ins := Instruction{Op: op, A: a, B: b}
	if slot, ok := t.memo[ins]; ok {
		return slot
	}
	slot := t.push(ins, eval(op, t.values[a], t.values[b]))
	t.memo[ins] = slot
	return slot
}

// constant returns the value of v if it is a recorded constant.
func (t *Tape) constant(v Var) (float64, bool) {
	ins := t.code[v]
	if ins.Op != OpConst {
		return 0, false
	}
	return ins.K, true
}

// Optimize returns a new tape holding only the instructions dep depends on,
// plus every input, and the slot of dep on the new tape.
//
// Inputs keep their declaration order so gradients computed on the new tape
// line up with the inputs of t. Current values are carried over.
func (t *Tape) Optimize(dep Var) (*Tape, Var) {
	live := make([]bool, len(t.code))
	live[dep] = true
	for i := int(dep); i >= 0; i-- {
		ins := t.code[i]
		if ins.Op == OpInput {
			live[i] = true
			continue
		}
		if !live[i] || !ins.Op.Binary() {
			continue
		}
		live[ins.A] = true
		live[ins.B] = true
	}
	// inputs recorded after dep do not influence it but still belong to the domain
	for _, slot := range t.inputs {
		live[slot] = true
	}

	out := New()
	out.inputs = make([]Var, len(t.inputs))
	remap := make([]Var, len(t.code))
	for i, ins := range t.code {
		if !live[i] {
			continue
		}
		if ins.Op.Binary() {
			ins.A = remap[ins.A]
			ins.B = remap[ins.B]
		}
		slot := out.push(ins, t.values[i])
		remap[i] = slot
		if ins.Op == OpInput {
			out.inputs[ins.A] = slot
		}
	}
	return out, remap[dep]
}
