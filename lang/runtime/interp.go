package runtime

import (
	"github.com/kgann/pixie/lang/bytecode"
)

// Invoke dispatches a call by the callable's variant (spec.md §4.2):
// Code/Closure run the interpreter; NativeFn calls straight through;
// VariadicCode packs surplus args then recurses on its inner callable;
// MultiArityFn selects by arity then recurses; Var dereferences then
// recurses; PolymorphicFn/DoublePolymorphicFn dispatch on argument type(s)
// then recurse. th and rt give the called code access to dynamic-var
// bindings and the arithmetic/equality protocols.
func Invoke(th *Thread, rt *Runtime, callable Value, argv []Value) (Value, error) {
	switch c := callable.(type) {
	case *Code:
		return runCode(th, rt, c, nil, argv)
	case *Closure:
		return runCode(th, rt, c.Code, c, argv)
	case *NativeFn:
		return c.Invoke(argv)
	case *VariadicCode:
		packed, err := c.Pack(argv)
		if err != nil {
			return nil, err
		}
		return Invoke(th, rt, c.Inner, packed)
	case *MultiArityFn:
		fn, err := c.Select(len(argv))
		if err != nil {
			return nil, err
		}
		return Invoke(th, rt, fn, argv)
	case *Var:
		v, err := c.Deref(th.Dynamic())
		if err != nil {
			return nil, err
		}
		return Invoke(th, rt, v, argv)
	case *PolymorphicFn:
		tp := "?"
		if len(argv) > 0 {
			tp = argv[0].Type().Name()
		}
		fn, err := c.Dispatch(argv)
		if err == nil {
			var v Value
			if v, err = Invoke(th, rt, fn, argv); err == nil {
				return v, nil
			}
		}
		return nil, AsEvalError(err).AddFrame(Frame{Method: c.Name, Type: tp})
	case *DoublePolymorphicFn:
		fn, err := c.Dispatch(argv)
		if err == nil {
			var v Value
			if v, err = Invoke(th, rt, fn, argv); err == nil {
				return v, nil
			}
		}
		return nil, AsEvalError(err).AddFrame(Frame{Method: c.Name})
	default:
		return nil, NewEvalError(KindInvariantViolation, "%s is not callable", callable)
	}
}

// execFrame is a single invocation's mutable execution state: the operand
// stack, the argument vector, and the instruction pointer. RECUR,
// LOOP_RECUR, and same-Code TAIL_CALL reuse one execFrame instead of
// allocating a new one, bounding stack growth for self-recursion (spec.md
// §4.1, §8).
type execFrame struct {
	code    *Code
	closure *Closure
	argv    []Value
	stack   []Value
	sp      int
	pc      uint32
}

func (f *execFrame) push(v Value) { f.stack[f.sp] = v; f.sp++ }
func (f *execFrame) pop() Value   { f.sp--; return f.stack[f.sp] }

// debugFrame looks up the source position bracketing pc, if any, producing
// a Frame naming code's symbolic name and that position (spec.md §7: "a
// trace entry naming the current code's symbolic name and source point, if
// a debug-point entry brackets the current IP").
func debugFrame(code *Code, pc uint32) Frame {
	fr := Frame{Code: code.Name()}
	for _, dp := range code.Unit.DebugPoints {
		if dp.Covers(pc) {
			fr.Line, fr.Col, fr.HasPos = dp.Line, dp.Col, true
			break
		}
	}
	return fr
}

// runCode executes code's bytecode with argv as arguments and, if closure is
// non-nil, closure.ClosedOvers available to CLOSED_OVER. It is the sole
// interpreter loop: the stack machine described in spec.md §4.1.
func runCode(th *Thread, rt *Runtime, code *Code, closure *Closure, argv []Value) (Value, error) {
	if err := th.PushCall(Frame{Code: code.Name()}); err != nil {
		return nil, err
	}
	defer th.PopCall()

	f := &execFrame{
		code:    code,
		closure: closure,
		argv:    argv,
		stack:   make([]Value, code.Unit.StackSize),
	}

	v, err := step(th, rt, f)
	if err != nil {
		return nil, AsEvalError(err).AddFrame(debugFrame(code, f.pc))
	}
	return v, nil
}

// step runs f's bytecode to completion: RECUR, LOOP_RECUR, and a same-Code
// TAIL_CALL reset f and loop in place (reusing the execFrame, never growing
// the Go call stack); every other path either returns via RETURN, falls
// through to a normal (possibly cross-Code) TAIL_CALL invocation, or fails.
func step(th *Thread, rt *Runtime, f *execFrame) (result Value, err error) {
	for {
		if err := th.Step(); err != nil {
			return nil, err
		}

		opPC := f.pc
		op, args, next, err := bytecode.Decode(f.code.Unit.Code, f.pc)
		if err != nil {
			return nil, err
		}
		f.pc = next
		arg := firstArg(args)

		switch op {
		case bytecode.LOAD_CONST:
			f.push(f.code.Consts[arg])

		case bytecode.ADD:
			b, a := f.pop(), f.pop()
			v, err := rt.Add(th, a, b)
			if err != nil {
				return nil, err
			}
			f.push(v)

		case bytecode.EQ:
			b, a := f.pop(), f.pop()
			v, err := rt.Eq(a, b)
			if err != nil {
				return nil, err
			}
			f.push(v)

		case bytecode.INVOKE:
			callable, argv := popCall(f, int(arg))
			v, err := Invoke(th, rt, callable, argv)
			if err != nil {
				return nil, err
			}
			f.push(v)

		case bytecode.TAIL_CALL:
			callable, argv := popCall(f, int(arg))
			if sameFrame(f, callable) {
				if c, ok := callable.(*Closure); ok {
					f.closure = c
				}
				f.argv = argv
				f.sp = 0
				f.pc = 0
				continue
			}
			v, err := Invoke(th, rt, callable, argv)
			if err != nil {
				return nil, err
			}
			return v, nil

		case bytecode.DUP_NTH:
			f.push(f.stack[f.sp-1-int(arg)])

		case bytecode.RETURN:
			return f.pop(), nil

		case bytecode.COND_BR:
			v := f.pop()
			if !truthy(v) {
				f.pc = jumpTarget(opPC, arg)
			}

		case bytecode.JMP:
			f.pc = jumpTarget(opPC, arg)

		case bytecode.CLOSED_OVER:
			if f.closure == nil {
				return nil, NewEvalError(KindInvariantViolation, "CLOSED_OVER outside a closure")
			}
			f.push(f.closure.ClosedOvers[arg])

		case bytecode.MAKE_CLOSURE:
			k, n := args[0], int(args[1])
			code, ok := f.code.Consts[k].(*Code)
			if !ok {
				return nil, NewEvalError(KindInvariantViolation, "MAKE_CLOSURE: const %d is not a Code", k)
			}
			captures := popN(f, n)
			f.push(NewClosure(code, captures))

		case bytecode.SET_VAR:
			v := f.pop()
			vr, ok := f.code.Consts[arg].(*Var)
			if !ok {
				return nil, NewEvalError(KindInvariantViolation, "SET_VAR: const %d is not a Var", arg)
			}
			vr.SetRoot(v)
			f.push(vr)

		case bytecode.POP:
			f.pop()

		case bytecode.DEREF_VAR:
			vr, ok := f.code.Consts[arg].(*Var)
			if !ok {
				return nil, NewEvalError(KindInvariantViolation, "DEREF_VAR: const %d is not a Var", arg)
			}
			v, err := vr.Deref(th.Dynamic())
			if err != nil {
				return nil, err
			}
			f.push(v)

		case bytecode.INSTALL:
			method := f.pop()
			tp := f.pop()
			polyfn := f.pop()
			pf, ok := polyfn.(*PolymorphicFn)
			if !ok {
				return nil, NewEvalError(KindInvariantViolation, "INSTALL: not a PolymorphicFn")
			}
			tv, ok := tp.(*Type)
			if !ok {
				return nil, NewEvalError(KindInvariantViolation, "INSTALL: not a Type")
			}
			mc, ok := method.(Callable)
			if !ok {
				return nil, NewEvalError(KindInvariantViolation, "INSTALL: method is not callable")
			}
			pf.Extend(tv, mc)

		case bytecode.RECUR:
			f.argv = popN(f, int(arg))
			f.sp = 0
			f.pc = 0
			continue

		case bytecode.LOOP_RECUR:
			// No dedicated loop-entry-marking opcode exists in this opcode
			// set (spec.md §9 flags the stack protocol here as ambiguous);
			// every loop-entry point this core can express coincides with
			// the frame's own entry, so LOOP_RECUR behaves like RECUR. See
			// DESIGN.md.
			f.argv = popN(f, int(arg))
			f.sp = 0
			f.pc = 0
			continue

		case bytecode.ARG:
			f.push(f.argv[arg])

		case bytecode.PUSH_SELF:
			if f.closure != nil {
				f.push(f.closure)
			} else {
				f.push(f.code)
			}

		case bytecode.POP_UP_N:
			top := f.pop()
			f.sp -= int(arg)
			f.push(top)

		case bytecode.MAKE_MULTI_ARITY:
			v, err := makeMultiArity(f)
			if err != nil {
				return nil, err
			}
			f.push(v)

		case bytecode.MAKE_VARIADIC:
			callable, ok := f.pop().(Callable)
			if !ok {
				return nil, NewEvalError(KindInvariantViolation, "MAKE_VARIADIC: not callable")
			}
			f.push(NewVariadicCode(callable, int(arg)))

		default:
			return nil, NewEvalError(KindInvariantViolation, "unimplemented opcode %s", op)
		}
	}
}

// firstArg returns args[0], or 0 if the opcode took no operand.
func firstArg(args []uint32) uint32 {
	if len(args) == 0 {
		return 0
	}
	return args[0]
}

// makeMultiArity implements MAKE_MULTI_ARITY's stack protocol as resolved
// in SPEC_FULL.md (spec.md §9 leaves it unspecified): the stack, top to
// bottom, holds the pair count, then the rest callable (or Nil), then
// `count` (arity, callable) pairs with arity pushed before callable.
func makeMultiArity(f *execFrame) (*MultiArityFn, error) {
	countVal, ok := f.pop().(Int)
	if !ok {
		return nil, NewEvalError(KindInvariantViolation, "MAKE_MULTI_ARITY: pair count is not an Int")
	}
	count := int(countVal)

	restVal := f.pop()
	var rest Callable
	if restVal != Nil {
		rest, ok = restVal.(Callable)
		if !ok {
			return nil, NewEvalError(KindInvariantViolation, "MAKE_MULTI_ARITY: rest is neither nil nor callable")
		}
	}

	fn := NewMultiArityFn("")
	for i := 0; i < count; i++ {
		callable, ok := f.pop().(Callable)
		if !ok {
			return nil, NewEvalError(KindInvariantViolation, "MAKE_MULTI_ARITY: pair callable is not callable")
		}
		arity, ok := f.pop().(Int)
		if !ok {
			return nil, NewEvalError(KindInvariantViolation, "MAKE_MULTI_ARITY: pair arity is not an Int")
		}
		fn.AddArity(int(arity), callable)
	}
	if rest != nil {
		requiredArity := 0
		if vc, ok := rest.(*VariadicCode); ok {
			requiredArity = vc.RequiredArity
		}
		fn.SetRest(requiredArity, rest)
	}
	return fn, nil
}

// popCall pops n argument values (restoring left-to-right order) followed
// by the callable beneath them, per INVOKE/TAIL_CALL's "pop n values, pop
// callable" rule (spec.md §4.1).
func popCall(f *execFrame, n int) (Value, []Value) {
	argv := popN(f, n)
	return f.pop(), argv
}

// popN pops n values off the top of the stack, restoring the order they
// were pushed in (argv[0] is the earliest-pushed of the n).
func popN(f *execFrame, n int) []Value {
	argv := make([]Value, n)
	for i := n - 1; i >= 0; i-- {
		argv[i] = f.pop()
	}
	return argv
}

// sameFrame reports whether callable refers to the same Code as f's,
// whether directly or through a Closure — the condition under which
// TAIL_CALL reuses the current execFrame instead of recursing (spec.md
// §4.1). The reuse branch swaps in callable's own ClosedOvers when it is a
// Closure, so a self-recursive closure that rebuilds its capture vector each
// iteration (MAKE_CLOSURE over itself, then TAIL_CALL) observes the new
// vector rather than the one it started with.
func sameFrame(f *execFrame, callable Value) bool {
	switch c := callable.(type) {
	case *Code:
		return c == f.code
	case *Closure:
		return c.Code == f.code
	default:
		return false
	}
}

// jumpTarget applies a signed relative offset (encoded as arg, a raw 32-bit
// word reinterpreted as int32) to the instruction pointer. basePC is the
// jump instruction's own starting word index, matching "jump by off" read
// relative to the branch instruction itself rather than to the following
// instruction, so off == 0 is a (degenerate) infinite loop rather than a
// no-op — consistent with how original_source's bytecode offsets are
// always relative to the opcode that reads them.
func jumpTarget(basePC uint32, arg uint32) uint32 {
	return uint32(int64(basePC) + int64(int32(arg)))
}
