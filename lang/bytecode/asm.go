package bytecode

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// This file implements a human-readable/writable assembly form of a Unit.
// It exists purely to support testing the runtime without a real compiler
// front end, the same role the teacher's compiler.Asm plays for its own VM
// tests. The format looks like this (order of sections is fixed; the unit:
// line and the code: section are required, the consts: section is
// optional):
//
//	unit: NAME <stacksize>
//	consts:
//		int    42
//		float  1.5
//		string "hello"
//	code:
//		LOAD_CONST 0
//		RETURN
//
// A '#' anywhere on a line starts a line comment. Blank lines are ignored.

// Assemble parses the textual assembly form src and returns the resulting
// Unit.
func Assemble(src []byte) (*Unit, error) {
	a := &asm{s: bufio.NewScanner(bytes.NewReader(src))}
	fields := a.next()

	if len(fields) < 2 || fields[0] != "unit:" {
		return nil, fmt.Errorf("bytecode: expected 'unit: NAME <stacksize>', got %q", strings.Join(fields, " "))
	}
	u := &Unit{Name: fields[1]}
	if len(fields) >= 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("bytecode: invalid stack size %q: %w", fields[2], err)
		}
		u.StackSize = n
	}

	fields = a.next()
	if len(fields) > 0 && fields[0] == "consts:" {
		for {
			fields = a.next()
			if len(fields) == 0 || strings.HasSuffix(fields[0], ":") {
				break
			}
			c, err := parseConst(fields)
			if err != nil {
				return nil, err
			}
			u.Consts = append(u.Consts, c)
		}
	}

	if len(fields) == 0 || fields[0] != "code:" {
		return nil, fmt.Errorf("bytecode: expected 'code:' section, got %q", strings.Join(fields, " "))
	}
	for {
		fields = a.next()
		if len(fields) == 0 {
			break
		}
		op, ok := LookupOp(fields[0])
		if !ok {
			return nil, fmt.Errorf("bytecode: unknown opcode %q", fields[0])
		}
		want := op.NumOperands()
		if len(fields)-1 != want {
			return nil, fmt.Errorf("bytecode: %s requires %d operand(s), got %d", fields[0], want, len(fields)-1)
		}
		args := make([]uint32, want)
		for i := 0; i < want; i++ {
			// Parsed as signed so COND_BR/JMP can write negative (backward)
			// offsets; the bit pattern is reinterpreted as a two's-complement
			// int32 by jumpTarget when the opcode is a branch.
			n, err := strconv.ParseInt(fields[1+i], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("bytecode: invalid operand for %s: %w", fields[0], err)
			}
			args[i] = uint32(int32(n))
		}
		u.Code = Encode(u.Code, op, args...)
	}
	if a.err != nil {
		return nil, a.err
	}
	return u, nil
}

func parseConst(fields []string) (Const, error) {
	if len(fields) < 2 {
		return Const{}, fmt.Errorf("bytecode: invalid constant line %q", strings.Join(fields, " "))
	}
	switch fields[0] {
	case "int":
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Const{}, fmt.Errorf("bytecode: invalid int constant: %w", err)
		}
		return Const{Kind: ConstInt, Int: n}, nil
	case "float":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Const{}, fmt.Errorf("bytecode: invalid float constant: %w", err)
		}
		return Const{Kind: ConstFloat, Flt: f}, nil
	case "string":
		s, err := strconv.Unquote(strings.Join(fields[1:], " "))
		if err != nil {
			return Const{}, fmt.Errorf("bytecode: invalid string constant: %w", err)
		}
		return Const{Kind: ConstString, Str: s}, nil
	default:
		return Const{}, fmt.Errorf("bytecode: unknown constant kind %q", fields[0])
	}
}

type asm struct {
	s   *bufio.Scanner
	err error
}

// next returns the whitespace-split fields of the next non-blank,
// non-comment-only line, or nil at EOF.
func (a *asm) next() []string {
	if a.err != nil {
		return nil
	}
	for a.s.Scan() {
		line := a.s.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		return fields
	}
	a.err = a.s.Err()
	return nil
}

// Disassemble renders u back to its textual assembly form.
func Disassemble(u *Unit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "unit: %s %d\n", u.Name, u.StackSize)
	if len(u.Consts) > 0 {
		b.WriteString("consts:\n")
		for _, c := range u.Consts {
			switch c.Kind {
			case ConstInt:
				fmt.Fprintf(&b, "\tint %d\n", c.Int)
			case ConstFloat:
				fmt.Fprintf(&b, "\tfloat %g\n", c.Flt)
			case ConstString:
				fmt.Fprintf(&b, "\tstring %q\n", c.Str)
			case ConstRaw:
				fmt.Fprintf(&b, "\traw %v\n", c.Any)
			}
		}
	}
	b.WriteString("code:\n")
	var pc uint32
	for int(pc) < len(u.Code) {
		op, args, next, err := Decode(u.Code, pc)
		if err != nil {
			fmt.Fprintf(&b, "\t; error: %s\n", err)
			break
		}
		b.WriteByte('\t')
		b.WriteString(op.String())
		for _, a := range args {
			fmt.Fprintf(&b, " %d", int32(a))
		}
		b.WriteByte('\n')
		pc = next
	}
	return b.String()
}
