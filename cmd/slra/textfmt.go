package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quillbyte/slra/slra"
)

// textOperand is one register operand parsed from a line, e.g. "=v3i" (write
// virtual register 3, int class) or "r1f" (read real register 1, float
// class).
type textOperand struct {
	reg  slra.Reg
	mode slra.RegMode
}

// textInstr is the concrete Instr type the CLI feeds to slra.Allocate. A
// "mov" opcode with exactly two operands is recognised as a register move
// by hooksFor's IsMove; GenSpill/GenRestore synthesize textInstr values with
// the pseudo-opcodes "spill"/"restore" carrying a stack offset instead of a
// second register operand.
type textInstr struct {
	op       string
	operands []textOperand
	offset   int // meaningful only for "spill"/"restore"
}

func (t *textInstr) String() string {
	var b strings.Builder
	b.WriteString(t.op)
	switch t.op {
	case "spill", "restore":
		fmt.Fprintf(&b, " %s, %d", formatOperand(t.operands[0]), t.offset)
	default:
		for i, o := range t.operands {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(" ")
			b.WriteString(formatOperand(o))
		}
	}
	return b.String()
}

func formatOperand(o textOperand) string {
	prefix := ""
	switch o.mode {
	case slra.Write:
		prefix = "="
	case slra.Modify:
		prefix = "~"
	}
	kind := "r"
	id := 0
	if o.reg.IsVirtual() {
		kind = "v"
		id = o.reg.VRegIndex()
	} else {
		id = int(o.reg.RealRegID())
	}
	return fmt.Sprintf("%s%s%d%s", prefix, kind, id, classSuffix(o.reg.Class()))
}

func classSuffix(c slra.RegClass) string {
	switch c {
	case slra.RegClassFloat:
		return "f"
	case slra.RegClassVec:
		return "x"
	default:
		return "i"
	}
}

func classFromSuffix(s string) (slra.RegClass, error) {
	switch s {
	case "i":
		return slra.RegClassInt, nil
	case "f":
		return slra.RegClassFloat, nil
	case "x":
		return slra.RegClassVec, nil
	default:
		return slra.RegClassInvalid, fmt.Errorf("unknown register class suffix %q", s)
	}
}

// parseOperand parses one operand token per the grammar
// [=|~]('v'|'r')<index><class>, where class is one of i, f, x.
func parseOperand(tok string) (textOperand, error) {
	mode := slra.Read
	switch {
	case strings.HasPrefix(tok, "="):
		mode = slra.Write
		tok = tok[1:]
	case strings.HasPrefix(tok, "~"):
		mode = slra.Modify
		tok = tok[1:]
	}
	if len(tok) < 3 {
		return textOperand{}, fmt.Errorf("malformed operand %q", tok)
	}
	kind := tok[0]
	suffix := tok[len(tok)-1:]
	digits := tok[1 : len(tok)-1]
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return textOperand{}, fmt.Errorf("malformed operand %q: %w", tok, err)
	}
	class, err := classFromSuffix(suffix)
	if err != nil {
		return textOperand{}, fmt.Errorf("malformed operand %q: %w", tok, err)
	}
	switch kind {
	case 'v':
		return textOperand{reg: slra.VirtualReg(idx, class), mode: mode}, nil
	case 'r':
		return textOperand{reg: slra.RealRegOf(slra.RealReg(idx), class), mode: mode}, nil
	default:
		return textOperand{}, fmt.Errorf("malformed operand %q: register must start with 'v' or 'r'", tok)
	}
}

// parseProgram reads one instruction per non-blank, non-comment line.
// Comment lines start with ';'. Example:
//
//	def =v0i
//	add =v1i, v0i, r0i
//	use v1i
func parseProgram(r io.Reader) ([]slra.Instr, error) {
	var out []slra.Instr
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		fields := strings.Fields(line)
		op := fields[0]
		var operands []textOperand
		for _, tok := range strings.Split(strings.Join(fields[1:], " "), ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			operand, err := parseOperand(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			operands = append(operands, operand)
		}
		out = append(out, &textInstr{op: op, operands: operands})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// countVRegs returns one past the highest virtual register index referenced
// anywhere in prog, i.e. the V the caller should pass to slra.Allocate.
func countVRegs(prog []slra.Instr) int {
	max := -1
	for _, instr := range prog {
		ti := instr.(*textInstr)
		for _, o := range ti.operands {
			if o.reg.IsVirtual() && o.reg.VRegIndex() > max {
				max = o.reg.VRegIndex()
			}
		}
	}
	return max + 1
}

// parseAllocatable parses a comma-separated real-register list, e.g.
// "r0i,r1i,r0f".
func parseAllocatable(spec string) ([]slra.Reg, error) {
	var out []slra.Reg
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		operand, err := parseOperand(tok)
		if err != nil {
			return nil, err
		}
		if operand.reg.IsVirtual() {
			return nil, fmt.Errorf("allocatable register %q must be a real register ('r' prefix)", tok)
		}
		out = append(out, operand.reg)
	}
	return out, nil
}

// hooksFor wires slra.Hooks to textInstr.
func hooksFor() slra.Hooks {
	return slra.Hooks{
		IsMove: func(i slra.Instr) (bool, slra.Reg, slra.Reg) {
			ti := i.(*textInstr)
			if ti.op != "mov" || len(ti.operands) != 2 {
				return false, slra.RegInvalid, slra.RegInvalid
			}
			return true, ti.operands[1].reg, ti.operands[0].reg
		},
		GetRegUsage: func(i slra.Instr) []slra.RegUse {
			ti := i.(*textInstr)
			uses := make([]slra.RegUse, len(ti.operands))
			for idx, o := range ti.operands {
				uses[idx] = slra.RegUse{Reg: o.reg, Mode: o.mode}
			}
			return uses
		},
		MapRegs: func(i slra.Instr, sub slra.Substitution) slra.Instr {
			ti := i.(*textInstr)
			rewritten := make([]textOperand, len(ti.operands))
			for idx, o := range ti.operands {
				if r, ok := sub[o.reg]; ok {
					rewritten[idx] = textOperand{reg: r, mode: o.mode}
				} else {
					rewritten[idx] = o
				}
			}
			return &textInstr{op: ti.op, operands: rewritten}
		},
		GenSpill: func(r slra.Reg, offset int) slra.Instr {
			return &textInstr{op: "spill", operands: []textOperand{{reg: r, mode: slra.Read}}, offset: offset}
		},
		GenRestore: func(r slra.Reg, offset int) slra.Instr {
			return &textInstr{op: "restore", operands: []textOperand{{reg: r, mode: slra.Write}}, offset: offset}
		},
	}
}
