package slra

import "fmt"

// mockInstr is a minimal opaque instruction used across this package's
// tests: a single straight-line vector of named instructions with explicit
// register operands, with no basic-block or control-flow layer.
type mockInstr struct {
	name string
	uses []RegUse

	isMove           bool
	moveSrc, moveDst Reg
}

func instr(name string) *mockInstr { return &mockInstr{name: name} }

func (m *mockInstr) read(r Reg) *mockInstr {
	m.uses = append(m.uses, RegUse{Reg: r, Mode: Read})
	return m
}

func (m *mockInstr) write(r Reg) *mockInstr {
	m.uses = append(m.uses, RegUse{Reg: r, Mode: Write})
	return m
}

func (m *mockInstr) modify(r Reg) *mockInstr {
	m.uses = append(m.uses, RegUse{Reg: r, Mode: Modify})
	return m
}

func (m *mockInstr) move(src, dst Reg) *mockInstr {
	m.isMove = true
	m.moveSrc, m.moveDst = src, dst
	m.uses = append(m.uses, RegUse{Reg: src, Mode: Read}, RegUse{Reg: dst, Mode: Write})
	return m
}

func (m *mockInstr) String() string {
	return fmt.Sprintf("%s%v", m.name, m.uses)
}

// mockSpillRestore is what GenSpill/GenRestore emit, so tests can recognize
// inserted instructions by type rather than by parsing strings.
type mockSpillRestore struct {
	kind   string // "spill" or "restore"
	reg    Reg
	offset int
}

func (m *mockSpillRestore) String() string {
	return fmt.Sprintf("%s(%v, %d)", m.kind, m.reg, m.offset)
}

// mockHooks wires Hooks to mockInstr. It also tolerates *mockSpillRestore
// values flowing back in (e.g. re-running Allocate over a previous call's
// own output), treating them as opaque instructions with no register
// operands of their own.
func mockHooks() Hooks {
	return Hooks{
		IsMove: func(i Instr) (bool, Reg, Reg) {
			mi, ok := i.(*mockInstr)
			if !ok {
				return false, RegInvalid, RegInvalid
			}
			return mi.isMove, mi.moveSrc, mi.moveDst
		},
		GetRegUsage: func(i Instr) []RegUse {
			mi, ok := i.(*mockInstr)
			if !ok {
				return nil
			}
			return mi.uses
		},
		MapRegs: func(i Instr, sub Substitution) Instr {
			mi, ok := i.(*mockInstr)
			if !ok {
				return i
			}
			rewritten := make([]RegUse, len(mi.uses))
			for idx, u := range mi.uses {
				if r, ok := sub[u.Reg]; ok {
					rewritten[idx] = RegUse{Reg: r, Mode: u.Mode}
				} else {
					rewritten[idx] = u
				}
			}
			return &mockInstr{name: mi.name, uses: rewritten}
		},
		GenSpill: func(r Reg, offset int) Instr {
			return &mockSpillRestore{kind: "spill", reg: r, offset: offset}
		},
		GenRestore: func(r Reg, offset int) Instr {
			return &mockSpillRestore{kind: "restore", reg: r, offset: offset}
		},
	}
}

func v(i int) Reg   { return VirtualReg(i, RegClassInt) }
func vf(i int) Reg  { return VirtualReg(i, RegClassFloat) }
func rr(i int) Reg  { return RealRegOf(RealReg(i+1), RegClassInt) }
func rrf(i int) Reg { return RealRegOf(RealReg(i+1), RegClassFloat) }

// spillsIn counts the spill instructions present in out.
func spillsIn(out []Instr) int {
	n := 0
	for _, i := range out {
		if sr, ok := i.(*mockSpillRestore); ok && sr.kind == "spill" {
			n++
		}
	}
	return n
}

// restoresIn counts the restore instructions present in out.
func restoresIn(out []Instr) int {
	n := 0
	for _, i := range out {
		if sr, ok := i.(*mockSpillRestore); ok && sr.kind == "restore" {
			n++
		}
	}
	return n
}
