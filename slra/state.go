package slra

// disposition is the current binding state of one allocatable real register.
type disposition byte

const (
	free disposition = iota
	unavail
	bound
)

// String implements fmt.Stringer, for tracing.
func (d disposition) String() string {
	switch d {
	case free:
		return "free"
	case unavail:
		return "unavail"
	case bound:
		return "bound"
	default:
		return "?"
	}
}

// rRegState is one allocatable real register's running state during Stage
// 5, indexed by allocatable-array position -- never by raw register
// identity, so two registers that happen to share a raw numeric id across
// classes are never confused with one another.
type rRegState struct {
	reg  Reg
	disp disposition
	vreg int // valid iff disp == bound
}

// regFile is the table of allocatable real registers: one rRegState per
// entry, plus the lookup from real-register identity to its slot.
type regFile struct {
	regs []rRegState
	// hregIx is keyed by the full Reg (identity + class), not bare
	// RealRegID: real register files are independently numbered per class
	// (e.g. GPR 0 and vector register 0 are different physical registers),
	// so the class tag is load-bearing for identity, not just a matching
	// hint.
	hregIx map[Reg]int
}

func newRegFile(allocatable []Reg) *regFile {
	rf := &regFile{
		regs:   make([]rRegState, len(allocatable)),
		hregIx: make(map[Reg]int, len(allocatable)),
	}
	for i, r := range allocatable {
		rf.regs[i] = rRegState{reg: r, disp: free}
		rf.hregIx[r] = i
	}
	return rf
}

// indexOf returns the allocatable-array index for a real register; this is
// the only sanctioned way to index into regs.
func (rf *regFile) indexOf(r Reg) (int, bool) {
	ix, ok := rf.hregIx[r]
	return ix, ok
}

// candidatesOf returns, in allocatable-array order, the indices of Free
// slots whose class matches c.
func (rf *regFile) candidatesOf(c RegClass) []int {
	var out []int
	for i := range rf.regs {
		if rf.regs[i].disp == free && rf.regs[i].reg.Class() == c {
			out = append(out, i)
		}
	}
	return out
}

// boundTo returns the slot index currently bound to vreg v, or -1.
func (rf *regFile) boundTo(v int) int {
	for i := range rf.regs {
		if rf.regs[i].disp == bound && rf.regs[i].vreg == v {
			return i
		}
	}
	return -1
}
