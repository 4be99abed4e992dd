package slra

import "fmt"

// Reg is a tagged register handle: either a virtual register identified by a
// dense, caller-assigned index, or a real (machine) register identified by
// an opaque numeric encoding. The low 32 bits hold the index, the next byte
// holds the RegClass, and bit 40 marks virtual vs. real.
type Reg uint64

// RealReg is the bare numeric identity of a real register, stripped of any
// class tag. Numbering is independent per register file -- GPR 0 and vector
// register 0 are different physical registers -- so RealRegID alone is not
// a register's full identity; RegClass is part of it too.
type RealReg uint32

// RealRegInvalid is never a valid allocatable real register.
const RealRegInvalid RealReg = 0

// RegInvalid is the sentinel "no register" value, e.g. returned by IsMove
// when an instruction is not a move.
const RegInvalid Reg = 0

const (
	regVirtualBit = 1 << 40
	regIndexMask  = 0xffff_ffff
	regClassShift = 32
	regClassMask  = 0xff
)

// RegClass is the equivalence class of a register: two registers are
// interchangeable for allocation only if they share a class.
type RegClass byte

const (
	RegClassInvalid RegClass = iota
	RegClassInt
	RegClassFloat
	RegClassVec
	numRegClass
)

// String implements fmt.Stringer.
func (c RegClass) String() string {
	switch c {
	case RegClassInt:
		return "int"
	case RegClassFloat:
		return "float"
	case RegClassVec:
		return "vec"
	default:
		return "invalid"
	}
}

// VirtualReg constructs a Reg for virtual register index idx in class c.
func VirtualReg(idx int, c RegClass) Reg {
	if idx < 0 || idx > regIndexMask {
		panic(fmt.Sprintf("slra: virtual register index out of range: %d", idx))
	}
	return Reg(idx) | Reg(c)<<regClassShift | regVirtualBit
}

// RealRegOf wraps a RealReg with the class the allocator should treat it as
// when matching candidates against a vreg's class.
func RealRegOf(r RealReg, c RegClass) Reg {
	return Reg(r) | Reg(c)<<regClassShift
}

// IsVirtual reports whether r names a virtual register.
func (r Reg) IsVirtual() bool {
	return r&regVirtualBit != 0
}

// Class returns the register class r was tagged with.
func (r Reg) Class() RegClass {
	return RegClass((r >> regClassShift) & regClassMask)
}

// VRegIndex returns the dense virtual-register index. Only meaningful when
// IsVirtual is true.
func (r Reg) VRegIndex() int {
	return int(r & regIndexMask)
}

// RealRegID returns the bare numeric identity of r within its register file,
// ignoring its class tag. Only meaningful when IsVirtual is false; combine
// with Class to get the register's full identity.
func (r Reg) RealRegID() RealReg {
	return RealReg(r & regIndexMask)
}

// Valid reports whether r is anything other than the RegInvalid sentinel.
func (r Reg) Valid() bool {
	return r != RegInvalid
}

// String implements fmt.Stringer, mainly for tracing.
func (r Reg) String() string {
	if r == RegInvalid {
		return "!invalid"
	}
	if r.IsVirtual() {
		return fmt.Sprintf("v%d:%s", r.VRegIndex(), r.Class())
	}
	return fmt.Sprintf("r%d:%s", r.RealRegID(), r.Class())
}
