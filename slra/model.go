package slra

// noPC is the sentinel meaning "no instruction index recorded yet".
const noPC = -1

// VRegInfo is the per-virtual-register summary built by Stage 1 and read by
// every later stage. Stage 1 starts every entry at LiveAfter == DeadBefore ==
// noPC; an entry still in that state means the vreg is never referenced and
// is skipped by Stages 3 and 5.
type VRegInfo struct {
	// LiveAfter is the index of the instruction after which the vreg first
	// becomes live, or noPC if it is never referenced.
	LiveAfter int
	// DeadBefore is the half-open end of the vreg's live range: the
	// instruction index before which it is last live.
	DeadBefore int
	// SpillOffset is the byte offset of the vreg's home spill slot,
	// assigned by Stage 3.
	SpillOffset int
	// SpillSize is the width in bytes of the vreg's home slot. Defaults to
	// 8; wider values must be a positive multiple of 8 and consume that
	// many consecutive 8-byte slots.
	SpillSize int
	// Class is the RegClass this vreg was tagged with at its first
	// reference. Every later reference must agree, which is checked by
	// Stage 1.
	Class RegClass
	// Preferred is an optional real register Stage 4 would like Stage 5 to
	// prefer when allocating a home for this vreg. RegInvalid if none.
	Preferred Reg
}

// live reports whether this vreg is ever read, written, or modified.
func (v *VRegInfo) live() bool {
	return v.LiveAfter != noPC
}

// RRegInterval is one architectural reservation of a real register,
// produced by Stage 2 and read-only thereafter. A single real register may
// contribute multiple disjoint intervals.
type RRegInterval struct {
	Reg        Reg
	LiveAfter  int
	DeadBefore int
}
