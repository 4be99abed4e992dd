package slra

import "fmt"

// ErrorKind classifies the ways an allocation call can fail.
type ErrorKind int

const (
	// MalformedInput covers: a vreg/rreg whose first event is a Read or
	// Modify; a vreg index outside [0, V); a vreg referenced with two
	// different classes; a register-class mismatch on a move; a spill size
	// that is not a positive multiple of 8 bytes.
	MalformedInput ErrorKind = iota
	// OutOfSpillSlots means Stage 3 saturated the spill-slot table.
	OutOfSpillSlots
	// NoRegForClass means Stage 5 could not find or evict a candidate of
	// the required class.
	NoRegForClass
	// InternalInvariant means an internal sanity check failed: a bug in
	// the allocator itself, never a consequence of caller input.
	InternalInvariant
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case OutOfSpillSlots:
		return "out of spill slots"
	case NoRegForClass:
		return "no register for class"
	case InternalInvariant:
		return "internal invariant violation"
	default:
		return "unknown error"
	}
}

// AllocError is returned by Allocate on any failure. Instr is the offending
// instruction index; for a failure found while assigning slots in Stage 3
// (e.g. OutOfSpillSlots) it is the LiveAfter of the vreg concerned. Error
// omits the index when Instr is negative.
type AllocError struct {
	Kind  ErrorKind
	Instr int
	Msg   string
}

// Error implements the error interface.
func (e *AllocError) Error() string {
	if e.Instr < 0 {
		return fmt.Sprintf("slra: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("slra: %s at instr %d: %s", e.Kind, e.Instr, e.Msg)
}

func malformed(instr int, format string, args ...any) *AllocError {
	return &AllocError{Kind: MalformedInput, Instr: instr, Msg: fmt.Sprintf(format, args...)}
}

func outOfSpillSlots(instr int, format string, args ...any) *AllocError {
	return &AllocError{Kind: OutOfSpillSlots, Instr: instr, Msg: fmt.Sprintf(format, args...)}
}

func noRegForClass(instr int, format string, args ...any) *AllocError {
	return &AllocError{Kind: NoRegForClass, Instr: instr, Msg: fmt.Sprintf(format, args...)}
}

func internalInvariant(instr int, format string, args ...any) *AllocError {
	return &AllocError{Kind: InternalInvariant, Instr: instr, Msg: fmt.Sprintf(format, args...)}
}
