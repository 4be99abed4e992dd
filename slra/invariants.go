package slra

// checkInvariants runs four sanity checks at the top of instruction
// ii, before any mutation for this iteration. A violation indicates a bug
// in the allocator itself (never in caller input) and panics with an
// InternalInvariant AllocError, which Allocate recovers and returns.
//
// A register whose hard range ended at ii-1 (DeadBefore == ii) is still
// Unavail here, since step (c) of this iteration is what releases it; the
// converse check therefore accepts it as covered.
func (a *allocState) checkInvariants(ii int) {
	inHardRange := make(map[int]bool, len(a.hardRanges))
	for hi, hr := range a.hardRanges {
		if hr.LiveAfter < ii && ii <= hr.DeadBefore {
			idx, ok := a.rf.indexOf(hr.Reg)
			if !ok {
				panic(internalInvariant(ii, "hard range %d refers to non-allocatable register %v", hi, hr.Reg))
			}
			inHardRange[idx] = true
			if ii < hr.DeadBefore && a.rf.regs[idx].disp != unavail {
				panic(internalInvariant(ii, "register %v inside hard range but not Unavail", hr.Reg))
			}
		}
	}
	for i := range a.rf.regs {
		s := &a.rf.regs[i]
		if s.disp == unavail && !inHardRange[i] {
			panic(internalInvariant(ii, "register %v is Unavail but no hard range covers instr %d", s.reg, ii))
		}
	}

	seen := make(map[int]bool, len(a.rf.regs))
	for i := range a.rf.regs {
		s := &a.rf.regs[i]
		if s.disp != bound {
			continue
		}
		if seen[s.vreg] {
			panic(internalInvariant(ii, "v%d bound to more than one real register", s.vreg))
		}
		seen[s.vreg] = true
		if s.reg.Class() != a.infos[s.vreg].Class {
			panic(internalInvariant(ii, "v%d bound to %v of mismatched class", s.vreg, s.reg))
		}
	}
}
