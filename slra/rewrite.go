package slra

import "sort"

// rewriteInstr performs Stage 5's per-instruction body, steps (a)-(h) below,
// for instruction index ii, appending to out every instruction that should
// be emitted (spills, restores, then the rewritten original) and returning
// the extended slice.
func (a *allocState) rewriteInstr(ii int, instr Instr, out []Instr) []Instr {
	a.checkInvariants(ii) // (a)

	a.expireDead(ii) // (b)

	out = a.enterExitHardRanges(ii, out) // (c)

	uses := a.hooks.GetRegUsage(instr)
	reads, writes := splitUsage(uses)

	// protect registers already bound to a vreg this instruction reads, so
	// that satisfying a later operand of the same instruction can never
	// evict a binding this same instruction still needs.
	protect := make(map[int]bool, len(reads))
	for _, v := range reads {
		protect[v] = true
	}

	out = a.ensureResident(ii, reads, protect, out) // (d)
	out = a.ensureHome(ii, writes, protect, out)    // (e)

	sub := make(Substitution, len(reads)+len(writes))
	for _, v := range reads {
		idx := a.rf.boundTo(v)
		if idx < 0 {
			panic(internalInvariant(ii, "v%d reported as read but has no binding", v))
		}
		sub[VirtualReg(v, a.infos[v].Class)] = a.rf.regs[idx].reg
	}
	for _, v := range writes {
		idx := a.rf.boundTo(v)
		if idx < 0 {
			panic(internalInvariant(ii, "v%d reported as written but has no binding", v))
		}
		sub[VirtualReg(v, a.infos[v].Class)] = a.rf.regs[idx].reg
	}

	out = append(out, a.hooks.MapRegs(instr, sub)) // (g)

	a.reclaimEarly(ii) // (h)

	return out
}

// splitUsage partitions an instruction's register operands into vregs that
// are read or modified (and so must already be resident) and vregs that are
// written without being read (and so only need a home, no restore). Both
// results are sorted by vreg index so Stage 5's register selection visits
// operands in a fixed order regardless of the order GetRegUsage reports
// them in, which keeps output deterministic across runs despite Go's
// randomized map iteration order.
func splitUsage(uses []RegUse) (reads, writes []int) {
	readSet := make(map[int]struct{})
	writeSet := make(map[int]struct{})
	for _, u := range uses {
		if !u.Reg.IsVirtual() {
			continue
		}
		idx := u.Reg.VRegIndex()
		switch u.Mode {
		case Read, Modify:
			readSet[idx] = struct{}{}
		case Write:
			writeSet[idx] = struct{}{}
		}
	}
	// A vreg reported as both read/modified and written (e.g. one Read
	// event and one separate Write event on the same operand) only needs
	// the read-path restore; drop it from writes so (e) doesn't re-bind it.
	for v := range readSet {
		delete(writeSet, v)
	}
	reads = make([]int, 0, len(readSet))
	for v := range readSet {
		reads = append(reads, v)
	}
	writes = make([]int, 0, len(writeSet))
	for v := range writeSet {
		writes = append(writes, v)
	}
	sort.Ints(reads)
	sort.Ints(writes)
	return reads, writes
}

// expireDead implements step (b): free any Bound slot whose held vreg's
// DeadBefore is exactly ii.
func (a *allocState) expireDead(ii int) {
	for i := range a.rf.regs {
		s := &a.rf.regs[i]
		if s.disp == bound && a.infos[s.vreg].DeadBefore == ii {
			tracef("  expire v%d from %v\n", s.vreg, s.reg)
			s.disp = free
		}
	}
}

// reclaimEarly implements step (h): the same reclamation as (b), but
// looking one instruction ahead so a binding that dies immediately after ii
// may be freed without waiting for the top of iteration ii+1.
func (a *allocState) reclaimEarly(ii int) {
	for i := range a.rf.regs {
		s := &a.rf.regs[i]
		if s.disp == bound && a.infos[s.vreg].DeadBefore == ii+1 {
			s.disp = free
		}
	}
}

// enterExitHardRanges implements step (c): registers entering a hard range
// whose defining hard write is this very instruction (LiveAfter == ii) are
// freed first -- spilling their vreg if Bound -- then marked Unavail, so the
// hard write itself never clobbers a live vreg. Registers leaving a hard
// range that ended at ii-1 (DeadBefore == ii) return to Free, unless a new
// hard range of the same register opens at ii.
func (a *allocState) enterExitHardRanges(ii int, out []Instr) []Instr {
	entered := make(map[int]bool, len(a.startingAt[ii]))
	for _, hi := range a.startingAt[ii] {
		hr := a.hardRanges[hi]
		idx, ok := a.rf.indexOf(hr.Reg)
		if !ok {
			panic(internalInvariant(ii, "hard range on non-allocatable register %v", hr.Reg))
		}
		s := &a.rf.regs[idx]
		if s.disp == bound {
			tracef("  spill v%d from %v for hard range\n", s.vreg, s.reg)
			out = append(out, a.hooks.GenSpill(s.reg, a.infos[s.vreg].SpillOffset))
		}
		s.disp = unavail
		entered[idx] = true
	}
	for _, hi := range a.endingAt[ii] {
		hr := a.hardRanges[hi]
		idx, ok := a.rf.indexOf(hr.Reg)
		if !ok {
			panic(internalInvariant(ii, "hard range on non-allocatable register %v", hr.Reg))
		}
		if !entered[idx] {
			a.rf.regs[idx].disp = free
		}
	}
	return out
}

// ensureResident implements step (d).
func (a *allocState) ensureResident(ii int, reads []int, protect map[int]bool, out []Instr) []Instr {
	for _, v := range reads {
		if a.rf.boundTo(v) >= 0 {
			continue
		}
		info := &a.infos[v]
		idx, err := a.chooseReg(ii, info.Class, info.Preferred, protect, &out)
		if err != nil {
			panic(err)
		}
		a.rf.regs[idx].disp = bound
		a.rf.regs[idx].vreg = v
		out = append(out, a.hooks.GenRestore(a.rf.regs[idx].reg, info.SpillOffset))
		tracef("  restore v%d into %v\n", v, a.rf.regs[idx].reg)
	}
	return out
}

// ensureHome implements step (e).
func (a *allocState) ensureHome(ii int, writes []int, protect map[int]bool, out []Instr) []Instr {
	for _, v := range writes {
		if a.rf.boundTo(v) >= 0 {
			continue
		}
		info := &a.infos[v]
		idx, err := a.chooseReg(ii, info.Class, info.Preferred, protect, &out)
		if err != nil {
			panic(err)
		}
		a.rf.regs[idx].disp = bound
		a.rf.regs[idx].vreg = v
		protect[v] = true
		tracef("  home v%d in %v\n", v, a.rf.regs[idx].reg)
	}
	return out
}

// chooseReg implements step (f): selection policy is (1) the vreg's
// preference if it is a Free candidate, (2) else the lowest-index Free
// candidate, (3) else the Bound candidate (not in protect) of matching
// class with the greatest DeadBefore, ties broken by lowest RRegState
// index, spilled and evicted.
func (a *allocState) chooseReg(ii int, class RegClass, preferred Reg, protect map[int]bool, out *[]Instr) (int, error) {
	candidates := a.rf.candidatesOf(class)
	if preferred != RegInvalid {
		for _, c := range candidates {
			if a.rf.regs[c].reg == preferred {
				return c, nil
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0], nil
	}

	victim := -1
	victimDeadBefore := -1
	for i := range a.rf.regs {
		s := &a.rf.regs[i]
		if s.disp != bound || s.reg.Class() != class || protect[s.vreg] {
			continue
		}
		db := a.infos[s.vreg].DeadBefore
		if db > victimDeadBefore {
			victim, victimDeadBefore = i, db
		}
	}
	if victim < 0 {
		return 0, noRegForClass(ii, "no candidate or evictable register of class %s", class)
	}

	s := &a.rf.regs[victim]
	tracef("  evict v%d from %v\n", s.vreg, s.reg)
	*out = append(*out, a.hooks.GenSpill(s.reg, a.infos[s.vreg].SpillOffset))
	s.disp = free
	return victim, nil
}
