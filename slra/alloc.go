package slra

// Allocate runs the five-stage allocation pipeline over a single
// straight-line instruction vector and returns the rewritten vector.
//
//   - instrs is the input instruction vector (opaque elements).
//   - v is the number of virtual registers; operand indices must lie in
//     [0, v).
//   - allocatable is R[0..K): the real registers the allocator is free to
//     use, in any order. Registers outside this set are never touched.
//   - hooks supplies the five callbacks through which the allocator
//     observes and rewrites instructions.
//   - spillSlots is S, the compile-time bound on the spill-slot table.
//
// Allocate owns no state beyond this call: every working buffer is
// allocated fresh and released when the call returns. On error, the
// partially built output is discarded and (nil, *AllocError) is returned.
func Allocate(instrs []Instr, v int, allocatable []Reg, hooks Hooks, spillSlots int) (_ []Instr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(*AllocError); ok {
				err = ae
				return
			}
			panic(r)
		}
	}()

	infos, err := summariseLiveness(instrs, v, hooks)
	if err != nil {
		return nil, err
	}

	if hooks.IsMove != nil {
		for i, instr := range instrs {
			if ok, src, dst := hooks.IsMove(instr); ok && src.Class() != dst.Class() {
				return nil, malformed(i, "move from class %s to class %s", src.Class(), dst.Class())
			}
		}
	}

	rf := newRegFile(allocatable)

	hardRanges, err := collectHardRanges(instrs, allocatable, rf.hregIx, hooks)
	if err != nil {
		return nil, err
	}

	if err := assignSpillSlots(infos, spillSlots); err != nil {
		return nil, err
	}

	computePreferences(instrs, infos, hooks)

	a := &allocState{
		infos:      infos,
		hardRanges: hardRanges,
		rf:         rf,
		hooks:      hooks,
	}
	a.indexHardRanges(len(instrs))

	out := make([]Instr, 0, len(instrs)+len(hardRanges))
	for ii, instr := range instrs {
		out = a.rewriteInstr(ii, instr, out)
	}

	tracef("allocate: %d input instrs, %d output instrs\n", len(instrs), len(out))
	return out, nil
}

// allocState is the mutable state threaded through Stage 5.
type allocState struct {
	infos      []VRegInfo
	hardRanges []RRegInterval
	rf         *regFile
	hooks      Hooks

	// startingAt[ii] / endingAt[ii] index into hardRanges: the intervals
	// whose LiveAfter == ii (the hard write that opened this interval is
	// instruction ii itself) and whose DeadBefore == ii (last instruction
	// was ii-1), respectively.
	startingAt map[int][]int
	endingAt   map[int][]int
}

func (a *allocState) indexHardRanges(n int) {
	a.startingAt = make(map[int][]int, len(a.hardRanges))
	a.endingAt = make(map[int][]int, len(a.hardRanges))
	for hi, hr := range a.hardRanges {
		a.startingAt[hr.LiveAfter] = append(a.startingAt[hr.LiveAfter], hi)
		a.endingAt[hr.DeadBefore] = append(a.endingAt[hr.DeadBefore], hi)
	}
}
