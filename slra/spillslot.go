package slra

// assignSpillSlots is Stage 3. For each live vreg, in source index order, it
// finds the smallest run of contiguous slot indices whose busyUntilBefore is
// all <= the vreg's LiveAfter, reserves them through the vreg's DeadBefore,
// and records the offset. slotCount is the caller's compile-time bound S on
// the spill-slot table.
func assignSpillSlots(infos []VRegInfo, slotCount int) error {
	busyUntilBefore := make([]int, slotCount)

	for v := range infos {
		info := &infos[v]
		if !info.live() {
			continue
		}
		if info.SpillSize <= 0 || info.SpillSize%8 != 0 {
			return malformed(info.LiveAfter, "v%d has spill size %d, which is not a positive multiple of 8", v, info.SpillSize)
		}
		need := info.SpillSize / 8

		j, ok := firstFitRun(busyUntilBefore, need, info.LiveAfter)
		if !ok {
			return outOfSpillSlots(info.LiveAfter, "no run of %d contiguous slot(s) available for v%d among %d slots", need, v, slotCount)
		}
		for s := j; s < j+need; s++ {
			busyUntilBefore[s] = info.DeadBefore
		}
		info.SpillOffset = j * 8
	}

	tracef("spill slots: assigned across %d slots (bound %d)\n", len(infos), slotCount)
	return nil
}

// firstFitRun finds the smallest starting slot index j such that the next
// need slots are all free (busyUntilBefore <= liveAfter).
func firstFitRun(busyUntilBefore []int, need, liveAfter int) (int, bool) {
	for j := 0; j+need <= len(busyUntilBefore); j++ {
		free := true
		for s := j; s < j+need; s++ {
			if busyUntilBefore[s] > liveAfter {
				free = false
				break
			}
		}
		if free {
			return j, true
		}
	}
	return 0, false
}
