package slra

// collectHardRanges is Stage 2. It scans instrs once and
// produces the set of RRegIntervals describing architectural reservations
// of allocatable real registers. Real-register operands outside
// hregToIndex (stack pointer, frame pointer, etc.) are ignored entirely.
func collectHardRanges(instrs []Instr, allocatable []Reg, hregToIndex map[Reg]int, hooks Hooks) ([]RRegInterval, error) {
	k := len(allocatable)
	la := make([]int, k)
	db := make([]int, k)
	for i := range la {
		la[i] = noPC
		db[i] = noPC
	}

	var out []RRegInterval
	for i, instr := range instrs {
		for _, use := range hooks.GetRegUsage(instr) {
			if use.Reg.IsVirtual() {
				continue
			}
			idx, ok := hregToIndex[use.Reg]
			if !ok {
				continue
			}
			switch use.Mode {
			case Write:
				if la[idx] != noPC {
					out = append(out, RRegInterval{Reg: allocatable[idx], LiveAfter: la[idx], DeadBefore: db[idx]})
				}
				la[idx], db[idx] = i, i+1
			case Read:
				if la[idx] == noPC {
					return nil, malformed(i, "read of real register %v before it is ever written", use.Reg)
				}
				db[idx] = i + 1
			case Modify:
				if la[idx] == noPC {
					return nil, malformed(i, "modify of real register %v before it is ever written", use.Reg)
				}
				db[idx] = i + 1
			}
		}
	}

	for idx, start := range la {
		if start != noPC {
			out = append(out, RRegInterval{Reg: allocatable[idx], LiveAfter: start, DeadBefore: db[idx]})
		}
	}

	tracef("hard ranges: %d intervals collected over %d instrs\n", len(out), len(instrs))
	return out, nil
}
