package slra

// summariseLiveness is Stage 1. It scans instrs once and
// produces VRegInfo[0..v), recording each virtual register's half-open live
// range [LiveAfter, DeadBefore).
func summariseLiveness(instrs []Instr, v int, hooks Hooks) ([]VRegInfo, error) {
	infos := make([]VRegInfo, v)
	for i := range infos {
		infos[i].LiveAfter = noPC
		infos[i].DeadBefore = noPC
		infos[i].SpillSize = 8
	}

	for i, instr := range instrs {
		for _, use := range hooks.GetRegUsage(instr) {
			if !use.Reg.IsVirtual() {
				continue
			}
			idx := use.Reg.VRegIndex()
			if idx < 0 || idx >= v {
				return nil, malformed(i, "virtual register index %d outside [0, %d)", idx, v)
			}
			info := &infos[idx]
			if info.Class == RegClassInvalid {
				info.Class = use.Reg.Class()
			} else if info.Class != use.Reg.Class() {
				return nil, malformed(i, "v%d referenced as both class %s and %s", idx, info.Class, use.Reg.Class())
			}
			switch use.Mode {
			case Read:
				if info.LiveAfter == noPC {
					return nil, malformed(i, "read of v%d before it is ever written", idx)
				}
				info.DeadBefore = i + 1
			case Write:
				if info.LiveAfter == noPC {
					info.LiveAfter = i
				}
				info.DeadBefore = i + 1
			case Modify:
				if info.LiveAfter == noPC {
					return nil, malformed(i, "modify of v%d before it is ever written", idx)
				}
				info.DeadBefore = i + 1
			}
		}
	}

	tracef("liveness: %d vregs summarised over %d instrs\n", v, len(instrs))
	return infos, nil
}
