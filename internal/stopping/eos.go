package stopping

// EOS stops when the most recently generated token is one of the
// configured end-of-sequence ids. An EOS that appeared earlier in the
// history and was generated past does not stop retroactively. An empty
// history never stops, nor does an empty id set.
type EOS struct {
	ids map[int]struct{}
}

func NewEOS(ids ...int) *EOS {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &EOS{ids: set}
}

func (e *EOS) ShouldStop(history []int, _ string) bool {
	if len(history) == 0 {
		return false
	}
	_, ok := e.ids[history[len(history)-1]]
	return ok
}
