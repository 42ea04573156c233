package session

type slot int

const (
	slotSave slot = iota
	slotSnapshot
	slotTool
	slotRefresh
)

// sequencer hands out monotonically increasing tickets per slot. Callers
// must hold the owner's lock.
type sequencer struct {
	latest map[slot]uint64
}

func (q *sequencer) begin(s slot) uint64 {
	if q.latest == nil {
		q.latest = make(map[slot]uint64)
	}
	q.latest[s]++
	return q.latest[s]
}

func (q *sequencer) current(s slot, ticket uint64) bool {
	return q.latest[s] == ticket
}
