package library

import "time"

// idGenerator issues timestamp-derived ids (Unix milliseconds). Two books
// created within the same millisecond get consecutive ids instead of colliding.
type idGenerator struct {
	last int64
}

func (g *idGenerator) next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe makes sure future ids stay above an id that already exists
func (g *idGenerator) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
