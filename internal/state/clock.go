package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock stamps ops with this site's id and a Lamport counter.
type Clock struct {
	site    string
	lamport atomic.Uint64
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

// Stamp assigns the next Lamport value and the site id to op.
func (c *Clock) Stamp(op Op) Op {
	op.Lamport = c.lamport.Add(1)
	op.Site = c.site
	return op
}
