package runner

import (
	"sync/atomic"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

// Tally is an Observer that counts accepted and rejected records. Safe for
// concurrent use.
type Tally struct {
	accepted atomic.Int64
	rejected atomic.Int64
}

func (t *Tally) Observe(_ core.Record, err error) {
	if err != nil {
		t.rejected.Add(1)
		return
	}

	t.accepted.Add(1)
}

func (t *Tally) Accepted() int64 {
	return t.accepted.Load()
}

func (t *Tally) Rejected() int64 {
	return t.rejected.Load()
}
