package port

import (
	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

//go:generate go tool go.uber.org/mock/mockgen -source=processor.go -destination=processor_mock.go -package=port

// Processor is the processing contract hosts depend on: records go in one at
// a time, account snapshots come out after the stream ends. Both ledger
// strategies satisfy it.
type Processor interface {
	Process(rec core.Record) error
	Snapshots() []core.Snapshot
}
