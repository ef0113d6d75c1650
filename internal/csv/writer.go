package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

type Writer struct {
	csv *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		csv: csv.NewWriter(w),
	}
}

// WriteAccounts renders one row per account, sorted by client id so output
// is reproducible across runs, with amounts at exactly four decimal places.
func (w *Writer) WriteAccounts(snapshots []core.Snapshot) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	sorted := make([]core.Snapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Client < sorted[j].Client })

	for _, s := range sorted {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.StringFixed(4),
			s.Held.StringFixed(4),
			s.Total.StringFixed(4),
			strconv.FormatBool(s.Locked),
		}

		if err := w.csv.Write(row); err != nil {
			return fmt.Errorf("write account %d: %w", s.Client, err)
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}
