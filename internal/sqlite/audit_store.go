package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

const schema = `
	CREATE TABLE IF NOT EXISTS rejected_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL,
		client INTEGER NOT NULL,
		tx INTEGER NOT NULL,
		amount TEXT,
		reason TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rejected_records_run_id ON rejected_records (run_id);
`

// AuditStore implements core.AuditSink by buffering rejections in memory and
// writing them out in a single transaction on Flush. Report never touches the
// database, so processors are not slowed down by rejected records.
type AuditStore struct {
	db  *sql.DB
	run uuid.UUID

	mu      sync.Mutex
	seq     int64
	pending []pendingRejection
}

type pendingRejection struct {
	seq    int64
	rec    core.Record
	reason string
}

func NewAuditStore(db *sql.DB, run uuid.UUID) *AuditStore {
	return &AuditStore{
		db:  db,
		run: run,
	}
}

// Init creates the audit schema if it is missing.
func (s *AuditStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create audit schema: %w", err)
	}

	return nil
}

// Report records one rejection. Safe to call from multiple worker goroutines.
func (s *AuditStore) Report(rec core.Record, reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.pending = append(s.pending, pendingRejection{
		seq:    s.seq,
		rec:    rec,
		reason: reason.Error(),
	})
}

// Flush writes every buffered rejection for this run and clears the buffer.
func (s *AuditStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	return s.atomic(ctx, func(tx *sql.Tx) error {
		// SQLite has a limit of 999 parameters (SQLITE_MAX_VARIABLE_NUMBER)
		// With 7 parameters per row, we can insert 142 rows at once
		// We use 100 as a safe batch size
		const batchSize = 100
		for i := 0; i < len(pending); i += batchSize {
			end := i + batchSize
			if end > len(pending) {
				end = len(pending)
			}
			if err := s.insertRejections(ctx, tx, pending[i:end]); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *AuditStore) insertRejections(ctx context.Context, tx *sql.Tx, batch []pendingRejection) error {
	baseQuery := `
		INSERT INTO rejected_records (
			run_id,
			seq,
			kind,
			client,
			tx,
			amount,
			reason
		) VALUES `

	valuePlaceholder := "(?, ?, ?, ?, ?, ?, ?)"

	query := baseQuery + valuePlaceholder
	for i := 1; i < len(batch); i++ {
		query += ", " + valuePlaceholder
	}

	args := make([]interface{}, 0, len(batch)*7)
	for _, p := range batch {
		amount := sql.NullString{}
		if p.rec.Amount != nil {
			amount = sql.NullString{String: p.rec.Amount.String(), Valid: true}
		}

		args = append(args,
			s.run.String(),
			p.seq,
			string(p.rec.Kind),
			int64(p.rec.Client),
			int64(p.rec.Tx),
			amount,
			p.reason,
		)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to bulk insert rejected records: %w", err)
	}

	return nil
}

func (s *AuditStore) atomic(ctx context.Context, cb func(tx *sql.Tx) error) error {
	// BEGIN IMMEDIATE (via _txlock=immediate in the DSN) acquires the write
	// lock up front, so there is no race window between statements
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelDefault,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = cb(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
