package integration

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wojciech-zurek/the-secret-project/internal/sqlite"
)

type TestSuite struct {
	DB       *sql.DB
	DBPath   string
	Client   *sqlite.Client
	teardown func()
}

func NewTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_audit.db")

	config := sqlite.Config{
		DatabasePath: dbPath,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		BusyTimeout:  30 * time.Second,
		EnableWAL:    true,
	}

	client, err := sqlite.NewClient(config)
	require.NoError(t, err, "failed to create test client")

	suite := &TestSuite{
		DB:     client.DB(),
		DBPath: dbPath,
		Client: client,
		teardown: func() {
			client.Close()
			os.Remove(dbPath)
		},
	}

	return suite
}

func (s *TestSuite) Teardown() {
	s.teardown()
}

type RejectedRecord struct {
	Seq    int64
	Kind   string
	Client int64
	Tx     int64
	Amount sql.NullString
	Reason string
}

func (s *TestSuite) GetRejections(t *testing.T, runID string) []RejectedRecord {
	t.Helper()

	query := `
		SELECT seq, kind, client, tx, amount, reason
		FROM rejected_records
		WHERE run_id = ?
		ORDER BY seq
	`

	rows, err := s.DB.Query(query, runID)
	require.NoError(t, err, "failed to query rejected records")
	defer rows.Close()

	var rejections []RejectedRecord
	for rows.Next() {
		var r RejectedRecord
		err := rows.Scan(
			&r.Seq,
			&r.Kind,
			&r.Client,
			&r.Tx,
			&r.Amount,
			&r.Reason,
		)
		require.NoError(t, err, "failed to scan rejected record")
		rejections = append(rejections, r)
	}

	require.NoError(t, rows.Err(), "error iterating rejected records")
	return rejections
}

func (s *TestSuite) CountRejections(t *testing.T, runID string) int {
	t.Helper()

	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM rejected_records WHERE run_id = ?", runID).Scan(&count)
	require.NoError(t, err, "failed to count rejected records")

	return count
}
