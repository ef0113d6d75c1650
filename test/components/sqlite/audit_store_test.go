package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
	"github.com/wojciech-zurek/the-secret-project/internal/sqlite"
)

func TestAuditStore_FlushPersistsRejections(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	runID := uuid.New()

	store := sqlite.NewAuditStore(suite.DB, runID)
	require.NoError(t, store.Init(ctx))

	amount := decimal.RequireFromString("3.5")
	store.Report(core.NewAmountRecord(core.KindWithdrawal, 1, 7, amount), core.ErrInsufficientFunds)
	store.Report(core.NewRecord(core.KindDispute, 2, 9), core.ErrTransactionNotFound)

	require.NoError(t, store.Flush(ctx))

	rejections := suite.GetRejections(t, runID.String())
	require.Len(t, rejections, 2)

	require.Equal(t, int64(1), rejections[0].Seq)
	require.Equal(t, "withdrawal", rejections[0].Kind)
	require.Equal(t, int64(1), rejections[0].Client)
	require.Equal(t, int64(7), rejections[0].Tx)
	require.True(t, rejections[0].Amount.Valid)
	require.Equal(t, "3.5", rejections[0].Amount.String)
	require.Equal(t, core.ErrInsufficientFunds.Error(), rejections[0].Reason)

	require.Equal(t, int64(2), rejections[1].Seq)
	require.Equal(t, "dispute", rejections[1].Kind)
	require.False(t, rejections[1].Amount.Valid, "dispute rows carry no amount")
	require.Equal(t, core.ErrTransactionNotFound.Error(), rejections[1].Reason)
}

func TestAuditStore_FlushEmptyBufferIsNoop(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	runID := uuid.New()

	store := sqlite.NewAuditStore(suite.DB, runID)
	require.NoError(t, store.Init(ctx))

	require.NoError(t, store.Flush(ctx))
	require.Zero(t, suite.CountRejections(t, runID.String()))
}

func TestAuditStore_FlushClearsBuffer(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	runID := uuid.New()

	store := sqlite.NewAuditStore(suite.DB, runID)
	require.NoError(t, store.Init(ctx))

	store.Report(core.NewRecord(core.KindResolve, 5, 11), core.ErrDisputeNotFound)
	require.NoError(t, store.Flush(ctx))
	require.NoError(t, store.Flush(ctx))

	require.Equal(t, 1, suite.CountRejections(t, runID.String()))
}

func TestAuditStore_FlushCrossesBatchBoundary(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	runID := uuid.New()

	store := sqlite.NewAuditStore(suite.DB, runID)
	require.NoError(t, store.Init(ctx))

	const rejections = 250
	for i := 0; i < rejections; i++ {
		store.Report(core.NewRecord(core.KindChargeback, core.ClientID(i%7), core.TxID(i)), core.ErrDisputeNotFound)
	}

	require.NoError(t, store.Flush(ctx))
	require.Equal(t, rejections, suite.CountRejections(t, runID.String()))

	rows := suite.GetRejections(t, runID.String())
	for i, r := range rows {
		require.Equal(t, int64(i+1), r.Seq, "row %d out of order", i)
	}
}

func TestAuditStore_RunsAreSeparated(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	firstRun := uuid.New()
	secondRun := uuid.New()

	first := sqlite.NewAuditStore(suite.DB, firstRun)
	require.NoError(t, first.Init(ctx))
	second := sqlite.NewAuditStore(suite.DB, secondRun)
	require.NoError(t, second.Init(ctx))

	first.Report(core.NewRecord(core.KindDispute, 1, 1), core.ErrAccountLocked)
	second.Report(core.NewRecord(core.KindDispute, 1, 1), core.ErrAccountLocked)
	second.Report(core.NewRecord(core.KindResolve, 1, 1), core.ErrAccountLocked)

	require.NoError(t, first.Flush(ctx))
	require.NoError(t, second.Flush(ctx))

	require.Equal(t, 1, suite.CountRejections(t, firstRun.String()))
	require.Equal(t, 2, suite.CountRejections(t, secondRun.String()))
}

func TestAuditStore_ConcurrentReports(t *testing.T) {
	t.Parallel()

	suite := NewTestSuite(t)
	defer suite.Teardown()

	ctx := context.Background()
	runID := uuid.New()

	store := sqlite.NewAuditStore(suite.DB, runID)
	require.NoError(t, store.Init(ctx))

	const workers = 8
	const reportsPerWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < reportsPerWorker; i++ {
				rec := core.NewRecord(core.KindDispute, core.ClientID(w), core.TxID(i))
				store.Report(rec, fmt.Errorf("worker %d rejection %d", w, i))
			}
		}(w)
	}
	wg.Wait()

	require.NoError(t, store.Flush(ctx))
	require.Equal(t, workers*reportsPerWorker, suite.CountRejections(t, runID.String()))
}
