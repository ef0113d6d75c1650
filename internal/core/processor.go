package core

import (
	"github.com/shopspring/decimal"
)

// Processing rules shared by both processor strategies. A record either
// applies in full or is rejected with a typed error and no state change:
// every check runs before the first mutation.
//
// Processors never lock. A single processor instance assumes one writer at a
// time; hosts that want parallelism must partition the stream by client id
// and give each partition its own processor, which is safe because records
// for one client always stay in arrival order within a partition.

type ProcessorOption func(*processorOptions)

type processorOptions struct {
	audit AuditSink
}

// WithAuditSink reports every rejected record and its reason to sink.
func WithAuditSink(sink AuditSink) ProcessorOption {
	return func(o *processorOptions) {
		o.audit = sink
	}
}

func newProcessorOptions(opts []ProcessorOption) processorOptions {
	var o processorOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func requireAmount(rec Record) (decimal.Decimal, error) {
	if rec.Amount == nil {
		return decimal.Decimal{}, ErrAmountRequired
	}
	if rec.Amount.IsNegative() {
		return decimal.Decimal{}, ErrNegativeAmount
	}

	return *rec.Amount, nil
}

// findDisputable resolves the stored transaction a dispute, resolve or
// chargeback refers to. Records referencing an unknown transaction id, or a
// transaction owned by another client, are rejected here before any account
// is touched or created.
func findDisputable(transactions TransactionRepository, rec Record) (StoredTransaction, error) {
	stored, ok := transactions.Lookup(rec.Tx)
	if !ok {
		return StoredTransaction{}, ErrTransactionNotFound
	}
	if stored.Client != rec.Client {
		return StoredTransaction{}, ErrClientMismatch
	}

	return stored, nil
}

func applyTransfer(account *Account, transactions TransactionRepository, rec Record) error {
	amount, err := requireAmount(rec)
	if err != nil {
		return err
	}
	if account.Locked {
		return ErrAccountLocked
	}
	if _, ok := transactions.Lookup(rec.Tx); ok {
		return ErrDuplicateTransaction
	}

	switch rec.Kind {
	case KindDeposit:
		err = account.Deposit(amount)
	case KindWithdrawal:
		err = account.Withdraw(amount)
	}
	if err != nil {
		return err
	}

	return transactions.Insert(StoredTransaction{
		Tx:     rec.Tx,
		Client: rec.Client,
		Kind:   rec.Kind,
		Amount: amount,
	})
}

func applyDispute(account *Account, disputes DisputeRepository, stored StoredTransaction) error {
	if account.Locked {
		return ErrAccountLocked
	}
	// Any existing record blocks a new dispute: open disputes cannot be
	// disputed twice and settled ones are terminal.
	if _, ok := disputes.StateOf(stored.Tx); ok {
		return ErrAlreadyDisputed
	}

	var err error
	switch stored.Kind {
	case KindDeposit:
		err = account.DisputeDeposit(stored.Amount)
	case KindWithdrawal:
		err = account.DisputeWithdrawal(stored.Amount)
	}
	if err != nil {
		return err
	}

	return disputes.Open(stored.Tx)
}

func applySettlement(account *Account, disputes DisputeRepository, stored StoredTransaction, target DisputeState) error {
	if account.Locked {
		return ErrAccountLocked
	}

	state, ok := disputes.StateOf(stored.Tx)
	if !ok {
		return ErrDisputeNotFound
	}
	if state != DisputeStateDisputed {
		return ErrInvalidDisputeState
	}

	var err error
	switch stored.Kind {
	case KindDeposit:
		if target == DisputeStateResolved {
			err = account.ResolveDeposit(stored.Amount)
		} else {
			err = account.ChargebackDeposit(stored.Amount)
		}
	case KindWithdrawal:
		if target == DisputeStateResolved {
			err = account.ResolveWithdrawal(stored.Amount)
		} else {
			err = account.ChargebackWithdrawal(stored.Amount)
		}
	}
	if err != nil {
		return err
	}

	return disputes.Advance(stored.Tx, target)
}
