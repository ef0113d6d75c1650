package core

import (
	"fmt"
)

// BasicProcessor runs every client against one shared set of repositories.
// Suited to single-threaded use, or to hosts serializing all calls behind one
// coarse lock.
type BasicProcessor struct {
	accounts     AccountRepository
	transactions TransactionRepository
	disputes     DisputeRepository
	audit        AuditSink
}

func NewBasicProcessor(
	accounts AccountRepository,
	transactions TransactionRepository,
	disputes DisputeRepository,
	opts ...ProcessorOption,
) *BasicProcessor {
	o := newProcessorOptions(opts)

	return &BasicProcessor{
		accounts:     accounts,
		transactions: transactions,
		disputes:     disputes,
		audit:        o.audit,
	}
}

func (p *BasicProcessor) Process(rec Record) error {
	if err := p.apply(rec); err != nil {
		if p.audit != nil {
			p.audit.Report(rec, err)
		}

		return err
	}

	return nil
}

func (p *BasicProcessor) apply(rec Record) error {
	switch rec.Kind {
	case KindDeposit, KindWithdrawal:
		return applyTransfer(p.accounts.GetOrCreate(rec.Client), p.transactions, rec)

	case KindDispute:
		stored, err := findDisputable(p.transactions, rec)
		if err != nil {
			return err
		}

		account, ok := p.accounts.Get(rec.Client)
		if !ok {
			return ErrTransactionNotFound
		}

		return applyDispute(account, p.disputes, stored)

	case KindResolve:
		return p.settle(rec, DisputeStateResolved)

	case KindChargeback:
		return p.settle(rec, DisputeStateChargedBack)

	default:
		return fmt.Errorf("unprocessable record type %q", rec.Kind)
	}
}

func (p *BasicProcessor) settle(rec Record, target DisputeState) error {
	stored, err := findDisputable(p.transactions, rec)
	if err != nil {
		return err
	}

	account, ok := p.accounts.Get(rec.Client)
	if !ok {
		return ErrTransactionNotFound
	}

	return applySettlement(account, p.disputes, stored, target)
}

func (p *BasicProcessor) Snapshots() []Snapshot {
	accounts := p.accounts.All()

	snapshots := make([]Snapshot, 0, len(accounts))
	for _, account := range accounts {
		snapshots = append(snapshots, account.Snapshot())
	}

	return snapshots
}
