package core

import (
	"fmt"
)

// accountBundle is one client's complete slice of ledger state. Records for
// the client touch nothing outside the bundle.
type accountBundle struct {
	account      *Account
	transactions *TransactionStore
	disputes     *DisputeStore
}

func newAccountBundle(client ClientID) *accountBundle {
	return &accountBundle{
		account:      NewAccount(client),
		transactions: NewTransactionStore(),
		disputes:     NewDisputeStore(),
	}
}

// WrappedProcessor gives every account its own transaction and dispute
// repositories, so all lookups and mutations for a client stay inside that
// client's bundle. Hosts running many independent clients can shard the
// stream by client id across several WrappedProcessor instances instead of
// serializing everything behind one lock. Costs a little more memory per
// account, and scopes transaction-id uniqueness to the owning client.
type WrappedProcessor struct {
	bundles map[ClientID]*accountBundle
	audit   AuditSink
}

func NewWrappedProcessor(opts ...ProcessorOption) *WrappedProcessor {
	o := newProcessorOptions(opts)

	return &WrappedProcessor{
		bundles: make(map[ClientID]*accountBundle),
		audit:   o.audit,
	}
}

func (p *WrappedProcessor) Process(rec Record) error {
	if err := p.apply(rec); err != nil {
		if p.audit != nil {
			p.audit.Report(rec, err)
		}

		return err
	}

	return nil
}

func (p *WrappedProcessor) apply(rec Record) error {
	switch rec.Kind {
	case KindDeposit, KindWithdrawal:
		bundle := p.bundle(rec.Client)
		return applyTransfer(bundle.account, bundle.transactions, rec)

	case KindDispute:
		bundle, stored, err := p.findBundle(rec)
		if err != nil {
			return err
		}

		return applyDispute(bundle.account, bundle.disputes, stored)

	case KindResolve:
		bundle, stored, err := p.findBundle(rec)
		if err != nil {
			return err
		}

		return applySettlement(bundle.account, bundle.disputes, stored, DisputeStateResolved)

	case KindChargeback:
		bundle, stored, err := p.findBundle(rec)
		if err != nil {
			return err
		}

		return applySettlement(bundle.account, bundle.disputes, stored, DisputeStateChargedBack)

	default:
		return fmt.Errorf("unprocessable record type %q", rec.Kind)
	}
}

func (p *WrappedProcessor) bundle(client ClientID) *accountBundle {
	bundle, ok := p.bundles[client]
	if !ok {
		bundle = newAccountBundle(client)
		p.bundles[client] = bundle
	}

	return bundle
}

// findBundle locates the client's bundle and the stored transaction a
// dispute-family record refers to. A client with no bundle cannot own the
// referenced transaction, so no bundle is ever created here: a rejected
// dispute must not create an account as a side effect.
func (p *WrappedProcessor) findBundle(rec Record) (*accountBundle, StoredTransaction, error) {
	bundle, ok := p.bundles[rec.Client]
	if !ok {
		return nil, StoredTransaction{}, ErrTransactionNotFound
	}

	stored, err := findDisputable(bundle.transactions, rec)
	if err != nil {
		return nil, StoredTransaction{}, err
	}

	return bundle, stored, nil
}

func (p *WrappedProcessor) Snapshots() []Snapshot {
	snapshots := make([]Snapshot, 0, len(p.bundles))
	for _, bundle := range p.bundles {
		snapshots = append(snapshots, bundle.account.Snapshot())
	}

	return snapshots
}
