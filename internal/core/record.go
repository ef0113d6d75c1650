package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type (
	ClientID uint16
	TxID     uint32
)

type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown record type %q", s)
	}
}

// Record is one well-typed input record in arrival order. Amount is set only
// for deposits and withdrawals; dispute, resolve and chargeback reference a
// prior transaction by Tx and carry no amount of their own.
type Record struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount *decimal.Decimal
}

func NewRecord(kind Kind, client ClientID, tx TxID) Record {
	return Record{
		Kind:   kind,
		Client: client,
		Tx:     tx,
	}
}

func NewAmountRecord(kind Kind, client ClientID, tx TxID, amount decimal.Decimal) Record {
	return Record{
		Kind:   kind,
		Client: client,
		Tx:     tx,
		Amount: &amount,
	}
}

// StoredTransaction is the subset of a deposit or withdrawal retained for
// dispute lookups. It is immutable once inserted.
type StoredTransaction struct {
	Tx     TxID
	Client ClientID
	Kind   Kind
	Amount decimal.Decimal
}

// DisputeState is the lifecycle state of a disputed transaction id:
//
//	(none) -> Disputed -> Resolved
//	                   -> ChargedBack
//
// Resolved and ChargedBack are terminal. Records are never deleted, so a
// settled transaction id can never be disputed again.
type DisputeState string

const (
	DisputeStateDisputed    DisputeState = "disputed"
	DisputeStateResolved    DisputeState = "resolved"
	DisputeStateChargedBack DisputeState = "charged_back"
)
