package core

//go:generate go tool go.uber.org/mock/mockgen -source=repository.go -destination=repository_mock.go -package=core

// AccountRepository holds one account per client id. Accounts are created
// lazily and never removed.
type AccountRepository interface {
	GetOrCreate(client ClientID) *Account
	Get(client ClientID) (*Account, bool)
	All() []*Account
}

// TransactionRepository records disputable transactions (deposits and
// withdrawals) keyed by transaction id.
type TransactionRepository interface {
	Insert(stored StoredTransaction) error
	Lookup(tx TxID) (StoredTransaction, bool)
}

// DisputeRepository tracks the lifecycle state of disputed transaction ids.
type DisputeRepository interface {
	Open(tx TxID) error
	Advance(tx TxID, target DisputeState) error
	StateOf(tx TxID) (DisputeState, bool)
}
