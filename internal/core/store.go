package core

// Map-backed repository implementations. None of them synchronize: a store is
// owned by exactly one processor, and hosts that process concurrently must
// partition work so that no store is shared between goroutines.

type AccountStore struct {
	accounts map[ClientID]*Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[ClientID]*Account),
	}
}

func (s *AccountStore) GetOrCreate(client ClientID) *Account {
	account, ok := s.accounts[client]
	if !ok {
		account = NewAccount(client)
		s.accounts[client] = account
	}

	return account
}

func (s *AccountStore) Get(client ClientID) (*Account, bool) {
	account, ok := s.accounts[client]
	return account, ok
}

func (s *AccountStore) All() []*Account {
	accounts := make([]*Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}

	return accounts
}

type TransactionStore struct {
	transactions map[TxID]StoredTransaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: make(map[TxID]StoredTransaction),
	}
}

func (s *TransactionStore) Insert(stored StoredTransaction) error {
	if _, ok := s.transactions[stored.Tx]; ok {
		return ErrDuplicateTransaction
	}

	s.transactions[stored.Tx] = stored
	return nil
}

func (s *TransactionStore) Lookup(tx TxID) (StoredTransaction, bool) {
	stored, ok := s.transactions[tx]
	return stored, ok
}

type DisputeStore struct {
	states map[TxID]DisputeState
}

func NewDisputeStore() *DisputeStore {
	return &DisputeStore{
		states: make(map[TxID]DisputeState),
	}
}

func (s *DisputeStore) Open(tx TxID) error {
	if _, ok := s.states[tx]; ok {
		return ErrAlreadyDisputed
	}

	s.states[tx] = DisputeStateDisputed
	return nil
}

func (s *DisputeStore) Advance(tx TxID, target DisputeState) error {
	state, ok := s.states[tx]
	if !ok {
		return ErrDisputeNotFound
	}
	if state != DisputeStateDisputed {
		return ErrInvalidDisputeState
	}

	s.states[tx] = target
	return nil
}

func (s *DisputeStore) StateOf(tx TxID) (DisputeState, bool) {
	state, ok := s.states[tx]
	return state, ok
}
