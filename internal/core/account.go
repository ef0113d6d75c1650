package core

import (
	"github.com/shopspring/decimal"
)

// Account is the per-client balance state. Available and Held never go
// negative, total is always derived as Available + Held, and Locked is
// monotonic: once set it is never reset. Accounts are mutated only through
// the methods below, only by a processor.
type Account struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

func NewAccount(client ClientID) *Account {
	return &Account{
		Client: client,
	}
}

func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

func (a *Account) Lock() {
	a.Locked = true
}

func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	a.Available = a.Available.Add(amount)
	return nil
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Available = a.Available.Sub(amount)
	return nil
}

// DisputeDeposit freezes a disputed deposit: the amount moves from available
// to held. Fails if the funds were already withdrawn.
func (a *Account) DisputeDeposit(amount decimal.Decimal) error {
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
	return nil
}

// DisputeWithdrawal freezes a claim equal to a disputed withdrawal in held.
// Available is untouched: the amount already left it at withdrawal time.
func (a *Account) DisputeWithdrawal(amount decimal.Decimal) error {
	a.Held = a.Held.Add(amount)
	return nil
}

// ResolveDeposit releases a held deposit back to available.
func (a *Account) ResolveDeposit(amount decimal.Decimal) error {
	if a.Held.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
	return nil
}

// ResolveWithdrawal drops the held claim. The funds stay debited: the
// withdrawal stands.
func (a *Account) ResolveWithdrawal(amount decimal.Decimal) error {
	if a.Held.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Held = a.Held.Sub(amount)
	return nil
}

// ChargebackDeposit permanently removes a held deposit and locks the account.
func (a *Account) ChargebackDeposit(amount decimal.Decimal) error {
	if a.Held.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Held = a.Held.Sub(amount)
	a.Lock()
	return nil
}

// ChargebackWithdrawal reverses a disputed withdrawal: the held claim is
// released back to available, then the account locks.
func (a *Account) ChargebackWithdrawal(amount decimal.Decimal) error {
	if a.Held.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
	a.Lock()
	return nil
}

// Snapshot is the read-only view of an account handed to output adapters.
type Snapshot struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked,
	}
}
