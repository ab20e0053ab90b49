package domain

import "github.com/shopspring/decimal"

// Account holds the balances of a single client. Accounts are created lazily
// on first reference, zero-valued and unlocked. Total always equals
// Available plus Held after every transition.
//
// A locked account keeps accepting transactions: chargeback only flags the
// account, it does not stop subsequent processing.
type Account struct {
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Deposit credits available and total funds.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
	a.Total = a.Total.Add(amount)
}

// Withdraw debits available and total funds. It fails without mutation when
// available funds do not cover the amount.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if a.Available.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)
	a.Total = a.Total.Sub(amount)
	return nil
}

// Dispute moves the signed net amount of a prior transaction from available
// to held. For a disputed deposit the amount is positive; for a disputed
// withdrawal it is negative and the move runs the other way.
func (a *Account) Dispute(resolved decimal.Decimal) {
	a.Available = a.Available.Sub(resolved)
	a.Held = a.Held.Add(resolved)
}

// Resolve reverses a dispute, moving the signed amount back from held to
// available.
func (a *Account) Resolve(resolved decimal.Decimal) {
	a.Available = a.Available.Add(resolved)
	a.Held = a.Held.Sub(resolved)
}

// Chargeback finalizes a dispute against the client: the signed amount
// leaves held and total, and the account is locked.
func (a *Account) Chargeback(resolved decimal.Decimal) {
	a.Held = a.Held.Sub(resolved)
	a.Total = a.Total.Sub(resolved)
	a.Locked = true
}
