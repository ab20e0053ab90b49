package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind is a transaction type. The set is closed: deposits and withdrawals
// move money and carry an amount; dispute, resolve and chargeback reference
// a prior transaction by id and carry none.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// Transaction is an immutable domain transaction. Amount is set only when
// Kind is KindDeposit or KindWithdrawal.
type Transaction struct {
	Kind     Kind
	ClientID uint16
	TxID     uint32
	Amount   decimal.Decimal
}

// NewTransaction validates a raw record and converts it into a Transaction.
// Deposits and withdrawals require a parseable decimal amount; the other
// kinds ignore any amount present on the record.
func NewTransaction(rec Record) (Transaction, error) {
	tx := Transaction{ClientID: rec.Client, TxID: rec.Tx}

	switch Kind(rec.Type) {
	case KindDeposit, KindWithdrawal:
		if rec.Amount == "" {
			return Transaction{}, fmt.Errorf("%s tx %d: %w", rec.Type, rec.Tx, ErrMissingAmount)
		}
		amount, err := decimal.NewFromString(rec.Amount)
		if err != nil {
			return Transaction{}, fmt.Errorf("%s tx %d amount %q: %w", rec.Type, rec.Tx, rec.Amount, ErrInvalidAmount)
		}
		tx.Kind = Kind(rec.Type)
		tx.Amount = amount

	case KindDispute, KindResolve, KindChargeback:
		tx.Kind = Kind(rec.Type)

	default:
		return Transaction{}, fmt.Errorf("tx %d: %w: %q", rec.Tx, ErrUnknownKind, rec.Type)
	}

	return tx, nil
}
