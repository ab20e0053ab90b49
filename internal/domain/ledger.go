package domain

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Ledger is the full replay state: per-client accounts plus the signed net
// amount of every applied deposit (+a) and withdrawal (-a), keyed by
// transaction id. The amounts index is append-only; it is what lets a later
// dispute, resolve or chargeback recover how much a prior transaction moved.
//
// A Ledger is not safe for concurrent use; callers that share one must
// serialize access.
type Ledger struct {
	accounts map[uint16]*Account
	amounts  map[uint32]decimal.Decimal
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[uint16]*Account),
		amounts:  make(map[uint32]decimal.Decimal),
	}
}

// Apply runs one transaction against the ledger. The account for the
// transaction's client is created on first reference, even when the
// transaction itself is dropped. A non-nil error means the transaction was
// dropped and balances are unchanged.
//
// No per-transaction state machine is enforced: a transaction id may be
// disputed, resolved or charged back any number of times and in any order,
// as long as its amount was recorded.
func (l *Ledger) Apply(tx Transaction) error {
	account := l.account(tx.ClientID)

	switch tx.Kind {
	case KindDeposit:
		account.Deposit(tx.Amount)
		l.amounts[tx.TxID] = tx.Amount

	case KindWithdrawal:
		if err := account.Withdraw(tx.Amount); err != nil {
			return fmt.Errorf("withdrawal tx %d: %w", tx.TxID, err)
		}
		l.amounts[tx.TxID] = tx.Amount.Neg()

	case KindDispute:
		resolved, ok := l.amounts[tx.TxID]
		if !ok {
			return fmt.Errorf("dispute tx %d: %w", tx.TxID, ErrUnknownTransaction)
		}
		account.Dispute(resolved)

	case KindResolve:
		resolved, ok := l.amounts[tx.TxID]
		if !ok {
			return fmt.Errorf("resolve tx %d: %w", tx.TxID, ErrUnknownTransaction)
		}
		account.Resolve(resolved)

	case KindChargeback:
		resolved, ok := l.amounts[tx.TxID]
		if !ok {
			return fmt.Errorf("chargeback tx %d: %w", tx.TxID, ErrUnknownTransaction)
		}
		account.Chargeback(resolved)

	default:
		return fmt.Errorf("tx %d: %w: %q", tx.TxID, ErrUnknownKind, tx.Kind)
	}

	return nil
}

// Account returns the account for a client, if the client has been seen.
func (l *Ledger) Account(clientID uint16) (*Account, bool) {
	account, ok := l.accounts[clientID]
	return account, ok
}

// Accounts returns the live per-client account map. Callers must treat it as
// read-only.
func (l *Ledger) Accounts() map[uint16]*Account {
	return l.accounts
}

// Clients returns all seen client ids in ascending order.
func (l *Ledger) Clients() []uint16 {
	clients := make([]uint16, 0, len(l.accounts))
	for clientID := range l.accounts {
		clients = append(clients, clientID)
	}
	slices.Sort(clients)
	return clients
}

// ResolvedAmount returns the recorded signed amount for a deposit or
// withdrawal transaction id.
func (l *Ledger) ResolvedAmount(txID uint32) (decimal.Decimal, bool) {
	amount, ok := l.amounts[txID]
	return amount, ok
}

func (l *Ledger) account(clientID uint16) *Account {
	account, ok := l.accounts[clientID]
	if !ok {
		account = &Account{}
		l.accounts[clientID] = account
	}
	return account
}
