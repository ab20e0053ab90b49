package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustApply(t *testing.T, l *Ledger, tx Transaction) {
	t.Helper()
	if err := l.Apply(tx); err != nil {
		t.Fatalf("unexpected error applying %s tx %d: %v", tx.Kind, tx.TxID, err)
	}
}

func TestLedger_ApplyDeposit(t *testing.T) {
	l := NewLedger()

	mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: 42, TxID: 666, Amount: dec(t, "1.2345")})

	account, ok := l.Account(42)
	if !ok {
		t.Fatal("expected account 42 to exist")
	}
	assertBalances(t, account, "1.2345", "0", "1.2345", false)

	resolved, ok := l.ResolvedAmount(666)
	if !ok {
		t.Fatal("expected resolved amount for tx 666")
	}
	if !resolved.Equal(dec(t, "1.2345")) {
		t.Errorf("expected resolved amount 1.2345, got %s", resolved)
	}
}

func TestLedger_ApplyWithdrawalInsufficientFunds(t *testing.T) {
	l := NewLedger()

	err := l.Apply(Transaction{Kind: KindWithdrawal, ClientID: 42, TxID: 666, Amount: dec(t, "1.2345")})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// The account is created lazily even when the transaction is dropped.
	account, ok := l.Account(42)
	if !ok {
		t.Fatal("expected account 42 to exist")
	}
	assertBalances(t, account, "0", "0", "0", false)

	if _, ok := l.ResolvedAmount(666); ok {
		t.Error("expected no resolved amount for dropped withdrawal")
	}
}

func TestLedger_ApplyWithdrawal(t *testing.T) {
	l := NewLedger()
	mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: 42, TxID: 666, Amount: dec(t, "1.2345")})

	mustApply(t, l, Transaction{Kind: KindWithdrawal, ClientID: 42, TxID: 999, Amount: dec(t, "0.2345")})

	account, _ := l.Account(42)
	assertBalances(t, account, "1", "0", "1", false)

	resolved, ok := l.ResolvedAmount(999)
	if !ok {
		t.Fatal("expected resolved amount for tx 999")
	}
	if !resolved.Equal(dec(t, "-0.2345")) {
		t.Errorf("expected resolved amount -0.2345, got %s", resolved)
	}

	// The deposit's entry is untouched.
	resolved, _ = l.ResolvedAmount(666)
	if !resolved.Equal(dec(t, "1.2345")) {
		t.Errorf("expected resolved amount 1.2345 for tx 666, got %s", resolved)
	}
}

func TestLedger_DisputeResolveRoundTrip(t *testing.T) {
	l := NewLedger()
	mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: 42, TxID: 666, Amount: dec(t, "1.2345")})

	mustApply(t, l, Transaction{Kind: KindDispute, ClientID: 42, TxID: 666})
	account, _ := l.Account(42)
	assertBalances(t, account, "0", "1.2345", "1.2345", false)

	mustApply(t, l, Transaction{Kind: KindResolve, ClientID: 42, TxID: 666})
	assertBalances(t, account, "1.2345", "0", "1.2345", false)
}

func TestLedger_DisputeChargeback(t *testing.T) {
	l := NewLedger()
	mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: 42, TxID: 666, Amount: dec(t, "1.2345")})
	mustApply(t, l, Transaction{Kind: KindDispute, ClientID: 42, TxID: 666})

	mustApply(t, l, Transaction{Kind: KindChargeback, ClientID: 42, TxID: 666})

	account, _ := l.Account(42)
	assertBalances(t, account, "0", "0", "0", true)
}

func TestLedger_UnknownReferenceLeavesAccountUnchanged(t *testing.T) {
	kinds := []Kind{KindDispute, KindResolve, KindChargeback}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			l := NewLedger()
			mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: 42, TxID: 666, Amount: dec(t, "1.2345")})

			err := l.Apply(Transaction{Kind: kind, ClientID: 42, TxID: 12345})
			if !errors.Is(err, ErrUnknownTransaction) {
				t.Fatalf("expected ErrUnknownTransaction, got %v", err)
			}

			account, _ := l.Account(42)
			assertBalances(t, account, "1.2345", "0", "1.2345", false)
		})
	}
}

func TestLedger_LockedAccountKeepsProcessing(t *testing.T) {
	l := NewLedger()
	mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: 7, TxID: 1, Amount: dec(t, "10")})
	mustApply(t, l, Transaction{Kind: KindDispute, ClientID: 7, TxID: 1})
	mustApply(t, l, Transaction{Kind: KindChargeback, ClientID: 7, TxID: 1})

	account, _ := l.Account(7)
	if !account.Locked {
		t.Fatal("expected account to be locked after chargeback")
	}

	// Deposits and withdrawals still apply after the lock.
	mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: 7, TxID: 2, Amount: dec(t, "3")})
	mustApply(t, l, Transaction{Kind: KindWithdrawal, ClientID: 7, TxID: 3, Amount: dec(t, "1")})
	assertBalances(t, account, "2", "0", "2", true)
}

func TestLedger_RepeatedDisputeIsPermitted(t *testing.T) {
	// Only the existence of a resolved amount is checked, not whether the
	// transaction is currently disputed, so a second dispute applies again.
	l := NewLedger()
	mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: 42, TxID: 666, Amount: dec(t, "1")})

	mustApply(t, l, Transaction{Kind: KindDispute, ClientID: 42, TxID: 666})
	mustApply(t, l, Transaction{Kind: KindDispute, ClientID: 42, TxID: 666})

	account, _ := l.Account(42)
	assertBalances(t, account, "-1", "2", "1", false)
}

func TestLedger_DeterministicReplay(t *testing.T) {
	sequence := []Transaction{
		{Kind: KindDeposit, ClientID: 1, TxID: 1, Amount: dec(t, "5.5")},
		{Kind: KindDeposit, ClientID: 2, TxID: 2, Amount: dec(t, "3.25")},
		{Kind: KindWithdrawal, ClientID: 1, TxID: 3, Amount: dec(t, "2")},
		{Kind: KindDispute, ClientID: 1, TxID: 1},
		{Kind: KindResolve, ClientID: 1, TxID: 1},
		{Kind: KindDispute, ClientID: 2, TxID: 2},
		{Kind: KindChargeback, ClientID: 2, TxID: 2},
	}

	replay := func() *Ledger {
		l := NewLedger()
		for _, tx := range sequence {
			_ = l.Apply(tx)
		}
		return l
	}

	first, second := replay(), replay()

	for _, clientID := range first.Clients() {
		a, _ := first.Account(clientID)
		b, ok := second.Account(clientID)
		if !ok {
			t.Fatalf("client %d missing from second replay", clientID)
		}
		if !a.Available.Equal(b.Available) || !a.Held.Equal(b.Held) ||
			!a.Total.Equal(b.Total) || a.Locked != b.Locked {
			t.Errorf("client %d differs between replays: %+v vs %+v", clientID, a, b)
		}
	}
}

func TestLedger_TotalInvariantAfterEveryTransition(t *testing.T) {
	l := NewLedger()
	sequence := []Transaction{
		{Kind: KindDeposit, ClientID: 1, TxID: 1, Amount: dec(t, "10.0001")},
		{Kind: KindWithdrawal, ClientID: 1, TxID: 2, Amount: dec(t, "0.0001")},
		{Kind: KindDispute, ClientID: 1, TxID: 2},
		{Kind: KindDispute, ClientID: 1, TxID: 1},
		{Kind: KindResolve, ClientID: 1, TxID: 2},
		{Kind: KindChargeback, ClientID: 1, TxID: 1},
	}

	for _, tx := range sequence {
		_ = l.Apply(tx)
		account, _ := l.Account(tx.ClientID)
		if !account.Total.Equal(account.Available.Add(account.Held)) {
			t.Fatalf("after %s tx %d: total %s != available %s + held %s",
				tx.Kind, tx.TxID, account.Total, account.Available, account.Held)
		}
	}
}

func TestLedger_Clients(t *testing.T) {
	l := NewLedger()
	for _, clientID := range []uint16{500, 3, 42} {
		mustApply(t, l, Transaction{Kind: KindDeposit, ClientID: clientID, TxID: uint32(clientID), Amount: decimal.New(1, 0)})
	}

	clients := l.Clients()
	want := []uint16{3, 42, 500}
	if len(clients) != len(want) {
		t.Fatalf("expected %d clients, got %d", len(want), len(clients))
	}
	for i := range want {
		if clients[i] != want[i] {
			t.Errorf("expected clients[%d] = %d, got %d", i, want[i], clients[i])
		}
	}
}
