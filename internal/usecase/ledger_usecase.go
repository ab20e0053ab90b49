package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/olenheim/payrun/internal/domain"
	"github.com/olenheim/payrun/internal/infrastructure/metrics"
)

// AccountSummary pairs a client id with a snapshot of its account.
type AccountSummary struct {
	ClientID uint16
	Account  domain.Account
}

// LedgerUseCase owns a single long-lived ledger and serializes access to it
// so the HTTP surface can feed it transactions interactively. The replay
// rules are identical to a file run; the mutex only serializes callers, the
// fold itself stays strictly sequential.
type LedgerUseCase struct {
	mu     sync.Mutex
	ledger *domain.Ledger

	replay  *ReplayUseCase
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewLedgerUseCase creates a LedgerUseCase over an empty ledger. metrics may
// be nil.
func NewLedgerUseCase(replay *ReplayUseCase, logger zerolog.Logger, m *metrics.Metrics) *LedgerUseCase {
	return &LedgerUseCase{
		ledger:  domain.NewLedger(),
		replay:  replay,
		logger:  logger,
		metrics: m,
	}
}

// SubmitRecord validates a single raw record and applies it to the shared
// ledger. A construction error means the record was malformed; a ledger
// error means the transaction was dropped with no state change.
func (uc *LedgerUseCase) SubmitRecord(ctx context.Context, rec domain.Record) error {
	tx, err := domain.NewTransaction(rec)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordsMalformed.Inc()
		}
		uc.logger.Error().Err(err).
			Uint16("client_id", rec.Client).
			Uint32("tx_id", rec.Tx).
			Msg("rejecting malformed record")
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ledger.Apply(tx); err != nil {
		uc.replay.observeDropped(tx, err)
		uc.logger.Warn().Err(err).
			Str("kind", string(tx.Kind)).
			Uint16("client_id", tx.ClientID).
			Uint32("tx_id", tx.TxID).
			Msg("transaction dropped")
		return err
	}

	uc.replay.observeApplied(tx)
	if uc.metrics != nil {
		uc.metrics.AccountsTracked.Set(float64(len(uc.ledger.Accounts())))
	}
	return nil
}

// Replay folds a whole record source into the shared ledger under the lock.
func (uc *LedgerUseCase) Replay(ctx context.Context, source RecordSource) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.replay.RunInto(ctx, uc.ledger, source)
}

// GetAccount returns a snapshot of one client's account.
func (uc *LedgerUseCase) GetAccount(clientID uint16) (domain.Account, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, ok := uc.ledger.Account(clientID)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return *account, nil
}

// ListAccounts returns snapshots of all accounts, sorted by client id.
func (uc *LedgerUseCase) ListAccounts() []AccountSummary {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	clients := uc.ledger.Clients()
	summaries := make([]AccountSummary, 0, len(clients))
	for _, clientID := range clients {
		account, _ := uc.ledger.Account(clientID)
		summaries = append(summaries, AccountSummary{ClientID: clientID, Account: *account})
	}
	return summaries
}
