package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/olenheim/payrun/internal/domain"
	"github.com/olenheim/payrun/internal/infrastructure/metrics"
)

// ReplayUseCase folds transactions from a record source into a ledger, one
// record at a time in input order. Records that fail construction and
// transactions the ledger drops are logged and skipped; they never abort a
// run.
type ReplayUseCase struct {
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewReplayUseCase creates a new ReplayUseCase. metrics may be nil for pure
// library use.
func NewReplayUseCase(logger zerolog.Logger, m *metrics.Metrics) *ReplayUseCase {
	return &ReplayUseCase{
		logger:  logger,
		metrics: m,
	}
}

// Run replays the full source into a fresh ledger and returns it.
func (uc *ReplayUseCase) Run(ctx context.Context, source RecordSource) (*domain.Ledger, error) {
	ledger := domain.NewLedger()
	if err := uc.RunInto(ctx, ledger, source); err != nil {
		return nil, err
	}
	return ledger, nil
}

// RunInto replays the source into an existing ledger. Only source failures
// and context cancellation abort the run; per-record problems are logged
// under the run's id and processing continues with the next record.
func (uc *ReplayUseCase) RunInto(ctx context.Context, ledger *domain.Ledger, source RecordSource) error {
	logger := uc.logger.With().Str("run_id", ulid.Make().String()).Logger()
	start := time.Now()

	var applied, dropped, malformed int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !errors.Is(err, domain.ErrMalformedRecord) {
				return err
			}
			malformed++
			uc.observeMalformed()
			logger.Error().Err(err).Msg("skipping malformed record")
			continue
		}

		tx, err := domain.NewTransaction(rec)
		if err != nil {
			malformed++
			uc.observeMalformed()
			logger.Error().Err(err).
				Uint16("client_id", rec.Client).
				Uint32("tx_id", rec.Tx).
				Msg("skipping malformed record")
			continue
		}

		if err := ledger.Apply(tx); err != nil {
			dropped++
			uc.observeDropped(tx, err)
			logger.Warn().Err(err).
				Str("kind", string(tx.Kind)).
				Uint16("client_id", tx.ClientID).
				Uint32("tx_id", tx.TxID).
				Msg("transaction dropped")
			continue
		}

		applied++
		uc.observeApplied(tx)
	}

	if uc.metrics != nil {
		uc.metrics.ReplayDuration.Observe(time.Since(start).Seconds())
		uc.metrics.AccountsTracked.Set(float64(len(ledger.Accounts())))
	}

	logger.Info().
		Int("applied", applied).
		Int("dropped", dropped).
		Int("malformed", malformed).
		Int("accounts", len(ledger.Accounts())).
		Dur("elapsed", time.Since(start)).
		Msg("replay completed")

	return nil
}

func (uc *ReplayUseCase) observeApplied(tx domain.Transaction) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.TransactionsApplied.WithLabelValues(string(tx.Kind)).Inc()
	if tx.Kind == domain.KindChargeback {
		uc.metrics.AccountsLocked.Inc()
	}
}

func (uc *ReplayUseCase) observeDropped(tx domain.Transaction, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.TransactionsDropped.WithLabelValues(string(tx.Kind), dropReason(err)).Inc()
}

func (uc *ReplayUseCase) observeMalformed() {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordsMalformed.Inc()
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrUnknownTransaction):
		return "unknown_transaction"
	default:
		return "other"
	}
}
