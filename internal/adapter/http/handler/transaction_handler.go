package handler

import (
	"context"
	"encoding/json"
	"net/http"

	csvadapter "github.com/olenheim/payrun/internal/adapter/csv"
	"github.com/olenheim/payrun/internal/adapter/http/dto"
	"github.com/olenheim/payrun/internal/domain"
	"github.com/olenheim/payrun/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	SubmitRecord(ctx context.Context, rec domain.Record) error
	Replay(ctx context.Context, source usecase.RecordSource) error
}

// TransactionHandler handles transaction submission requests.
type TransactionHandler struct {
	ledgerUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC TransactionService) *TransactionHandler {
	return &TransactionHandler{ledgerUC: ledgerUC}
}

// Submit applies a single raw record to the ledger.
func (h *TransactionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.ledgerUC.SubmitRecord(r.Context(), req.ToRecord()); err != nil {
		writeError(w, mapDomainError(err), "transaction not applied", err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, dto.StatusResponse{Status: "accepted"})
}

// Replay folds a CSV request body into the ledger using the same single-pass
// rules as a file run. Per-record problems are skipped, not reported back.
func (h *TransactionHandler) Replay(w http.ResponseWriter, r *http.Request) {
	source := csvadapter.NewReader(r.Body)

	if err := h.ledgerUC.Replay(r.Context(), source); err != nil {
		writeError(w, http.StatusBadRequest, "replay failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "completed"})
}
