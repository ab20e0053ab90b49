package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olenheim/payrun/internal/adapter/http/dto"
	"github.com/olenheim/payrun/internal/domain"
	"github.com/olenheim/payrun/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetAccount(clientID uint16) (domain.Account, error)
	ListAccounts() []usecase.AccountSummary
}

// AccountHandler handles account query requests.
type AccountHandler struct {
	ledgerUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerUC AccountService) *AccountHandler {
	return &AccountHandler{ledgerUC: ledgerUC}
}

// Get retrieves one client's account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseUint(chi.URLParam(r, "clientID"), 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", err.Error())
		return
	}

	account, err := h.ledgerUC.GetAccount(uint16(clientID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(uint16(clientID), account))
}

// List returns all accounts, sorted by client id.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AccountsFromSummaries(h.ledgerUC.ListAccounts()))
}
