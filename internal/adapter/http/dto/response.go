package dto

import (
	"github.com/olenheim/payrun/internal/domain"
	"github.com/olenheim/payrun/internal/usecase"
)

// AccountResponse represents an account in API responses. Amounts are
// rendered with exactly 4 fractional digits.
type AccountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// AccountFromDomain converts a domain account snapshot to a response.
func AccountFromDomain(clientID uint16, account domain.Account) *AccountResponse {
	return &AccountResponse{
		Client:    clientID,
		Available: account.Available.StringFixed(4),
		Held:      account.Held.StringFixed(4),
		Total:     account.Total.StringFixed(4),
		Locked:    account.Locked,
	}
}

// AccountsFromSummaries converts account summaries to responses.
func AccountsFromSummaries(summaries []usecase.AccountSummary) []*AccountResponse {
	result := make([]*AccountResponse, len(summaries))
	for i, s := range summaries {
		result[i] = AccountFromDomain(s.ClientID, s.Account)
	}
	return result
}

// StatusResponse is a minimal acknowledgement body.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
