package dto

import "github.com/olenheim/payrun/internal/domain"

// SubmitTransactionRequest mirrors a raw transaction record. Amount is kept
// as a string so the engine's exact-decimal parsing decides validity.
type SubmitTransactionRequest struct {
	Type   string `json:"type"`
	Client uint16 `json:"client"`
	Tx     uint32 `json:"tx"`
	Amount string `json:"amount,omitempty"`
}

// ToRecord converts the request into a raw domain record.
func (r SubmitTransactionRequest) ToRecord() domain.Record {
	return domain.Record{
		Type:   r.Type,
		Client: r.Client,
		Tx:     r.Tx,
		Amount: r.Amount,
	}
}
