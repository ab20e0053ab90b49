package usecase

import "github.com/olenheim/payrun/internal/domain"

// RecordSource produces raw transaction records one at a time, in input
// order. Next returns io.EOF once the source is exhausted. An error wrapping
// domain.ErrMalformedRecord marks a single unparseable record; the source
// stays usable and callers skip the record.
type RecordSource interface {
	Next() (domain.Record, error)
}
