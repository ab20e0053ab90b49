package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olenheim/payrun/internal/domain"
)

// Reader is a lazy, single-pass record source over CSV input with a header
// of type, client, tx and optionally amount. Fields are whitespace-trimmed.
// A bad row surfaces as a per-record error wrapping domain.ErrMalformedRecord
// and the stream stays readable.
type Reader struct {
	csv    *stdcsv.Reader
	header map[string]int
	line   int
}

// NewReader creates a Reader over r. The header row is consumed on the first
// call to Next.
func NewReader(r io.Reader) *Reader {
	cr := stdcsv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Dispute, resolve and chargeback rows may omit the amount column.
	cr.FieldsPerRecord = -1

	return &Reader{csv: cr}
}

// Next returns the next raw record. io.EOF ends the stream.
func (r *Reader) Next() (domain.Record, error) {
	if r.header == nil {
		if err := r.readHeader(); err != nil {
			return domain.Record{}, err
		}
	}

	row, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Record{}, io.EOF
		}
		var parseErr *stdcsv.ParseError
		if errors.As(err, &parseErr) {
			return domain.Record{}, fmt.Errorf("row %d: %w: %v", parseErr.Line, domain.ErrMalformedRecord, err)
		}
		return domain.Record{}, err
	}
	r.line++

	rec := domain.Record{
		Type:   r.field(row, "type"),
		Amount: r.field(row, "amount"),
	}

	client, err := strconv.ParseUint(r.field(row, "client"), 10, 16)
	if err != nil {
		return domain.Record{}, fmt.Errorf("row %d client: %w: %v", r.line, domain.ErrMalformedRecord, err)
	}
	rec.Client = uint16(client)

	tx, err := strconv.ParseUint(r.field(row, "tx"), 10, 32)
	if err != nil {
		return domain.Record{}, fmt.Errorf("row %d tx: %w: %v", r.line, domain.ErrMalformedRecord, err)
	}
	rec.Tx = uint32(tx)

	return rec, nil
}

func (r *Reader) readHeader() error {
	row, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("read header: %w", err)
	}
	r.line++

	header := make(map[string]int, len(row))
	for i, name := range row {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := header[required]; !ok {
			return fmt.Errorf("header is missing column %q", required)
		}
	}

	r.header = header
	return nil
}

func (r *Reader) field(row []string, name string) string {
	i, ok := r.header[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
