package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/olenheim/payrun/internal/domain"
)

// WriteSummary renders the final account mapping as CSV with amounts fixed
// at 4 fractional digits. Rows are sorted by client id ascending so output
// is deterministic; the ledger itself imposes no order.
func WriteSummary(w io.Writer, accounts map[uint16]*domain.Account) error {
	cw := stdcsv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	clients := make([]uint16, 0, len(accounts))
	for clientID := range accounts {
		clients = append(clients, clientID)
	}
	slices.Sort(clients)

	for _, clientID := range clients {
		account := accounts[clientID]
		row := []string{
			strconv.FormatUint(uint64(clientID), 10),
			account.Available.StringFixed(4),
			account.Held.StringFixed(4),
			account.Total.StringFixed(4),
			strconv.FormatBool(account.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write client %d: %w", clientID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
