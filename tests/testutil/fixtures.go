// Package testutil provides shared fixtures for payrun tests.
package testutil

import "strings"

// SampleCSV is a transaction stream exercising every kind plus the
// error-tolerance paths: an insufficient withdrawal, an unknown dispute
// reference and a malformed amount.
const SampleCSV = `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.0
dispute, 1, 1,
resolve, 1, 1,
dispute, 2, 2,
chargeback, 2, 2,
dispute, 1, 999,
deposit, 3, 6, BAD
`

// SampleSummary is the exact summary SampleCSV produces, sorted by client.
// Client 2 ends charged back and locked; client 1's dispute round-trips;
// client 2's failed withdrawal and the bad rows leave no trace.
const SampleSummary = `client,available,held,total,locked
1,1.5000,0.0000,1.5000,false
2,0.0000,0.0000,0.0000,true
`

// CSV builds a transaction CSV from rows, prepending the standard header.
func CSV(rows ...string) string {
	return "type, client, tx, amount\n" + strings.Join(rows, "\n") + "\n"
}
