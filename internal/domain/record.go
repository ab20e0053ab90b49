package domain

// Record is a raw transaction record as produced by a record source, before
// any validation. Amount is the unparsed field value; empty means the source
// carried no amount for this record.
type Record struct {
	Type   string
	Client uint16
	Tx     uint32
	Amount string
}
