package domain

// Column names recognized during ingestion. Header matching is
// case-insensitive; these are the canonical spellings and the fixed
// column order of the unified table.
const (
	ColAccount        = "Account"
	ColMerchantID     = "Merchant ID"
	ColAmount         = "Amount"
	ColRemitTimestamp = "Remit. Timestamp"
	ColIssueTimestamp = "Issue Timestamp"
	ColState          = "State"
)

// RequiredColumns returns the six recognized columns in canonical order.
// Every other source column is dropped during ingestion.
func RequiredColumns() []string {
	return []string{
		ColAccount,
		ColMerchantID,
		ColAmount,
		ColRemitTimestamp,
		ColIssueTimestamp,
		ColState,
	}
}

// TxRecord is one row of the unified transaction table. Rows are anonymous;
// only the six field values matter. Timestamps stay as the source strings,
// the issue timestamp is parsed on demand for date-range computation.
type TxRecord struct {
	Account        string  `json:"account,omitempty"`
	MerchantID     string  `json:"merchant_id"`
	Amount         float64 `json:"amount"`
	RemitTimestamp string  `json:"remit_timestamp,omitempty"`
	IssueTimestamp string  `json:"issue_timestamp,omitempty"`
	State          TxState `json:"state"`
}

// Table is the unified record set produced by merging all uploaded files
// for one session. It is built once per batch and treated as read-only by
// every statistics consumer.
type Table struct {
	Rows []TxRecord `json:"rows"`
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
