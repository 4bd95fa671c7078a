package domain

import (
	"encoding/json"
	"time"
)

// Table is an uploaded tabular file held in memory for one session: ordered
// named columns over row-major string cells.
type Table struct {
	Columns []string
	Rows    [][]string
	// NumericCols holds indices of columns whose every populated cell
	// parses as a number.
	NumericCols []int
}

// Session owns the table a user is querying. A new upload replaces the
// table; the session is dropped once its TTL passes.
type Session struct {
	ID         string
	Filename   string
	Table      Table
	UploadedAt time.Time
}

// Result is a decoded model reply. The four keys are independent rather
// than mutually exclusive: a reply may carry several of them, and each
// present key drives one render path, in the fixed order answer, table,
// bar, line. Payloads stay raw JSON so that a malformed shape fails inside
// its own render path instead of rejecting the whole reply.
type Result struct {
	Answer json.RawMessage `json:"answer,omitempty"`
	Table  json.RawMessage `json:"table,omitempty"`
	Bar    json.RawMessage `json:"bar,omitempty"`
	Line   json.RawMessage `json:"line,omitempty"`
}

// TableSpec is the wire shape of a "table" payload: column names plus
// row-major value tuples.
type TableSpec struct {
	Columns []string `json:"columns"`
	Data    []any    `json:"data"`
}

// ChartSpec is the wire shape of a "bar" or "line" payload: one value tuple
// per category, one slot per column.
type ChartSpec struct {
	Columns []string `json:"columns"`
	Data    []any    `json:"data"`
}
