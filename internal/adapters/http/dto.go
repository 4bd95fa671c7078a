package http

// UploadResponse is the JSON shape returned by POST /v1/upload.
type UploadResponse struct {
	Filename       string     `json:"filename"`
	Columns        []string   `json:"columns"`
	RowCount       int        `json:"row_count"`
	NumericColumns []string   `json:"numeric_columns"`
	Preview        [][]string `json:"preview"`
}

// AskRequest is the JSON body accepted by POST /v1/ask.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse is the JSON shape returned by POST /v1/ask.
type AskResponse struct {
	Blocks []BlockResp `json:"blocks"`
	Meta   MetaResp    `json:"meta"`
}

// BlockResp is one rendered unit of the reply: plain text, a table, a chart
// or an inline error, discriminated by Type.
type BlockResp struct {
	Type  string     `json:"type"`
	Text  string     `json:"text,omitempty"`
	Table *TableResp `json:"table,omitempty"`
	Chart *ChartResp `json:"chart,omitempty"`
}

type TableResp struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type ChartResp struct {
	Kind       string       `json:"kind"`
	Categories []string     `json:"categories"`
	Series     []SeriesResp `json:"series"`
}

type SeriesResp struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type MetaResp struct {
	Model     string `json:"model"`
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
