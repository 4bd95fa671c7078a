package render

// BlockKind names the renderable output families.
type BlockKind string

const (
	BlockText  BlockKind = "text"
	BlockTable BlockKind = "table"
	BlockChart BlockKind = "chart"
	BlockError BlockKind = "error"
)

// ChartKind distinguishes the two chart render paths.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
)

// Block is one rendered unit of a model reply. Exactly one payload field is
// set, selected by Kind; BlockText and BlockError carry Text.
type Block struct {
	Kind  BlockKind
	Text  string
	Table *Table
	Chart *Chart
}

// Table is a fully materialized tabular view: header plus row-major cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Chart is a category axis with one numeric series per remaining column.
type Chart struct {
	Kind       ChartKind
	Categories []string
	Series     []Series
}

// Series is a named value sequence, index-aligned with the categories.
type Series struct {
	Name   string
	Values []float64
}
