package render

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/csvchat/csvchat-go/internal/domain"
)

// Renderer turns decoded results into display blocks. A failure in one
// render path is contained: it yields an inline error block and never stops
// the remaining paths.
type Renderer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render emits one block per key present on the result, in the fixed order
// answer, table, bar, line. Keys are independent: a reply carrying several
// keys yields several blocks, and a reply carrying none yields none.
func (r *Renderer) Render(ctx context.Context, res domain.Result) []Block {
	var blocks []Block

	if len(res.Answer) > 0 {
		blocks = append(blocks, Block{Kind: BlockText, Text: answerText(res.Answer)})
	}

	if len(res.Table) > 0 {
		table, err := buildTable(res.Table)
		if err != nil {
			r.logger.ErrorContext(ctx, "table payload unusable", "error", err)
			blocks = append(blocks, Block{Kind: BlockError, Text: fmt.Sprintf("Error displaying table: %v", err)})
		} else {
			blocks = append(blocks, Block{Kind: BlockTable, Table: table})
		}
	}

	if len(res.Bar) > 0 {
		blocks = append(blocks, r.chartBlock(ctx, ChartBar, res.Bar))
	}
	if len(res.Line) > 0 {
		blocks = append(blocks, r.chartBlock(ctx, ChartLine, res.Line))
	}

	return blocks
}

func (r *Renderer) chartBlock(ctx context.Context, kind ChartKind, raw json.RawMessage) Block {
	chart, err := buildChart(kind, raw)
	if err != nil {
		r.logger.ErrorContext(ctx, "chart payload unusable", "kind", string(kind), "error", err)
		noun := "bar chart"
		if kind == ChartLine {
			noun = "line chart"
		}
		return Block{Kind: BlockError, Text: fmt.Sprintf("Error creating %s: %v", noun, err)}
	}
	return Block{Kind: BlockChart, Chart: chart}
}

// answerText unwraps a JSON string; any other value is shown as its raw
// JSON text.
func answerText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// buildTable materializes a {columns, data} payload. Both keys must be
// present, and every data element must be a tuple with exactly one cell per
// column. A present-but-empty data array is a valid empty table.
func buildTable(raw json.RawMessage) (*Table, error) {
	var spec domain.TableSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}
	if spec.Data == nil {
		return nil, fmt.Errorf("table has no data")
	}
	if spec.Columns == nil {
		return nil, fmt.Errorf("table has no columns")
	}

	rows := make([][]string, 0, len(spec.Data))
	for i, item := range spec.Data {
		tuple, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("row %d is not a value tuple", i)
		}
		if len(tuple) != len(spec.Columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(tuple), len(spec.Columns))
		}
		cells := make([]string, len(tuple))
		for j, v := range tuple {
			cells[j] = formatCell(v)
		}
		rows = append(rows, cells)
	}
	return &Table{Columns: spec.Columns, Rows: rows}, nil
}

// buildChart transposes an array of value tuples (one tuple per category,
// one slot per column) into per-column series. The first column becomes the
// category axis; the remaining columns must be numeric. Tuples longer than
// the column list keep their extra values unused.
func buildChart(kind ChartKind, raw json.RawMessage) (*Chart, error) {
	var spec domain.ChartSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}
	if len(spec.Columns) == 0 {
		return nil, fmt.Errorf("chart has no columns")
	}
	if spec.Data == nil {
		return nil, fmt.Errorf("chart has no data")
	}

	categories := make([]string, len(spec.Data))
	series := make([]Series, len(spec.Columns)-1)
	for i, name := range spec.Columns[1:] {
		series[i] = Series{Name: name, Values: make([]float64, len(spec.Data))}
	}

	for i, item := range spec.Data {
		tuple, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("category %d is not a value tuple", i)
		}
		if len(tuple) < len(spec.Columns) {
			return nil, fmt.Errorf("category %d has %d values, want %d", i, len(tuple), len(spec.Columns))
		}
		categories[i] = formatCell(tuple[0])
		for j := range series {
			n, ok := tuple[j+1].(float64)
			if !ok {
				return nil, fmt.Errorf("column %q value %d is not numeric", spec.Columns[j+1], i)
			}
			series[j].Values[i] = n
		}
	}
	return &Chart{Kind: kind, Categories: categories, Series: series}, nil
}

// formatCell renders one scalar cell the way JSON carried it.
func formatCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
