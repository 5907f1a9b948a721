package admin

import (
	"strings"

	"github.com/hoteldesk/go-hotel-client/core"
)

// Row is one rendered record.
type Row struct {
	ID    string
	Cells []string
}

func (r Row) String() string {
	return strings.Join(r.Cells, " / ")
}

// Presenter renders a collection as table rows. It holds no state besides the schema.
type Presenter struct {
	schema *Schema
}

func NewPresenter(schema *Schema) Presenter {
	return Presenter{schema: schema}
}

// Headers returns the column labels.
func (p Presenter) Headers() []string {
	columns := p.schema.Columns()
	headers := make([]string, 0, len(columns))
	for _, f := range columns {
		headers = append(headers, f.Label)
	}
	return headers
}

// Rows renders one row per record, in collection order.
func (p Presenter) Rows(records core.RecordSet) []Row {
	columns := p.schema.Columns()
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		cells := make([]string, 0, len(columns))
		for _, f := range columns {
			cells = append(cells, FormatCell(f, record[f.Name]))
		}
		rows = append(rows, Row{ID: record.RecordID(), Cells: cells})
	}
	return rows
}

// FormatCell renders a single value of field f.
func FormatCell(f Field, value any) string {
	if f.Format != nil {
		return f.Format(value)
	}
	if f.Kind == KindInteger {
		if parsed, err := coerce(f, value); err == nil {
			return core.FormatScalar(parsed)
		}
	}
	return core.FormatScalar(value)
}
