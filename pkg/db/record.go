package db

import (
	"bytes"
	"maps"
	"slices"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
)

// Record is one result row: column values in select order.
type Record struct {
	values  map[string]any
	columns []string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set assigns a column value, appending the column when it is new.
func (r *Record) Set(column string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the value of column, or nil.
func (r Record) Get(column string) any {
	return r.values[column]
}

// Lookup returns the value of column and whether the row has it.
func (r Record) Lookup(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Columns returns the column names in select order.
func (r Record) Columns() []string {
	return slices.Clone(r.columns)
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.columns)
}

// Map returns a copy of the row as a map.
func (r Record) Map() map[string]any {
	return maps.Clone(r.values)
}

// MarshalJSON encodes the row as an object with keys in select order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, column := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[column])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// scanRecords reads every row. Byte slices become strings.
func scanRecords(rows *sqlx.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := []Record{}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		rec := NewRecord()
		for i, column := range columns {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			rec.Set(column, v)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
