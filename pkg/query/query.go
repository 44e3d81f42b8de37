// Package query projects records through a jq expression.
package query

import (
	"encoding/json"
	"math/big"
	"strconv"

	"github.com/itchyny/gojq"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/pkg/record"
)

// Query is a compiled jq expression.
type Query struct {
	expr string
	code *gojq.Code
}

// Compile parses and compiles expr.
func Compile(expr string) (*Query, error) {
	parsed, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.QueryInvalid(expr, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, errors.QueryInvalid(expr, err)
	}
	return &Query{expr: expr, code: code}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expr
}

// Apply runs the query against one record and returns one record per
// result. Records that failed to parse pass through unchanged. A runtime
// error becomes an error record carrying the jq message and the input line.
func (q *Query) Apply(rec *record.Record) []*record.Record {
	if !rec.OK() {
		return []*record.Record{rec}
	}

	var out []*record.Record
	iter := q.code.Run(toJQ(rec.Value))
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			out = append(out, &record.Record{Index: rec.Index, Raw: rec.Raw, Err: err.Error()})
			break
		}
		data, err := json.Marshal(v)
		if err != nil {
			out = append(out, &record.Record{Index: rec.Index, Raw: rec.Raw, Err: err.Error()})
			break
		}
		out = append(out, record.ParseLine(rec.Index, string(data)))
	}
	return out
}

// ApplyAll runs the query over records and renumbers the results densely.
func (q *Query) ApplyAll(records []*record.Record) []*record.Record {
	var out []*record.Record
	for _, rec := range records {
		for _, r := range q.Apply(rec) {
			r.Index = len(out)
			out = append(out, r)
		}
	}
	return out
}

// toJQ converts a value to the representation gojq accepts. Integer
// literals keep full precision.
func toJQ(v *record.Value) any {
	switch v.Kind {
	case record.KindNull:
		return nil
	case record.KindBool:
		return v.Bool
	case record.KindNumber:
		if i, ok := new(big.Int).SetString(v.Number, 10); ok {
			if i.IsInt64() {
				return int(i.Int64())
			}
			return i
		}
		f, _ := strconv.ParseFloat(v.Number, 64)
		return f
	case record.KindString:
		return v.Str
	case record.KindArray:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = toJQ(item)
		}
		return out
	case record.KindObject:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			out[m.Key] = toJQ(m.Value)
		}
		return out
	}
	return nil
}
