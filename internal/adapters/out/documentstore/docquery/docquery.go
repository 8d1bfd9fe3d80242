// Package docquery evaluates ports.Query in process for document stores that
// have no native query language: equality filters, ordering and record
// copying over JSON-shaped values.
package docquery

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"dispatch/internal/core/ports"

	"github.com/spf13/cast"
)

// Apply filters docs and orders them as q describes. docs is not modified.
func Apply(docs []ports.Document, q ports.Query) []ports.Document {
	out := make([]ports.Document, 0, len(docs))
	for _, d := range docs {
		if Match(d.Data, q.Filters) {
			out = append(out, d)
		}
	}
	Sort(out, q.OrderBy, q.Descending)
	return out
}

// Match reports whether rec satisfies every filter. A missing field never matches.
func Match(rec ports.Record, filters []ports.Filter) bool {
	for _, f := range filters {
		v, ok := rec[f.Field]
		if !ok || !Equal(v, f.Value) {
			return false
		}
	}
	return true
}

// Equal compares two decoded values. Numbers compare by value regardless of
// their Go type (int64, float64, json.Number); other scalars by their string form.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if isNumber(a) && isNumber(b) {
		fa, errA := cast.ToFloat64E(a)
		fb, errB := cast.ToFloat64E(b)
		return errA == nil && errB == nil && fa == fb
	}
	sa, errA := cast.ToStringE(a)
	sb, errB := cast.ToStringE(b)
	if errA != nil || errB != nil {
		return false
	}
	return sa == sb
}

// Sort orders docs by field. Documents lacking the field go last in both
// directions; ties keep id order.
func Sort(docs []ports.Document, field string, descending bool) {
	if field == "" {
		slices.SortStableFunc(docs, func(a, b ports.Document) int {
			return cmp.Compare(a.ID, b.ID)
		})
		return
	}

	slices.SortStableFunc(docs, func(a, b ports.Document) int {
		va, okA := a.Data[field]
		vb, okB := b.Data[field]
		okA = okA && va != nil
		okB = okB && vb != nil
		switch {
		case !okA && !okB:
			return cmp.Compare(a.ID, b.ID)
		case !okA:
			return 1
		case !okB:
			return -1
		}

		c := compareValues(va, vb)
		if descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func compareValues(a, b any) int {
	if isNumber(a) && isNumber(b) {
		return cmp.Compare(cast.ToFloat64(a), cast.ToFloat64(b))
	}
	return cmp.Compare(cast.ToString(a), cast.ToString(b))
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return true
	}
	return false
}

// Encode serializes a record as a JSON object.
func Encode(rec ports.Record) ([]byte, error) {
	if rec == nil {
		rec = ports.Record{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// Decode parses a JSON object into a record. Numbers are kept as json.Number
// so that large integers survive the round trip.
func Decode(data []byte) (ports.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rec ports.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec == nil {
		rec = ports.Record{}
	}
	return rec, nil
}

// Clone returns a deep copy of rec with JSON value semantics.
func Clone(rec ports.Record) (ports.Record, error) {
	data, err := Encode(rec)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Merge returns base with fields overlaid. base is not modified.
func Merge(base, fields ports.Record) ports.Record {
	out := make(ports.Record, len(base)+len(fields))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
