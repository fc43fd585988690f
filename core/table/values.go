package table

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order when coercing text into a timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// normalizeValue maps driver values onto the Row value set.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return normalizeUint(x)
	case float32:
		return float64(x)
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		return x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return v
	}
}

// normalizeUint keeps values above math.MaxInt64 as uint64 instead of wrapping.
func normalizeUint(x uint64) any {
	if x > math.MaxInt64 {
		return x
	}
	return int64(x)
}

// NormalizeRow normalises every value of the row in place and returns it.
func NormalizeRow(r Row) Row {
	for k, v := range r {
		r[k] = normalizeValue(v)
	}
	return r
}

// CoerceTimestamp converts v into a time.Time. Unparseable input yields nil.
// Numbers are read as milliseconds since the Unix epoch, which is what grid widgets send.
func CoerceTimestamp(v any) any {
	switch x := normalizeValue(v).(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return x
	case int64:
		return time.UnixMilli(x).UTC()
	case float64:
		return time.UnixMilli(int64(x)).UTC()
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
		return nil
	default:
		return nil
	}
}

// CoerceTimestamps converts the named columns of r into timestamps in place.
// Columns missing from the row are left alone.
func CoerceTimestamps(r Row, columns []string) Row {
	for _, c := range columns {
		if v, ok := r[c]; ok {
			r[c] = CoerceTimestamp(v)
		}
	}
	return r
}
