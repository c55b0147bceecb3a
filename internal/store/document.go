package store

import (
	"fmt"
	"maps"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeLayout is the fixed-width form used where timestamps are stored as text,
// so lexical order equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// Document is a single record. The id is stored under IDField.
type Document map[string]any

func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

func (d Document) ID() string {
	return d.String(IDField)
}

func (d Document) String(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (d Document) Int(key string) int {
	n, _ := ToFloat(d[key])
	return int(n)
}

func (d Document) Float(key string) float64 {
	n, _ := ToFloat(d[key])
	return n
}

// Time reads a timestamp regardless of how the backend represented it.
func (d Document) Time(key string) time.Time {
	t, _ := ToTime(d[key])
	return t
}

func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case primitive.DateTime:
		return t.Time().UTC(), true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC(), true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
