package memory

import (
	"cmp"
	"fmt"
	"reflect"
	"time"

	"portfolio/internal/store"
)

func idOnly(q store.Query) (string, bool) {
	if len(q) != 1 {
		return "", false
	}
	id, ok := q[store.IDField].(string)
	return id, ok
}

func matches(doc store.Document, q store.Query) bool {
	for k, want := range q {
		got, ok := doc[k]
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if fa, ok := store.ToFloat(a); ok {
		fb, ok := store.ToFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders missing values first, then numbers, strings, booleans
// and timestamps, mirroring how a document database orders mixed types.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		return 0
	case 1:
		fa, _ := store.ToFloat(a)
		fb, _ := store.ToFloat(b)
		return cmp.Compare(fa, fb)
	case 2:
		return cmp.Compare(a.(string), b.(string))
	case 3:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case 4:
		return a.(time.Time).Compare(b.(time.Time))
	default:
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func rank(v any) int {
	if v == nil {
		return 0
	}
	if _, ok := store.ToFloat(v); ok {
		return 1
	}
	switch v.(type) {
	case string:
		return 2
	case bool:
		return 3
	case time.Time:
		return 4
	default:
		return 5
	}
}
