package memstore

import (
	"reflect"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openbloom/bloom/store"
)

// applyFields lays fields over doc, resolving update markers. Dotted field
// paths descend into nested maps, creating them as needed.
func (s *Store) applyFields(doc store.Document, fields store.Document) {
	for field, value := range fields {
		parent, key := descend(doc, field)
		switch v := value.(type) {
		case store.IncValue:
			parent[key] = toInt64(parent[key]) + v.Amount
		case store.ArrayUnionValue:
			parent[key] = arrayUnion(parent[key], v.Value)
		case store.ArrayRemoveValue:
			parent[key] = arrayRemove(parent[key], v.Value)
		case store.ServerTimestampValue:
			parent[key] = s.Now()
		default:
			parent[key] = deepCopy(value)
		}
	}
}

func descend(doc store.Document, field string) (map[string]any, string) {
	parts := strings.Split(field, ".")
	current := map[string]any(doc)
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			if m, isPrim := current[part].(primitive.M); isPrim {
				next = map[string]any(m)
			} else {
				next = map[string]any{}
			}
			current[part] = next
		}
		current = next
	}
	return current, parts[len(parts)-1]
}

func docValue(doc store.Document, field string) any {
	parts := strings.Split(field, ".")
	var current any = map[string]any(doc)
	for _, part := range parts {
		switch m := current.(type) {
		case map[string]any:
			current = m[part]
		case primitive.M:
			current = map[string]any(m)[part]
		case store.Document:
			current = m[part]
		default:
			return nil
		}
	}
	return current
}

func matchesAll(doc store.Document, filters []store.Filter) bool {
	for _, f := range filters {
		if !matches(doc, f) {
			return false
		}
	}
	return true
}

func matches(doc store.Document, f store.Filter) bool {
	val := docValue(doc, f.Field)
	switch f.Op {
	case store.OpEq:
		return compare(val, f.Value) == 0
	case store.OpIn:
		rv := reflect.ValueOf(f.Value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if compare(val, rv.Index(i).Interface()) == 0 {
				return true
			}
		}
		return false
	case store.OpGt:
		return compare(val, f.Value) > 0
	case store.OpGte:
		return compare(val, f.Value) >= 0
	case store.OpLt:
		return compare(val, f.Value) < 0
	case store.OpLte:
		return compare(val, f.Value) <= 0
	}
	return false
}

func sortDocs(docs []store.Document, orders []store.Order) {
	if len(orders) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, o := range orders {
			c := compare(docValue(docs[i], o.Field), docValue(docs[j], o.Field))
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
}

// afterCursor reports whether doc sorts strictly after the cursor position.
func afterCursor(doc store.Document, orders []store.Order, cursor []any) bool {
	for i, o := range orders {
		if i >= len(cursor) {
			break
		}
		c := compare(docValue(doc, o.Field), cursor[i])
		if o.Desc {
			c = -c
		}
		if c != 0 {
			return c > 0
		}
	}
	return false
}

// compare orders two scalar values: nil first, then bools, numbers,
// strings. Mismatched types fall back to string comparison of their kinds.
func compare(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return strings.Compare(as, bs)
	}

	ab, aBool := a.(bool)
	bb, bBool := b.(bool)
	if aBool && bBool {
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	}

	return strings.Compare(reflect.TypeOf(a).String(), reflect.TypeOf(b).String())
}

func toFloat(v any) (float64, bool) {
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
	case primitive.DateTime:
		return float64(n), true
	}
	return 0, false
}

func toInt64(v any) int64 {
	f, ok := toFloat(v)
	if !ok {
		return 0
	}
	return int64(f)
}

func asSlice(v any) []any {
	switch s := v.(type) {
	case nil:
		return nil
	case []any:
		return s
	case primitive.A:
		return []any(s)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func arrayUnion(existing any, value any) []any {
	arr := asSlice(existing)
	for _, el := range arr {
		if compare(el, value) == 0 {
			return arr
		}
	}
	return append(arr, deepCopy(value))
}

func arrayRemove(existing any, value any) []any {
	arr := asSlice(existing)
	out := make([]any, 0, len(arr))
	for _, el := range arr {
		if compare(el, value) != 0 {
			out = append(out, el)
		}
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case store.Document:
		out := store.Document{}
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case map[string]any:
		out := map[string]any{}
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case primitive.M:
		out := map[string]any{}
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	default:
		return v
	}
}
