package curriculum

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Safe recursively converts v into JSON-marshalable primitives:
// scalars pass through, maps and sequences recurse, anything else is
// rendered with its string form. Meant for diagnostic output where a
// marshal error would be worse than a lossy string.
func Safe(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Safe(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Safe(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Safe(rv.Elem().Interface())
	case reflect.Map:
		out := make(map[string]interface{}, rv.Len())
		for _, key := range rv.MapKeys() {
			out[fmt.Sprint(key.Interface())] = Safe(rv.MapIndex(key).Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Safe(rv.Index(i).Interface())
		}
		return out
	}
	return fmt.Sprint(v)
}

// DumpJSON writes v to w as indented JSON with non-ASCII text kept
// readable. Purely a display helper; the parse result itself has no
// wire contract.
func DumpJSON(w io.Writer, v interface{}, indent int) error {
	if indent < 0 {
		indent = 0
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	return enc.Encode(v)
}
