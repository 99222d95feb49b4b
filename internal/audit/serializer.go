package audit

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Serializar converts an arbitrary field value into something json.Marshal
// will always accept: decimals become strings (no precision loss), times
// become RFC3339, uuids become strings, collections are converted
// recursively, fmt.Stringer falls back to its human string and anything else
// unknown to fmt.Sprintf.
func Serializar(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool, string, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return val
	case decimal.Decimal:
		return val.String()
	case *decimal.Decimal:
		if val == nil {
			return nil
		}
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.Format(time.RFC3339Nano)
	case uuid.UUID:
		return val.String()
	case *uuid.UUID:
		if val == nil {
			return nil
		}
		return val.String()
	case []byte:
		return string(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return Serializar(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Serializar(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			out[fmt.Sprint(k.Interface())] = Serializar(rv.MapIndex(k).Interface())
		}
		return out
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

// Snapshot builds the field dict of a gorm model: exported scalar columns
// only, relations and the envelope internals excluded by kind. Field names
// keep their Go spelling, matching what the diff keys expose to the UI.
func Snapshot(entidad any) map[string]any {
	out := make(map[string]any)
	rv := reflect.ValueOf(entidad)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return out
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return out
	}
	snapshotStruct(rv, out)
	return out
}

func snapshotStruct(rv reflect.Value, out map[string]any) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		campo := rt.Field(i)
		if !campo.IsExported() {
			continue
		}
		if campo.Anonymous {
			// Embedded envelopes and the like: flatten.
			fv := rv.Field(i)
			if fv.Kind() == reflect.Struct {
				snapshotStruct(fv, out)
			}
			continue
		}
		if campo.Tag.Get("gorm") == "-" {
			continue
		}
		if !esColumna(campo.Type) {
			continue
		}
		out[campo.Name] = Serializar(rv.Field(i).Interface())
	}
}

// esColumna filters relation fields out of snapshots: only kinds that map to
// single DB columns survive.
func esColumna(t reflect.Type) bool {
	if t == reflect.TypeOf(time.Time{}) || t == reflect.TypeOf(uuid.UUID{}) ||
		t == reflect.TypeOf(decimal.Decimal{}) {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Ptr:
		return esColumna(t.Elem())
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8 // []byte
	}
	return false
}

// Diff returns `{campo: {"old": ..., "new": ...}}` for exactly the fields
// whose serialized values differ.
func Diff(antes, despues map[string]any) map[string]any {
	out := make(map[string]any)
	for campo, nuevo := range despues {
		viejo, existia := antes[campo]
		if !existia || !reflect.DeepEqual(viejo, nuevo) {
			out[campo] = map[string]any{"old": viejo, "new": nuevo}
		}
	}
	for campo, viejo := range antes {
		if _, sigue := despues[campo]; !sigue {
			out[campo] = map[string]any{"old": viejo, "new": nil}
		}
	}
	return out
}
