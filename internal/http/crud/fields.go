package crud

import (
	"reflect"
	"strings"
)

// fieldMap converts a payload struct into a column→value map using `db`
// struct tags. Fields without a db tag (or tagged "-") are skipped, and nil
// pointer fields are omitted so update payloads only touch the columns the
// client actually sent.
func fieldMap(v any) map[string]any {
	m := make(map[string]any)

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return m
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return m
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.SplitN(f.Tag.Get("db"), ",", 2)[0]
		if tag == "" || tag == "-" {
			continue
		}

		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		m[tag] = fv.Interface()
	}
	return m
}
