package rest

import (
	"errors"
	"fmt"
	"reflect"
)

// structParams extracts route placeholder values from the exported fields of
// the given struct. The placeholder name is the field name unless overridden
// by the `param` tag; a tag value of "-" skips the field. Values are converted
// with toString and follow its type restrictions.
func structParams(value any) map[string]string {
	if value == nil {
		panic("value is nil")
	}

	rv, err := reflectValue(value)
	if err != nil {
		panic(fmt.Errorf("failed to obtain reflect value: %v", err))
	}

	params := make(map[string]string)
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Type().Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("param")
		if tag == "-" {
			continue
		}

		if tag == "" {
			tag = field.Name
		}

		params[tag] = toString(rv.Field(i).Interface())
	}

	return params
}

// reflectValue returns the reflect.Value of v only if it is a struct or a
// pointer to one, dereferencing in the latter case.
func reflectValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, errors.New("value is not a struct or a pointer to a struct")
	}

	return rv, nil
}
