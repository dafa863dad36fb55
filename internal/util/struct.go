package util

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// IsStructInitialized reports whether every exported field of the given
// struct (or struct pointer) holds a non-zero value, returning an error
// naming the uninitialized fields otherwise. Unexported fields are ignored.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.New("struct pointer is nil")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.Errorf("expected struct, got %s", v.Kind())
	}

	var uninitialized []string

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}

		if v.Field(i).IsZero() {
			uninitialized = append(uninitialized, t.Field(i).Name)
		}
	}

	if len(uninitialized) > 0 {
		return errors.Errorf("uninitialized struct fields: %s", strings.Join(uninitialized, ", "))
	}

	return nil
}
