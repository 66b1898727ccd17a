package utils

import (
	"reflect"
	"strings"
)

// NormalizeForm trims every string field on a pointer-to-struct form
// before validation, so " alice@x.com " and "alice@x.com" are the same
// input. Non-string fields are left alone.
func NormalizeForm(form any) {
	v := reflect.ValueOf(form)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
