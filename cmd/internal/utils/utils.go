package utils

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

// FormatEpochPtr formats an optional timestamp, nil stays nil.
func FormatEpochPtr(millis *int64) *string {
	if millis == nil {
		return nil
	}
	s := FormatEpoch(*millis)
	return &s
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// ParseID parses a positive integer identifier.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Sanitize trims every string reachable from the struct pointed to by o,
// including strings behind pointers and inside nested structs, slices and maps.
func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}
	sanitizeValue(v)
}

func sanitizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(sanitizeString(v.String()))
		}

	case reflect.Ptr:
		if !v.IsNil() {
			sanitizeValue(v.Elem())
		}

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				sanitizeValue(v.Field(i))
			}
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			sanitizeValue(v.Index(j))
		}

	case reflect.Map:
		// Map values are not addressable, only pointer values get visited.
		if v.Type().Elem().Kind() == reflect.Ptr {
			iter := v.MapRange()
			for iter.Next() {
				sanitizeValue(iter.Value())
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
