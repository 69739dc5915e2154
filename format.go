// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bz2

import (
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// PrintConfig provides the separators used by Writer.Print and the value
// printed if Print is called without arguments.
type PrintConfig struct {
	// FieldSeparator is written between the values of a Print call.
	FieldSeparator string
	// RecordSeparator is written after the values of a Print call.
	RecordSeparator string
	// CurrentValue is printed by a Print call without arguments.
	CurrentValue any
}

// Stringify converts a value to the string written by the Writer.
// Strings and byte slices are used unchanged; fmt.Stringer and error
// values provide their own representation. Numbers use the shortest
// representation that reads back to the same value, so 2.3 becomes "2.3".
// Nil becomes the empty string and other values are formatted with
// fmt.Sprint.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// flatten appends the string representations of the values to a. Slices
// other than byte slices are expanded recursively.
func flatten(a []string, values ...any) []string {
	for _, v := range values {
		switch x := v.(type) {
		case []any:
			a = flatten(a, x...)
			continue
		case []string:
			a = append(a, x...)
			continue
		case []byte, nil:
			a = append(a, Stringify(x))
			continue
		}
		rv := reflect.ValueOf(v)
		if k := rv.Kind(); k == reflect.Slice || k == reflect.Array {
			if _, ok := v.(fmt.Stringer); !ok {
				for i := 0; i < rv.Len(); i++ {
					a = flatten(a, rv.Index(i).Interface())
				}
				continue
			}
		}
		a = append(a, Stringify(v))
	}
	return a
}

// charBytes returns the byte written by PutChar for v. Integers provide
// their lowest byte; for strings and byte slices the first character is
// used.
func charBytes(v any) []byte {
	switch x := v.(type) {
	case string:
		if x == "" {
			return nil
		}
		_, n := utf8.DecodeRuneInString(x)
		return []byte(x[:n])
	case []byte:
		if len(x) == 0 {
			return nil
		}
		return x[:1]
	}
	if v != nil {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Int64:
			return []byte{byte(rv.Int())}
		case reflect.Uint, reflect.Uint8, reflect.Uint16,
			reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return []byte{byte(rv.Uint())}
		}
	}
	s := Stringify(v)
	if s == "" {
		return nil
	}
	_, n := utf8.DecodeRuneInString(s)
	return []byte(s[:n])
}
