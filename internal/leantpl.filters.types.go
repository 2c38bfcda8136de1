package internal

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Type filter name constants
const (
	FilterNameToJSON = "tojson"
	FilterNameType   = "type"
	FilterNameBool   = "bool"
	FilterNameInt    = "int"
	FilterNameFloat  = "float"
	FilterNameStr    = "str"
)

// Type name returned for absent values.
const TypeNameNone = "none"

// registerTypeFilters registers JSON serialization, type probes and
// conversion filters.
func registerTypeFilters(r *FilterRegistry) {
	r.Register(FilterNameToJSON, func(value any, args []string) (any, error) {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, NewFilterExecError(FilterNameToJSON, err)
		}
		return string(data), nil
	})

	r.Register(FilterNameType, func(value any, args []string) (any, error) {
		if value == nil {
			return TypeNameNone, nil
		}
		return reflect.TypeOf(value).String(), nil
	})

	r.Register(FilterNameBool, func(value any, args []string) (any, error) {
		return isTruthy(value), nil
	})

	r.Register(FilterNameInt, func(value any, args []string) (any, error) {
		switch v := value.(type) {
		case nil:
			return 0, nil
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		case bool:
			if v {
				return 1, nil
			}
			return 0, nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, NewFilterExecError(FilterNameInt, err)
			}
			return n, nil
		}
		return nil, NewFilterExecError(FilterNameInt, fmt.Errorf("cannot convert %T", value))
	})

	r.Register(FilterNameFloat, func(value any, args []string) (any, error) {
		if value == nil {
			return 0.0, nil
		}
		if n, ok := numericValue(value); ok {
			return n, nil
		}
		if s, ok := value.(string); ok {
			f, err := strconv.ParseFloat(s, FloatBitSize64)
			if err != nil {
				return nil, NewFilterExecError(FilterNameFloat, err)
			}
			return f, nil
		}
		return nil, NewFilterExecError(FilterNameFloat, fmt.Errorf("cannot convert %T", value))
	})

	r.Register(FilterNameStr, func(value any, args []string) (any, error) {
		return anyToString(value), nil
	})
}
