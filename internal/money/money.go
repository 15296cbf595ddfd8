package money

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ParseAmount converts a stored amount into a non-negative number.
// Numbers pass through, formatted strings are stripped of separators and currency
// symbols, objects carrying an "amount" field recurse into it. Anything else is 0.
func ParseAmount(value any) float64 {
	parsed, _ := parse(value)
	return parsed
}

// PickAmount returns the first strictly positive candidate. When none is positive it
// returns the first candidate that was present at all, which keeps a legitimate
// zero-amount record distinguishable from a missing field.
func PickAmount(candidates ...any) float64 {
	first, found := 0.0, false
	for _, candidate := range candidates {
		value, present := parse(candidate)
		if !present {
			continue
		}
		if value > 0 {
			return value
		}
		if !found {
			first, found = value, true
		}
	}
	return first
}

// Sum adds the parsed value of every candidate using decimal arithmetic.
func Sum(values ...any) float64 {
	total := decimal.Zero
	for _, value := range values {
		total = total.Add(decimal.NewFromFloat(ParseAmount(value)))
	}
	out, _ := total.Float64()
	return out
}

// parse reports the amount and whether the candidate was present.
func parse(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return clamp(v), true
	case float32:
		return clamp(float64(v)), true
	case int:
		return clamp(float64(v)), true
	case int32:
		return clamp(float64(v)), true
	case int64:
		return clamp(float64(v)), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case decimal.Decimal:
		f, _ := v.Float64()
		return clamp(f), true
	case json.Number:
		return parseString(v.String())
	case string:
		return parseString(v)
	case map[string]any:
		inner, ok := v["amount"]
		if !ok {
			return 0, true
		}
		return parseNested(inner)
	case Raw:
		return parseRaw(v)
	case datatypes.JSON:
		return parseRaw(v)
	case json.RawMessage:
		return parseRaw(v)
	case []byte:
		return parseRaw(v)
	case datatypes.JSONMap:
		return parse(map[string]any(v))
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, false
		}
		return parse(rv.Elem().Interface())
	}
	return 0, true
}

func parseNested(inner any) (float64, bool) {
	switch inner.(type) {
	case string, float64, float32, int, int32, int64, json.Number:
		return parse(inner)
	default:
		return 0, true
	}
}

func parseRaw(raw []byte) (float64, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, false
	}
	var decoded any
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		// bare text such as ₦2,500 written without JSON quoting
		return parseString(trimmed)
	}
	return parse(decoded)
}

func parseString(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0, true
	}
	f, _ := d.Float64()
	return clamp(f), true
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
