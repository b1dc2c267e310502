package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"concierge/internal/utils"

	"github.com/samber/lo"
)

// Helpers for reading loosely typed JSON values decoded with UseNumber.

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return int(f), true
		}
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func boolValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	case json.Number:
		n, err := t.Int64()
		return err == nil && n != 0
	}
	return false
}

// tagList accepts a JSON array or a comma separated string and returns
// lowercase, de-duplicated tags in input order.
func tagList(v any) []string {
	var tags []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			tags = append(tags, utils.SplitList(stringValue(item))...)
		}
	case string:
		tags = utils.SplitList(t)
	}
	return lo.Uniq(lo.Compact(tags))
}

func intList(v any) []int {
	out := []int{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if n, ok := intValue(item); ok && n >= 0 {
				out = append(out, n)
			}
		}
	case string:
		for _, part := range utils.SplitList(t) {
			if n, err := strconv.Atoi(part); err == nil && n >= 0 {
				out = append(out, n)
			}
		}
	}
	return out
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
