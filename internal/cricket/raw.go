package cricket

import (
	"strconv"
	"strings"
)

// Helpers for probing the raw decoded payloads. The upstream embeds the
// same concept under several field names and switches between string and
// numeric encodings page to page, so everything downstream reads through
// these instead of type-asserting inline.

func asMap(value any) map[string]any {
	m, _ := value.(map[string]any)
	return m
}

func asSlice(value any) []any {
	s, _ := value.([]any)
	return s
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	return asMap(src[key])
}

func getSlice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	return asSlice(src[key])
}

// stringify renders a raw scalar as display text. Whole-number floats drop
// the decimal point, which matters for runs/balls counters decoded as
// float64.
func stringify(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		if typed {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// getText returns the first key with a non-empty scalar value.
func getText(src map[string]any, keys ...string) string {
	if src == nil {
		return ""
	}
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		if value := stringify(raw); value != "" {
			return value
		}
	}
	return ""
}

func getFloat(src map[string]any, keys ...string) (float64, bool) {
	if src == nil {
		return 0, false
	}
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		switch typed := raw.(type) {
		case float64:
			return typed, true
		case string:
			v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
			if err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

func getInt(src map[string]any, keys ...string) (int, bool) {
	v, ok := getFloat(src, keys...)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func getBool(src map[string]any, keys ...string) bool {
	if src == nil {
		return false
	}
	for _, key := range keys {
		switch typed := src[key].(type) {
		case bool:
			if typed {
				return true
			}
		case string:
			if strings.EqualFold(strings.TrimSpace(typed), "true") {
				return true
			}
		case float64:
			if typed != 0 {
				return true
			}
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
