package parsers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 64 * 1024 // 64KB
	maxQueryRunes = 200
	maxTags       = 10
	maxErrSnippet = 200
)

// extractObject pulls the outermost JSON object out of a model reply that may
// be wrapped in code fences or prose.
func extractObject(content string) (map[string]any, error) {
	if len(content) > maxContentLen {
		content = content[:maxContentLen]
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no json object in %q", safeSnippet(content))
	}
	var m map[string]any
	if err := sonic.UnmarshalString(content[start:end+1], &m); err != nil {
		return nil, fmt.Errorf("decode json object: %w", err)
	}
	return m, nil
}

// first returns the first present key among aliases.
func first(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(m map[string]any, keys ...string) string {
	v, ok := first(m, keys...)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// toFloat accepts JSON numbers and numeric strings; non-finite values fail.
func toFloat(v any) (float64, bool) {
	var f float64
	switch vv := v.(type) {
	case float64:
		f = vv
	case int64:
		f = float64(vv)
	case int:
		f = float64(vv)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(vv), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}
