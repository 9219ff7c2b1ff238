package cricket

import (
	"strings"

	"github.com/bytedance/sonic"
)

// extractBalanced returns the balanced {...} or [...] chunk starting at
// start, plus the index just past it. ok is false when start is not an
// opener or the chunk is truncated before balancing.
func extractBalanced(source string, start int) (string, int, bool) {
	if start < 0 || start >= len(source) {
		return "", 0, false
	}

	openCh := source[start]
	var closeCh byte
	switch openCh {
	case '{':
		closeCh = '}'
	case '[':
		closeCh = ']'
	default:
		return "", 0, false
	}

	depth := 0
	for i := start; i < len(source); i++ {
		switch source[i] {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return source[start : i+1], i + 1, true
			}
		}
	}

	return "", 0, false
}

// decodeEscapedJSON normalizes backslash-escaped quotes and decodes the
// result. The source pages embed the same payloads both plain and escaped
// inside script strings.
func decodeEscapedJSON(raw string, out any) bool {
	normalized := strings.ReplaceAll(raw, `\"`, `"`)
	return sonic.UnmarshalString(normalized, out) == nil
}

// pickChunkByKey scans html for `\"key\":` then `"key":` followed by the
// opener, and returns the first occurrence that balances and decodes.
// Occurrences that fail either step are skipped, not fatal.
func pickChunkByKey(html, key string, opener byte, decode func(chunk string) bool) bool {
	tokens := []string{
		`\"` + key + `\":` + string(opener),
		`"` + key + `":` + string(opener),
	}

	for _, token := range tokens {
		searchFrom := 0

		for searchFrom < len(html) {
			tokenIndex := strings.Index(html[searchFrom:], token)
			if tokenIndex < 0 {
				break
			}
			tokenIndex += searchFrom

			chunkStart := strings.IndexByte(html[tokenIndex+len(token)-1:], opener)
			if chunkStart < 0 {
				break
			}
			chunkStart += tokenIndex + len(token) - 1

			chunk, end, ok := extractBalanced(html, chunkStart)
			if !ok {
				searchFrom = tokenIndex + len(token)
				continue
			}

			if decode(chunk) {
				return true
			}

			searchFrom = end
		}
	}

	return false
}

// pickObjectByKey finds the first decodable {...} payload labelled by key,
// in either escaped or plain form. Returns nil when no occurrence decodes.
func pickObjectByKey(html, key string) map[string]any {
	var result map[string]any

	pickChunkByKey(html, key, '{', func(chunk string) bool {
		var decoded map[string]any
		if !decodeEscapedJSON(chunk, &decoded) || decoded == nil {
			return false
		}
		result = decoded
		return true
	})

	return result
}

// pickAllChunksByKey is pickChunkByKey without the early return: every
// decodable occurrence of the key, across both quoting styles, is handed
// to collect in document order.
func pickAllChunksByKey(html, key string, opener byte, collect func(chunk string)) {
	tokens := []string{
		`\"` + key + `\":` + string(opener),
		`"` + key + `":` + string(opener),
	}

	for _, token := range tokens {
		searchFrom := 0

		for searchFrom < len(html) {
			tokenIndex := strings.Index(html[searchFrom:], token)
			if tokenIndex < 0 {
				break
			}
			tokenIndex += searchFrom

			chunkStart := strings.IndexByte(html[tokenIndex+len(token)-1:], opener)
			if chunkStart < 0 {
				break
			}
			chunkStart += tokenIndex + len(token) - 1

			chunk, end, ok := extractBalanced(html, chunkStart)
			if !ok {
				searchFrom = tokenIndex + len(token)
				continue
			}

			collect(chunk)
			searchFrom = end
		}
	}
}

// pickAllObjectsByKey returns every decodable {...} payload labelled by
// key, in document order.
func pickAllObjectsByKey(html, key string) []map[string]any {
	var results []map[string]any

	pickAllChunksByKey(html, key, '{', func(chunk string) {
		var decoded map[string]any
		if decodeEscapedJSON(chunk, &decoded) && decoded != nil {
			results = append(results, decoded)
		}
	})

	return results
}

// pickAllArraysByKey is pickAllObjectsByKey for [...] payloads.
func pickAllArraysByKey(html, key string) [][]any {
	var results [][]any

	pickAllChunksByKey(html, key, '[', func(chunk string) {
		var decoded []any
		if decodeEscapedJSON(chunk, &decoded) && decoded != nil {
			results = append(results, decoded)
		}
	})

	return results
}

// pickArrayByKey is pickObjectByKey for [...] payloads.
func pickArrayByKey(html, key string) []any {
	var result []any

	pickChunkByKey(html, key, '[', func(chunk string) bool {
		var decoded []any
		if !decodeEscapedJSON(chunk, &decoded) || decoded == nil {
			return false
		}
		result = decoded
		return true
	})

	return result
}
