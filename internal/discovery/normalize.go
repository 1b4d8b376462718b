package discovery

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize lowercases and trims text before rule matching.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// tokens splits text on whitespace and strips leading/trailing punctuation
// from each token. Empty results are dropped.
func tokens(text string) []string {
	fields := strings.Fields(text)
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// keywords returns up to limit tokens longer than minLen runes that are not
// in stop, in their original order. Duplicates are kept; callers dedupe.
func keywords(text string, stop map[string]struct{}, minLen, limit int) []string {
	var out []string
	for _, tok := range tokens(text) {
		if len(out) == limit {
			break
		}
		if utf8.RuneCountInString(tok) <= minLen {
			continue
		}
		if _, skip := stop[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// appendUnique appends the values of src to dst that are not yet in seen.
func appendUnique(dst []string, seen map[string]struct{}, src ...string) []string {
	for _, s := range src {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}

func stopSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
