// Package sanitize provides total, fail-closed validators for untrusted input:
// free-text markup stripping, display-name validation, and upload metadata
// checks. Every function returns a well-typed negative result for malformed or
// adversarial input; nothing in this package panics or returns an error.
package sanitize

import "strings"

// Clean strips unsafe markup from free text: script-tag blocks (including
// their content) are removed first, then all remaining angle-bracket tags,
// then leading/trailing whitespace is trimmed. Script blocks must go before
// generic tag-stripping or a malformed tag could leave executable content
// behind. Idempotent: cleaning already-clean text returns it unchanged.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	out := stripScriptBlocks(text)
	out = stripTags(out)
	return strings.TrimSpace(out)
}

// stripScriptBlocks removes every <script ...>...</script ...> span,
// case-insensitively, with a single forward scan (no backtracking). An
// unterminated script block swallows the rest of the input: truncating is
// safer than leaving half a script behind.
func stripScriptBlocks(s string) string {
	lower := strings.ToLower(s)

	var b strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(lower[i:], "<script")
		if start < 0 {
			b.WriteString(s[i:])
			break
		}
		start += i
		b.WriteString(s[i:start])

		end := strings.Index(lower[start:], "</script")
		if end < 0 {
			break
		}
		end += start

		gt := strings.IndexByte(lower[end:], '>')
		if gt < 0 {
			break
		}
		i = end + gt + 1
	}
	return b.String()
}

// stripTags removes every complete <...> span. A lone '<' with no closing '>'
// is kept literally, which keeps the pass idempotent.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] == '<' {
			if j := strings.IndexByte(s[i:], '>'); j >= 0 {
				i += j + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
