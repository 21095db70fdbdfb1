// Package llmtext recovers structured payloads from the free-form text an
// LLM returns. Generators routinely wrap the requested JSON in markdown
// fences, commentary, or reasoning tags; these helpers strip the decoration
// and cut out the first structurally balanced JSON object.
package llmtext

import (
	"errors"
	"strings"
)

var (
	// ErrNoObject is returned when the text contains no '{' at all.
	ErrNoObject = errors.New("no JSON object found in text")
	// ErrUnbalanced is returned when an object opens but never closes.
	ErrUnbalanced = errors.New("unbalanced JSON object in text")
)

const (
	fenceMarker = "```"
	thinkOpen   = "<think>"
	thinkClose  = "</think>"
)

// StripDecorations removes known wrapping artifacts wherever they occur:
// fenced code-block delimiters (with any language tag), and <think> blocks
// some models emit before their answer.
func StripDecorations(raw string) string {
	s := raw

	// Reasoning blocks are dropped wholesale.
	for {
		start := strings.Index(s, thinkOpen)
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], thinkClose)
		if end == -1 {
			s = s[:start]
			break
		}
		s = s[:start] + s[start+end+len(thinkClose):]
	}

	// Fence markers are removed along with an attached language tag, not
	// just at the edges of the text.
	var b strings.Builder
	for {
		idx := strings.Index(s, fenceMarker)
		if idx == -1 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:idx])
		s = s[idx+len(fenceMarker):]
		s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-")
	}

	return strings.TrimSpace(b.String())
}

// ExtractObject returns the first structurally balanced {...} region of the
// cleaned text. Scanning is string-aware, so braces inside JSON string
// values do not affect nesting depth. This is stricter than taking the span
// from the first '{' to the last '}': commentary after the object, or
// unrelated braces around it, cannot widen the candidate.
func ExtractObject(raw string) (string, error) {
	s := StripDecorations(raw)

	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", ErrNoObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrUnbalanced
}
