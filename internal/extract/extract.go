package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText indicates that neither the structured parser nor the fallback
// scanner produced usable text for the payload.
var ErrNoText = errors.New("no extractable text")

// Text extracts plain text from a PDF payload. It parses the document
// structurally first and falls back to a content-stream scan when the parse
// fails or yields only whitespace. The returned string is trimmed-usable:
// callers receiving a nil error always get non-blank text.
func Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoText
	}

	text, err := Primary(data)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	fallback, found := Fallback(data)
	if !found || strings.TrimSpace(fallback) == "" {
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoText, err)
		}
		return "", ErrNoText
	}
	return fallback, nil
}

// Primary parses the payload as a structured PDF and concatenates the text
// of all pages. Library: github.com/ledongthuc/pdf.
func Primary(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf parse: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plain text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf read text: %w", err)
	}
	return buf.String(), nil
}

// Fallback scans the raw byte stream for BT..ET text blocks and pulls the
// string literals out of simple Tj/TJ show operators. It is a best-effort
// heuristic for unencoded content streams, not a PDF interpreter; compressed
// or encoded streams yield nothing. The boolean reports whether any text
// block produced output, so callers can distinguish "nothing found" from
// genuine content without comparing against a sentinel string.
func Fallback(data []byte) (string, bool) {
	var out []string
	rest := data
	for {
		block, remaining, ok := nextTextBlock(rest)
		if !ok {
			break
		}
		rest = remaining
		if text := literalsInBlock(block); text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return "", false
	}
	return strings.Join(out, "\n"), true
}

// nextTextBlock returns the bytes between the next BT/ET operator pair.
func nextTextBlock(data []byte) (block []byte, rest []byte, ok bool) {
	start := indexOperator(data, "BT")
	if start < 0 {
		return nil, nil, false
	}
	after := data[start+2:]
	end := indexOperator(after, "ET")
	if end < 0 {
		return nil, nil, false
	}
	return after[:end], after[end+2:], true
}

// indexOperator finds a PDF operator token, requiring delimiter or boundary
// bytes around it so that e.g. "SUBSET" does not match "ET".
func indexOperator(data []byte, op string) int {
	from := 0
	for {
		idx := bytes.Index(data[from:], []byte(op))
		if idx < 0 {
			return -1
		}
		abs := from + idx
		beforeOK := abs == 0 || isDelim(data[abs-1])
		afterIdx := abs + len(op)
		afterOK := afterIdx >= len(data) || isDelim(data[afterIdx])
		if beforeOK && afterOK {
			return abs
		}
		from = abs + len(op)
	}
}

func isDelim(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', '(', ')', '[', ']', '<', '>', '/':
		return true
	}
	return false
}

// literalsInBlock collects parenthesized string literals from a BT/ET block,
// honoring backslash escapes and nested balanced parens.
func literalsInBlock(block []byte) string {
	var parts []string
	for i := 0; i < len(block); i++ {
		if block[i] != '(' {
			continue
		}
		literal, consumed := readLiteral(block[i:])
		if consumed == 0 {
			break
		}
		if literal != "" {
			parts = append(parts, literal)
		}
		i += consumed - 1
	}
	return strings.Join(parts, " ")
}

// readLiteral reads one ( ... ) literal starting at data[0] == '('.
// It returns the unescaped payload and the number of bytes consumed,
// or 0 when the literal is unterminated.
func readLiteral(data []byte) (string, int) {
	var buf strings.Builder
	depth := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch c {
		case '\\':
			if i+1 < len(data) {
				i++
				buf.WriteByte(unescapeLiteralByte(data[i]))
			}
		case '(':
			depth++
			if depth > 1 {
				buf.WriteByte(c)
			}
		case ')':
			depth--
			if depth == 0 {
				return buf.String(), i + 1
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	return "", 0
}

func unescapeLiteralByte(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return b
	}
}
