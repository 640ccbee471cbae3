package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestTextUsesPrimaryForValidPDF(t *testing.T) {
	data := buildMinimalPDF(t, "Hello PDF world")

	text, err := Text(context.Background(), data)
	if err != nil {
		t.Fatalf("expected primary extraction to succeed, got error: %v", err)
	}
	if !strings.Contains(text, "Hello") {
		t.Fatalf("expected extracted text to contain document content, got %q", text)
	}
}

func TestTextFallsBackWhenStructureIsCorrupt(t *testing.T) {
	// Valid content-stream operators but no xref/trailer, so the structured
	// parse cannot succeed.
	data := []byte("garbage header\nBT /F1 12 Tf (Recovered resume text) Tj ET\ntrailing junk")

	text, err := Text(context.Background(), data)
	if err != nil {
		t.Fatalf("expected fallback extraction to succeed, got error: %v", err)
	}
	if !strings.Contains(text, "Recovered resume text") {
		t.Fatalf("unexpected fallback output: %q", text)
	}
}

func TestTextNoUsableText(t *testing.T) {
	cases := map[string][]byte{
		"empty":        nil,
		"binary junk":  {0x01, 0x02, 0x03, 0xff, 0xfe},
		"no text runs": []byte("%PDF-1.4 but nothing drawable here"),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Text(context.Background(), data)
			if !errors.Is(err, ErrNoText) {
				t.Fatalf("expected ErrNoText, got %v", err)
			}
		})
	}
}

func TestTextHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, []byte("BT (x) Tj ET")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestFallbackMultipleBlocks(t *testing.T) {
	data := []byte("BT (First line) Tj ET junk BT (Second) Tj ( line) Tj ET")

	text, found := Fallback(data)
	if !found {
		t.Fatal("expected fallback to find text blocks")
	}
	if text != "First line\nSecond line" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestFallbackEscapesAndNestedParens(t *testing.T) {
	data := []byte(`BT (a \(quoted\) value (nested)) Tj ET`)

	text, found := Fallback(data)
	if !found {
		t.Fatal("expected fallback to find text")
	}
	if text != "a (quoted) value (nested)" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestFallbackIgnoresEmbeddedOperatorLookalikes(t *testing.T) {
	// "SUBSET" contains "ET" and "ABTC" contains "BT"; neither is a token.
	data := []byte("/SUBSET /ABTC no real text block")

	if _, found := Fallback(data); found {
		t.Fatal("expected no text blocks")
	}
}

func TestFallbackNoMatchesReportsNotFound(t *testing.T) {
	text, found := Fallback([]byte("completely unrelated bytes"))
	if found || text != "" {
		t.Fatalf("expected not-found result, got %q found=%v", text, found)
	}
}

func TestPrimaryRejectsCorruptStream(t *testing.T) {
	if _, err := Primary([]byte("not a pdf at all")); err == nil {
		t.Fatal("expected structured parse error for corrupt payload")
	}
}

// buildMinimalPDF assembles a one-page PDF with an uncompressed content
// stream and an exact xref table so the structured parser accepts it.
func buildMinimalPDF(t *testing.T, text string) []byte {
	t.Helper()

	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return buf.Bytes()
}
