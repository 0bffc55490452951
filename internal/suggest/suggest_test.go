package suggest

import (
	"strings"
	"testing"

	"github.com/csheth/docscout/internal/stager"
)

func TestBuildTailorsToKind(t *testing.T) {
	t.Parallel()

	sheet := Build(Metadata{FileName: "sales.xlsx", Kind: stager.KindSpreadsheet})
	if len(sheet) == 0 || !strings.Contains(sheet[0], "sales.xlsx") {
		t.Fatalf("spreadsheet suggestions should mention the file, got %#v", sheet)
	}

	short := Build(Metadata{FileName: "memo.pdf", Kind: stager.KindDocument, Pages: 2})
	long := Build(Metadata{FileName: "memo.pdf", Kind: stager.KindDocument, Pages: 40})
	if len(long) != len(short)+1 {
		t.Fatalf("long documents should get an outline prompt: short=%d long=%d", len(short), len(long))
	}
	if !strings.Contains(long[len(long)-1], "40 pages") {
		t.Fatalf("outline prompt should mention page count, got %q", long[len(long)-1])
	}
}

func TestBuildWithoutDocument(t *testing.T) {
	t.Parallel()

	got := Build(Metadata{})
	if len(got) == 0 {
		t.Fatal("expected general suggestions")
	}
	for _, q := range got {
		if strings.TrimSpace(q) == "" {
			t.Fatalf("empty suggestion in %#v", got)
		}
	}

	text := Build(Metadata{Kind: stager.KindText})
	if !strings.Contains(text[0], "this document") {
		t.Fatalf("missing file name should fall back to a neutral label, got %q", text[0])
	}
}
