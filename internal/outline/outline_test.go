package outline

import (
	"testing"
)

func TestExtractBasic(t *testing.T) {
	markup := "# Overview\n\nText\n\n## Risks\n\nMore text"
	entries := Extract(markup)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != 1 || entries[0].Text != "Overview" || entries[0].AnchorID != "overview" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Level != 2 || entries[1].Text != "Risks" || entries[1].AnchorID != "risks" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestExtractIgnoresNonHeadings(t *testing.T) {
	markup := "plain text\n#### too deep\n#missing space\n   # indented\n\n"
	entries := Extract(markup)
	if len(entries) != 0 {
		t.Fatalf("expected empty outline, got %+v", entries)
	}
}

func TestExtractSkipsBlankHeadings(t *testing.T) {
	// 只有空白内容的标题行不产生大纲记录
	markup := "#   \n# Overview\n##  \t \n## Risks"
	entries := Extract(markup)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].Text != "Overview" || entries[0].AnchorID != "overview" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Text != "Risks" || entries[1].AnchorID != "risks" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestExtractDuplicateAnchorsGetSuffix(t *testing.T) {
	markup := "# A\n## B\n# A\n# A"
	entries := Extract(markup)

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	anchors := map[string]bool{}
	for _, e := range entries {
		if anchors[e.AnchorID] {
			t.Fatalf("duplicate anchor %q", e.AnchorID)
		}
		anchors[e.AnchorID] = true
	}

	if entries[0].AnchorID != "a" {
		t.Fatalf("first occurrence should keep bare id, got %q", entries[0].AnchorID)
	}
	if entries[2].AnchorID != "a-2" || entries[3].AnchorID != "a-3" {
		t.Fatalf("expected numeric suffixes, got %q, %q", entries[2].AnchorID, entries[3].AnchorID)
	}
}

func TestExtractSuffixAvoidsNaturalSlug(t *testing.T) {
	// 重复标题的后缀可能和后续标题的天然锚点相同，仍须保持唯一
	markup := "# A\n# A\n# A 2"
	entries := Extract(markup)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	anchors := map[string]bool{}
	for _, e := range entries {
		if anchors[e.AnchorID] {
			t.Fatalf("duplicate anchor %q in outline: %+v", e.AnchorID, entries)
		}
		anchors[e.AnchorID] = true
	}
}

func TestExtractNaturalSlugTakenBeforeDuplicates(t *testing.T) {
	// 天然锚点先占位，后来的重复标题依次跳过已用后缀
	markup := "# A 2\n# A\n# A\n# A"
	entries := Extract(markup)

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	want := []string{"a-2", "a", "a-3", "a-4"}
	for i, e := range entries {
		if e.AnchorID != want[i] {
			t.Fatalf("entry %d: expected anchor %q, got %q (%+v)", i, want[i], e.AnchorID, entries)
		}
	}
}

func TestAnchorID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Overview", "overview"},
		{"Margin & Return Metrics", "margin-return-metrics"},
		{"  Spaced   Out  ", "spaced-out"},
		{"<em>Styled</em> Heading", "styled-heading"},
		{"Q3 2025: Results!", "q3-2025-results"},
		{"---", ""},
	}
	for _, c := range cases {
		if got := AnchorID(c.in); got != c.want {
			t.Errorf("AnchorID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAnchorIDOfNonString(t *testing.T) {
	if got := anchorIDOf(42); got != "42" {
		t.Fatalf("expected coerced id, got %q", got)
	}
	if got := anchorIDOf("Plain"); got != "plain" {
		t.Fatalf("expected plain id, got %q", got)
	}
}
