package markdown

import (
	"strings"
	"testing"
)

func TestCalculateReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 1},
		{"single word", "hello", 1},
		{"exactly 200 words", strings.Repeat("word ", 200), 1},
		{"201 words", strings.Repeat("word ", 201), 2},
		{"exactly 400 words", strings.Repeat("word ", 400), 2},
		{"whitespace only", "   \n\t  ", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateReadingTime(tt.content); got != tt.want {
				t.Errorf("CalculateReadingTime(%s) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestRenderContentHeaders(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# Title", "<h1>Title</h1>"},
		{"## Section", "<h2>Section</h2>"},
		{"### Sub", "<h3>Sub</h3>"},
		{"#### Deep", "<h4>Deep</h4>"},
		{"##### Deeper", "<h5>Deeper</h5>"},
	}
	for _, tt := range tests {
		got := RenderContent(tt.input, nil)
		if !strings.Contains(got, tt.want) {
			t.Errorf("RenderContent(%q) = %q, want it to contain %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderContentBoldBeforeItalic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"***both***", "<strong><em>both</em></strong>"},
		{"*i* and **b**", "<em>i</em> and <strong>b</strong>"},
	}
	for _, tt := range tests {
		got := RenderContent(tt.input, nil)
		if !strings.Contains(got, tt.want) {
			t.Errorf("RenderContent(%q) = %q, want it to contain %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderContentLinksAndQuotes(t *testing.T) {
	got := RenderContent("[site](https://example.com)", nil)
	if !strings.Contains(got, `<a href="https://example.com">site</a>`) {
		t.Errorf("link not rendered: %q", got)
	}
	got = RenderContent("> wisdom", nil)
	if !strings.Contains(got, "<blockquote>wisdom</blockquote>") {
		t.Errorf("blockquote not rendered: %q", got)
	}
}

func TestRenderContentCodeProtected(t *testing.T) {
	// Formatting must not run inside backticks.
	got := RenderContent("`*not italic*`", nil)
	if !strings.Contains(got, "<code>*not italic*</code>") {
		t.Errorf("inline code reformatted: %q", got)
	}
	if strings.Contains(got, "<em>") {
		t.Errorf("italic leaked into code: %q", got)
	}

	got = RenderContent("```go\nfmt.Println(\"hi\")\n```", nil)
	if !strings.Contains(got, `<pre><code class="language-go">`) {
		t.Errorf("code block not rendered: %q", got)
	}
	if !strings.Contains(got, "fmt.Println(&#34;hi&#34;)") {
		t.Errorf("code content not escaped: %q", got)
	}
}

func TestRenderContentCodeBlockKeepsNewlines(t *testing.T) {
	got := RenderContent("```\nline one\nline two\n```", nil)
	if !strings.Contains(got, "line one\nline two") {
		t.Errorf("code newlines rewritten: %q", got)
	}
}

func TestRenderContentParagraphs(t *testing.T) {
	got := RenderContent("first\n\nsecond", nil)
	if got != "<p>first</p><p>second</p>" {
		t.Errorf("paragraph collapse = %q", got)
	}
	got = RenderContent("line one\nline two", nil)
	if got != "<p>line one<br/>line two</p>" {
		t.Errorf("line break collapse = %q", got)
	}
}

func TestRenderContentListMerging(t *testing.T) {
	got := RenderContent("- a\n- b\n- c", nil)
	if !strings.Contains(got, "<ul><li>a</li><li>b</li><li>c</li></ul>") {
		t.Errorf("unordered run not merged: %q", got)
	}
	if strings.Count(got, "<ul>") != 1 {
		t.Errorf("expected a single <ul> wrapper: %q", got)
	}

	got = RenderContent("1. one\n2. two", nil)
	if !strings.Contains(got, "<ol><li>one</li><li>two</li></ol>") {
		t.Errorf("ordered run not merged: %q", got)
	}

	// Separate runs stay separate.
	got = RenderContent("- a\n\n- b", nil)
	if strings.Count(got, "<ul>") != 2 {
		t.Errorf("expected two <ul> wrappers for split runs: %q", got)
	}
}

func TestRenderContentInlineImages(t *testing.T) {
	images := []InlineImage{{ID: "img1", Base64: "QUJDMTIz", Alt: "scan result", Caption: "Figure 1"}}
	got := RenderContent("Before {{image:img1}} after", images)

	if !strings.Contains(got, "data:image/png;base64,QUJDMTIz") {
		t.Errorf("base64 payload missing: %q", got)
	}
	if strings.Contains(got, "{{image:img1}}") {
		t.Errorf("placeholder not replaced: %q", got)
	}
	if !strings.Contains(got, `alt="scan result"`) {
		t.Errorf("alt missing: %q", got)
	}
	if !strings.Contains(got, "<figcaption>Figure 1</figcaption>") {
		t.Errorf("caption missing: %q", got)
	}
}

func TestRenderContentUnknownPlaceholderKept(t *testing.T) {
	got := RenderContent("see {{image:missing}} here", nil)
	if !strings.Contains(got, "{{image:missing}}") {
		t.Errorf("unknown placeholder should stay literal: %q", got)
	}
}

func TestRenderContentDataURIPassthrough(t *testing.T) {
	images := []InlineImage{{ID: "x", Base64: "data:image/jpeg;base64,Zm9v"}}
	got := RenderContent("{{image:x}}", images)
	if !strings.Contains(got, `src="data:image/jpeg;base64,Zm9v"`) {
		t.Errorf("data URI should not be double-prefixed: %q", got)
	}
}

func TestRenderContentRawHTMLPreserved(t *testing.T) {
	// The transform only rewrites recognized markdown tokens; arbitrary HTML
	// in stored content passes through untouched.
	got := RenderContent("<script>alert(1)</script>", nil)
	if !strings.Contains(got, "<script>alert(1)</script>") {
		t.Errorf("raw HTML altered: %q", got)
	}
}

func TestRenderContentDeterministic(t *testing.T) {
	content := "# T\n\n**b** *i* `c`\n\n- x\n- y\n\n{{image:a}}"
	images := []InlineImage{{ID: "a", Base64: "Zm9v", Alt: "a"}}
	first := RenderContent(content, images)
	for i := 0; i < 5; i++ {
		if got := RenderContent(content, images); got != first {
			t.Fatalf("output changed between runs:\n%q\n%q", first, got)
		}
	}
}
