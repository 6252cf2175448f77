// Package markdown converts stored blog content into display HTML and
// computes derived metadata such as reading time.
//
// The renderer is an ordered sequence of regex substitution passes, not a
// full parser. The pass order matters: code is extracted to placeholders
// before any formatting runs, and bold runs before italic so "**x**" is never
// partially consumed by the single-asterisk rule. Raw HTML in the source text
// passes through untouched; only recognized markdown tokens are rewritten.
package markdown

import (
	"context"
	"html"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// InlineImage is an image referenced from content via a {{image:<id>}}
// placeholder.
type InlineImage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Base64  string `json:"base64"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

const wordsPerMinute = 200

var (
	reCodeBlock  = regexp.MustCompile("(?s)```([a-zA-Z0-9+-]*)\\n?(.*?)```")
	reInlineCode = regexp.MustCompile("`([^`\n]+)`")
	reH5         = regexp.MustCompile(`(?m)^##### (.+)$`)
	reH4         = regexp.MustCompile(`(?m)^#### (.+)$`)
	reH3         = regexp.MustCompile(`(?m)^### (.+)$`)
	reH2         = regexp.MustCompile(`(?m)^## (.+)$`)
	reH1         = regexp.MustCompile(`(?m)^# (.+)$`)
	reBoldItalic = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*\n]+)\*`)
	reLink       = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]*)\)`)
	reQuote      = regexp.MustCompile(`(?m)^> (.+)$`)
	reUnordered  = regexp.MustCompile(`(?m)^[-*] (.+)$`)
	reOrdered    = regexp.MustCompile(`(?m)^\d+\. (.+)$`)

	reULRun = regexp.MustCompile(`<li>.*?</li>(?:(?:<br/>)*<li>.*?</li>)*`)
	reOLRun = regexp.MustCompile(`\x00OL\x00.*?\x00/OL\x00(?:(?:<br/>)*\x00OL\x00.*?\x00/OL\x00)*`)
)

// CalculateReadingTime returns the estimated minutes to read content,
// assuming 200 words per minute. Word count splits on whitespace and counts
// non-empty tokens. The minimum is 1 even for empty content.
func CalculateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// RenderContent transforms markdown-like content into HTML, resolving
// {{image:<id>}} placeholders against images. It is a pure function: the
// same (content, images) input always yields byte-identical output.
func RenderContent(content string, images []InlineImage) string {
	out := substituteImages(content, images)

	// Code is lifted out first so no later pass reformats its contents.
	var blocks []string
	out = reCodeBlock.ReplaceAllStringFunc(out, func(m string) string {
		match := reCodeBlock.FindStringSubmatch(m)
		code := html.EscapeString(strings.TrimRight(match[2], "\n"))
		var b string
		if lang := match[1]; lang != "" {
			b = `<pre><code class="language-` + lang + `">` + code + "</code></pre>"
		} else {
			b = "<pre><code>" + code + "</code></pre>"
		}
		return stashBlock(&blocks, b)
	})
	out = reInlineCode.ReplaceAllStringFunc(out, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		return stashBlock(&blocks, "<code>"+html.EscapeString(match[1])+"</code>")
	})

	// Fixed, order-dependent substitution sequence.
	out = reH5.ReplaceAllString(out, "<h5>$1</h5>")
	out = reH4.ReplaceAllString(out, "<h4>$1</h4>")
	out = reH3.ReplaceAllString(out, "<h3>$1</h3>")
	out = reH2.ReplaceAllString(out, "<h2>$1</h2>")
	out = reH1.ReplaceAllString(out, "<h1>$1</h1>")
	out = reBoldItalic.ReplaceAllString(out, "<strong><em>$1</em></strong>")
	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = reItalic.ReplaceAllString(out, "<em>$1</em>")
	out = reLink.ReplaceAllString(out, `<a href="$2">$1</a>`)
	out = reQuote.ReplaceAllString(out, "<blockquote>$1</blockquote>")
	out = reUnordered.ReplaceAllString(out, "<li>$1</li>")
	out = reOrdered.ReplaceAllString(out, "\x00OL\x00$1\x00/OL\x00")

	// Paragraph collapse: blank lines split paragraphs, single newlines
	// become line breaks, and the whole result lives in a paragraph.
	out = "<p>" + strings.ReplaceAll(out, "\n\n", "</p><p>") + "</p>"
	out = strings.ReplaceAll(out, "\n", "<br/>")

	out = mergeListRuns(out)

	// Restore code last so its newlines were never rewritten.
	for i, b := range blocks {
		out = strings.Replace(out, blockToken(i), b, 1)
	}
	return out
}

// substituteImages replaces every {{image:<id>}} occurrence with a figure
// embedding the image's base64 payload. A placeholder with no matching image
// id stays in the text as-is.
func substituteImages(content string, images []InlineImage) string {
	for _, img := range images {
		if img.ID == "" {
			continue
		}
		src := img.Base64
		if !strings.HasPrefix(src, "data:") {
			src = "data:image/png;base64," + src
		}
		snippet := `<figure class="inline-image"><img src="` + src + `" alt="` + html.EscapeString(img.Alt) + `"/>`
		if img.Caption != "" {
			snippet += "<figcaption>" + html.EscapeString(img.Caption) + "</figcaption>"
		}
		snippet += "</figure>"
		content = strings.ReplaceAll(content, "{{image:"+img.ID+"}}", snippet)
	}
	return content
}

// mergeListRuns wraps contiguous runs of list items into a single <ul> or
// <ol>. Ordered items use an internal token until this point so the two list
// kinds never merge into the same wrapper.
func mergeListRuns(s string) string {
	s = reULRun.ReplaceAllStringFunc(s, func(run string) string {
		return "<ul>" + strings.ReplaceAll(run, "<br/>", "") + "</ul>"
	})
	s = reOLRun.ReplaceAllStringFunc(s, func(run string) string {
		run = strings.ReplaceAll(run, "<br/>", "")
		run = strings.ReplaceAll(run, "\x00OL\x00", "<li>")
		run = strings.ReplaceAll(run, "\x00/OL\x00", "</li>")
		return "<ol>" + run + "</ol>"
	})
	return s
}

func stashBlock(blocks *[]string, b string) string {
	token := blockToken(len(*blocks))
	*blocks = append(*blocks, b)
	return token
}

func blockToken(i int) string {
	return "\x00CB" + strconv.Itoa(i) + "\x00"
}

// Component returns a templ.Component that renders content as HTML, for
// server-side previews.
func Component(content string, images []InlineImage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, RenderContent(content, images))
		return err
	})
}
