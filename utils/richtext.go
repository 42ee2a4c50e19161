package utils

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var multiNewline = regexp.MustCompile(`\n{3,}`)

// RichTextToPlainText converts markup-ish field content to plain text:
// line-break and paragraph markers become newlines, remaining tags are
// stripped, entities are decoded, and runs of three or more newlines collapse
// to two. Malformed input degrades to best-effort plain text; the function
// never fails.
func RichTextToPlainText(markup string) string {
	if markup == "" {
		return ""
	}

	tok := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder

loop:
	for {
		switch tok.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way we keep what we have.
			break loop
		case html.TextToken:
			// Text() already decodes entities (&amp; &lt; &gt; &quot; &#39;).
			b.Write(tok.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tok.TagName()
			if string(name) == "br" {
				b.WriteString("\n")
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString("\n\n")
			}
		}
	}

	out := multiNewline.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(out)
}
