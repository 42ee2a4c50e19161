package layout

import (
	"html"
	"sort"
	"strings"
)

// PreviewNode is the interactive-display representation: a minimal element
// tree the on-screen preview renders directly.
type PreviewNode struct {
	Tag      string
	Class    string
	Text     string
	Attrs    map[string]string
	Children []*PreviewNode
}

func node(tag, class string) *PreviewNode {
	return &PreviewNode{Tag: tag, Class: class}
}

func textNode(tag, class, text string) *PreviewNode {
	return &PreviewNode{Tag: tag, Class: class, Text: text}
}

func (n *PreviewNode) attr(key, value string) *PreviewNode {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

func (n *PreviewNode) add(children ...*PreviewNode) *PreviewNode {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Find returns the first descendant (or the node itself) with the given
// class, or nil. Used by the preview back-end and by tests.
func (n *PreviewNode) Find(class string) *PreviewNode {
	if n == nil {
		return nil
	}
	if n.Class == class {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(class); found != nil {
			return found
		}
	}
	return nil
}

var voidTags = map[string]bool{"img": true, "br": true, "hr": true}

// HTML serializes the node tree to markup for the preview back-end. Text is
// escaped; attributes are emitted in stable order.
func (n *PreviewNode) HTML() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *PreviewNode) writeHTML(b *strings.Builder) {
	b.WriteString("<")
	b.WriteString(n.Tag)
	if n.Class != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(n.Class))
		b.WriteString(`"`)
	}
	if len(n.Attrs) > 0 {
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(n.Attrs[k]))
			b.WriteString(`"`)
		}
	}
	b.WriteString(">")
	if voidTags[n.Tag] {
		return
	}
	if n.Text != "" {
		b.WriteString(html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">")
}
