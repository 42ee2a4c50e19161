// Package layout implements the pagination-and-layout-projection core: a
// fixed catalogue of layout shapes, one pluggable handler per shape that
// projects a catalogue item into three back-end renderings from a single
// sizing/truncation table, a registry over those handlers, the pagination
// state machine, and the page assembler.
package layout

import "fmt"

// Shape identifies one layout configuration with a fixed page capacity and
// visual form (card grid vs. list row).
type Shape string

const (
	Shape1Up         Shape = "1-up"
	Shape2Up         Shape = "2-up"
	Shape3Up         Shape = "3-up"
	Shape4Up         Shape = "4-up"
	Shape8Up         Shape = "8-up"
	Shape9Up         Shape = "9-up"
	Shape12Up        Shape = "12-up"
	ShapeList        Shape = "list"
	ShapeCompactList Shape = "compact-list"
	Shape2Int        Shape = "2-int" // 2-up with internals strip
)

// Shapes lists every supported shape in display order.
var Shapes = []Shape{
	Shape1Up, Shape2Up, Shape3Up, Shape4Up,
	Shape8Up, Shape9Up, Shape12Up,
	ShapeList, ShapeCompactList, Shape2Int,
}

// ParseShape validates a shape identifier coming from a request parameter.
func ParseShape(s string) (Shape, error) {
	for _, shape := range Shapes {
		if string(shape) == s {
			return shape, nil
		}
	}
	return "", &UnknownShapeError{Shape: Shape(s)}
}

// IsList reports whether the shape has the row-oriented, non-card visual
// form. List shapes grow vertically and are never padded with empty slots.
func (s Shape) IsList() bool {
	return s == ShapeList || s == ShapeCompactList
}

// CSSClass returns the class suffix used in fragment markup and style blocks.
func (s Shape) CSSClass() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeCompactList:
		return "compact"
	case Shape2Int:
		return "2int"
	default:
		// "4-up" -> "4up"
		out := make([]byte, 0, len(s))
		for i := 0; i < len(s); i++ {
			if s[i] != '-' {
				out = append(out, s[i])
			}
		}
		return string(out)
	}
}

// Field identifies a long-text field governed by a per-shape truncation budget.
type Field string

const (
	FieldDescription Field = "description"
	FieldAuthorBio   Field = "authorBio"
)

// CodeType selects the auxiliary machine-readable code rendered for an item.
type CodeType string

const (
	CodeEAN13 CodeType = "EAN-13"
	CodeQR    CodeType = "QR Code"
	CodeNone  CodeType = "None"
)

// ParseCodeType validates a code-type parameter.
func ParseCodeType(s string) (CodeType, error) {
	switch CodeType(s) {
	case CodeEAN13, CodeQR, CodeNone:
		return CodeType(s), nil
	}
	return "", fmt.Errorf("unknown code type %q", s)
}
