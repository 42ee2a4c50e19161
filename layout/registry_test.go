package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("registers every supported shape", func(t *testing.T) {
		assert.Equal(t, Shapes, reg.RegisteredShapes())
		for _, shape := range Shapes {
			h, err := reg.Get(shape)
			require.NoError(t, err)
			assert.Equal(t, shape, h.Shape())
		}
	})

	t.Run("declared capacities", func(t *testing.T) {
		want := map[Shape]int{
			Shape1Up:         1,
			Shape2Up:         2,
			Shape3Up:         3,
			Shape4Up:         4,
			Shape8Up:         8,
			Shape9Up:         9,
			Shape12Up:        12,
			ShapeList:        10,
			ShapeCompactList: 20,
			Shape2Int:        2,
		}
		for shape, capacity := range want {
			h, err := reg.Get(shape)
			require.NoError(t, err)
			assert.Equal(t, capacity, h.Capacity(), "shape %s", shape)
		}
	})

	t.Run("unregistered shape is a typed error", func(t *testing.T) {
		_, err := reg.Get(Shape("5-up"))
		var serr *UnknownShapeError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, Shape("5-up"), serr.Shape)
	})

	t.Run("merged styles contain every shape block in order", func(t *testing.T) {
		styles := reg.MergedStyles()
		prev := -1
		for _, shape := range Shapes {
			var marker string
			if shape.IsList() {
				marker = ".row--" + shape.CSSClass()
			} else {
				marker = ".grid--" + shape.CSSClass()
			}
			idx := strings.Index(styles, marker)
			require.GreaterOrEqual(t, idx, 0, "style for %s missing", shape)
			assert.Greater(t, idx, prev, "style for %s out of order", shape)
			prev = idx
		}
	})
}

func TestParseShape(t *testing.T) {
	for _, shape := range Shapes {
		parsed, err := ParseShape(string(shape))
		require.NoError(t, err)
		assert.Equal(t, shape, parsed)
	}

	_, err := ParseShape("6-up")
	var serr *UnknownShapeError
	require.ErrorAs(t, err, &serr)
}
