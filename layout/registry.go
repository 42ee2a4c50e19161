package layout

import "strings"

// Registry maps layout shapes to their handlers. Every supported shape must
// be registered before first use; lookup of an unregistered shape is a typed
// error, never a silent substitution.
type Registry struct {
	handlers map[Shape]Handler
	order    []Shape
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Shape]Handler)}
}

// Register adds or replaces the handler for its shape.
func (r *Registry) Register(h Handler) {
	shape := h.Shape()
	if _, exists := r.handlers[shape]; !exists {
		r.order = append(r.order, shape)
	}
	r.handlers[shape] = h
}

// Get returns the handler for a shape, or an UnknownShapeError.
func (r *Registry) Get(shape Shape) (Handler, error) {
	h, ok := r.handlers[shape]
	if !ok {
		return nil, &UnknownShapeError{Shape: shape}
	}
	return h, nil
}

// All returns a copy of the shape -> handler map.
func (r *Registry) All() map[Shape]Handler {
	out := make(map[Shape]Handler, len(r.handlers))
	for s, h := range r.handlers {
		out[s] = h
	}
	return out
}

// RegisteredShapes lists registered shapes in registration order.
func (r *Registry) RegisteredShapes() []Shape {
	out := make([]Shape, len(r.order))
	copy(out, r.order)
	return out
}

// MergedStyles concatenates every registered handler's shared style block in
// registration order.
func (r *Registry) MergedStyles() string {
	var b strings.Builder
	for _, shape := range r.order {
		b.WriteString(r.handlers[shape].SharedStyle())
	}
	return b.String()
}

// DefaultRegistry returns a registry with every supported shape registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, shape := range Shapes {
		switch shape {
		case ShapeList, ShapeCompactList:
			r.Register(newListHandler(shape))
		case Shape2Int:
			r.Register(newInternalsHandler())
		default:
			r.Register(newCardHandler(shape))
		}
	}
	return r
}
