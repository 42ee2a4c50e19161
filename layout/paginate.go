package layout

import "catalogue-press/models"

// Assignment selects either one shape applied uniformly or a per-item shape
// sequence ("mixed" mode).
type Assignment struct {
	uniform Shape
	perItem []Shape
}

// Uniform applies one shape to the whole run.
func Uniform(shape Shape) Assignment {
	return Assignment{uniform: shape}
}

// Mixed assigns one shape per item; the sequence must match the item count.
func Mixed(shapes []Shape) Assignment {
	return Assignment{perItem: shapes}
}

// Mixed reports whether this is a per-item assignment.
func (a Assignment) Mixed() bool {
	return a.perItem != nil
}

func (a Assignment) shapeFor(i int) Shape {
	if a.perItem != nil {
		return a.perItem[i]
	}
	return a.uniform
}

// Slot pairs one book with its absolute position in the run.
type Slot struct {
	Book  models.Book
	Index int
}

// Page is an ordered, non-empty group of slots sharing one shape. Pages are
// ephemeral: computed per render request, never persisted.
type Page struct {
	Shape Shape
	Slots []Slot
	First bool
	Last  bool
}

// Paginate packs the item sequence into pages. Each page holds exactly the
// shape's declared capacity (or fewer on the final page or at a shape
// change); a shape change always forces a new page even when the prior page
// had spare capacity, with no cross-shape backfilling.
//
// All validation happens before the first page is built: an empty item list,
// a mixed assignment of the wrong length, a duplicate or empty handle, and an
// unregistered shape are all fatal ValidationErrors.
func Paginate(books []models.Book, asg Assignment, reg *Registry) ([]Page, error) {
	if len(books) == 0 {
		return nil, validationErrorf("item list is empty")
	}
	if asg.Mixed() && len(asg.perItem) != len(books) {
		return nil, validationErrorf("mixed-mode assignment length %d does not match item count %d",
			len(asg.perItem), len(books))
	}

	seen := make(map[string]bool, len(books))
	for i, b := range books {
		if b.Handle == "" {
			return nil, validationErrorf("item %d has an empty handle", i)
		}
		if seen[b.Handle] {
			return nil, validationErrorf("duplicate handle %q", b.Handle)
		}
		seen[b.Handle] = true
	}

	// Resolve capacities up front so an unregistered shape fails the whole
	// request before any page exists.
	capacities := make(map[Shape]int)
	for i := range books {
		shape := asg.shapeFor(i)
		if _, ok := capacities[shape]; ok {
			continue
		}
		h, err := reg.Get(shape)
		if err != nil {
			return nil, err
		}
		capacities[shape] = h.Capacity()
	}

	// One pass: accumulate into the open page, closing it when full or when
	// the assigned shape changes.
	var pages []Page
	var open *Page
	for i, b := range books {
		shape := asg.shapeFor(i)
		if open != nil && (open.Shape != shape || len(open.Slots) == capacities[shape]) {
			pages = append(pages, *open)
			open = nil
		}
		if open == nil {
			open = &Page{Shape: shape}
		}
		open.Slots = append(open.Slots, Slot{Book: b, Index: i})
	}
	if open != nil {
		pages = append(pages, *open)
	}

	pages[0].First = true
	pages[len(pages)-1].Last = true
	return pages, nil
}
