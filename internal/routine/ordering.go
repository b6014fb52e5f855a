package routine

import (
	"errors"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"dewy/internal/models"
)

// ErrAlreadyScheduled is returned when a product is added to a day whose
// active list already contains it.
var ErrAlreadyScheduled = errors.New("product is already in this day's routine")

// Direction is a single-step reorder direction.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ParseDirection validates a direction argument.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionUp, DirectionDown:
		return Direction(s), nil
	default:
		return "", errors.New("direction must be \"up\" or \"down\"")
	}
}

// TimingInScope reports whether a product timing belongs to a morning or
// evening scope. BOTH products belong to either scope; the legacy
// POST_BOOSTER value counts as evening. An empty scope matches everything.
func TimingInScope(t models.Timing, scope models.Timing) bool {
	switch scope {
	case models.TimingMorning:
		return t == models.TimingMorning || t == models.TimingBoth
	case models.TimingEvening:
		return t == models.TimingEvening || t == models.TimingBoth || t == models.LegacyTimingPostBooster
	default:
		return true
	}
}

// FilterForScope returns the products scheduled on the given weekday whose
// timing falls in scope, sorted ascending by order. This is a view: order
// values are never changed by filtering.
func FilterForScope(products []models.Product, day time.Weekday, scope models.Timing) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.ScheduledOn(day) && TimingInScope(p.Timing, scope) {
			out = append(out, p)
		}
	}
	sortByOrder(out)
	return out
}

// Sorter ranks products by the canonical routine rule: category weight
// first, then a locale-aware case- and accent-insensitive name comparison.
type Sorter struct {
	settings models.Settings
	coll     *collate.Collator
}

// NewSorter builds a sorter from the user's settings. An unparseable locale
// falls back to the undetermined-language collation rather than failing.
func NewSorter(settings models.Settings) *Sorter {
	tag, err := language.Parse(settings.Locale)
	if err != nil {
		tag = language.Und
	}
	return &Sorter{
		settings: settings,
		coll:     collate.New(tag, collate.Loose),
	}
}

// Less reports whether a ranks before b under the canonical rule. Equal
// names fall back to ID so the order is total.
func (s *Sorter) Less(a, b models.Product) bool {
	wa, wb := s.settings.Weight(a.ProductType), s.settings.Weight(b.ProductType)
	if wa != wb {
		return wa < wb
	}
	if c := s.coll.CompareString(a.Name, b.Name); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// rank returns a copy of products sorted by the canonical rule.
func (s *Sorter) rank(products []models.Product) []models.Product {
	out := append([]models.Product(nil), products...)
	sort.SliceStable(out, func(i, j int) bool { return s.Less(out[i], out[j]) })
	return out
}

// sortByOrder sorts in place ascending by order, ties broken by name then ID
// so the total order is always well defined.
func sortByOrder(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Order != products[j].Order {
			return products[i].Order < products[j].Order
		}
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ID < products[j].ID
	})
}

// SortedByOrder returns a copy of products sorted ascending by order.
func SortedByOrder(products []models.Product) []models.Product {
	out := append([]models.Product(nil), products...)
	sortByOrder(out)
	return out
}

// Reorder moves the product one step up or down within the order-sorted view
// of the list by swapping its order value with its neighbor's. Only those two
// products change. Unknown ids and boundary moves are no-ops; the second
// return value reports whether anything moved.
func Reorder(products []models.Product, id string, dir Direction) ([]models.Product, bool) {
	out := append([]models.Product(nil), products...)

	view := make([]*models.Product, len(out))
	for i := range out {
		view[i] = &out[i]
	}
	sort.SliceStable(view, func(i, j int) bool {
		if view[i].Order != view[j].Order {
			return view[i].Order < view[j].Order
		}
		if view[i].Name != view[j].Name {
			return view[i].Name < view[j].Name
		}
		return view[i].ID < view[j].ID
	})

	idx := -1
	for i, p := range view {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return out, false
	}

	neighbor := idx - 1
	if dir == DirectionDown {
		neighbor = idx + 1
	}
	if neighbor < 0 || neighbor >= len(view) {
		return out, false
	}

	view[idx].Order, view[neighbor].Order = view[neighbor].Order, view[idx].Order
	return out, true
}

// MoveBefore removes the dragged product from the order-sorted view and
// reinserts it at the target's former index, then renumbers the entire list
// to a dense 0-based sequence. Splice semantics: the target index is taken
// before removal, so dragging upward lands immediately before the target and
// dragging downward takes over the target's vacated slot. No-op when either
// id is missing or they are the same product.
func MoveBefore(products []models.Product, draggedID, targetID string) ([]models.Product, bool) {
	out := SortedByOrder(products)

	from, to := -1, -1
	for i, p := range out {
		if p.ID == draggedID {
			from = i
		}
		if p.ID == targetID {
			to = i
		}
	}
	if from < 0 || to < 0 || from == to {
		return out, false
	}

	dragged := out[from]
	rest := append(append([]models.Product(nil), out[:from]...), out[from+1:]...)
	if to > len(rest) {
		to = len(rest)
	}

	result := make([]models.Product, 0, len(out))
	result = append(result, rest[:to]...)
	result = append(result, dragged)
	result = append(result, rest[to:]...)

	for i := range result {
		result[i].Order = i
	}
	return result, true
}

// Renumber rewrites every product's order to its 0-based position in the
// order-sorted view.
func Renumber(products []models.Product) []models.Product {
	out := SortedByOrder(products)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// AutoSort re-sorts only the products whose timing falls in scope, recycling
// the order values that subset already holds:
//
//  1. select the scope's products by timing,
//  2. capture their current order values sorted ascending,
//  3. rank the subset by the canonical rule,
//  4. hand the i-th ranked product the i-th smallest captured value.
//
// Products outside the scope never held any of the recycled values, so their
// order fields come back byte-identical. An empty scope sorts the whole list.
func AutoSort(products []models.Product, scope models.Timing, sorter *Sorter) []models.Product {
	var scoped []models.Product
	for _, p := range products {
		if TimingInScope(p.Timing, scope) {
			scoped = append(scoped, p)
		}
	}
	if len(scoped) < 2 {
		return append([]models.Product(nil), products...)
	}

	available := make([]int, len(scoped))
	for i, p := range scoped {
		available[i] = p.Order
	}
	sort.Ints(available)

	ranked := sorter.rank(scoped)

	assigned := make(map[string]int, len(ranked))
	for i, p := range ranked {
		assigned[p.ID] = available[i]
	}

	out := append([]models.Product(nil), products...)
	for i := range out {
		if o, ok := assigned[out[i].ID]; ok {
			out[i].Order = o
		}
	}
	return out
}

// AddToDay inserts a product into a day's active list. The product is placed
// at its canonical rule position immediately and the whole list is renumbered
// to a dense 0..n-1 sequence. Returns ErrAlreadyScheduled when the list
// already contains the product's id.
func AddToDay(list []models.Product, p models.Product, sorter *Sorter) ([]models.Product, error) {
	for _, existing := range list {
		if existing.ID == p.ID {
			return list, ErrAlreadyScheduled
		}
	}

	maxOrder := -1
	for _, existing := range list {
		if existing.Order > maxOrder {
			maxOrder = existing.Order
		}
	}
	p.Order = maxOrder + 1

	out := sorter.rank(append(append([]models.Product(nil), list...), p))
	for i := range out {
		out[i].Order = i
	}
	return out, nil
}
