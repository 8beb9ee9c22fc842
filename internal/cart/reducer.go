package cart

import "carte/internal/domain"

// Event is a cart transition.
type Event interface {
	cartEvent()
}

// Increment adds one unit of an item, creating the line if needed.
type Increment struct {
	SectionID string
	ItemID    string
}

// Decrement removes one unit of an item. A line that reaches zero is deleted.
type Decrement struct {
	ItemID string
}

// Clear empties the cart.
type Clear struct{}

// ApplyWildcard merges recommended selections into the cart additively.
type ApplyWildcard struct {
	Selections []domain.WildcardSelection
}

func (Increment) cartEvent()     {}
func (Decrement) cartEvent()     {}
func (Clear) cartEvent()         {}
func (ApplyWildcard) cartEvent() {}

// Reduce returns the cart that results from applying ev to c. c is not
// modified. Every line in the result has a quantity of at least one.
func Reduce(c Cart, ev Event) Cart {
	switch e := ev.(type) {
	case Increment:
		if e.ItemID == "" {
			return c
		}
		next := c.clone()
		line, ok := next[e.ItemID]
		if !ok {
			line = domain.CartLine{ItemID: e.ItemID, SectionID: e.SectionID}
		}
		line.Quantity++
		next[e.ItemID] = line
		return next

	case Decrement:
		line, ok := c[e.ItemID]
		if !ok {
			return c
		}
		next := c.clone()
		line.Quantity--
		if line.Quantity <= 0 {
			delete(next, e.ItemID)
		} else {
			next[e.ItemID] = line
		}
		return next

	case Clear:
		return New()

	case ApplyWildcard:
		if len(e.Selections) == 0 {
			return c
		}
		next := c.clone()
		for _, sel := range e.Selections {
			if sel.ItemID == "" {
				continue
			}
			qty := max(sel.Quantity, 1)
			line, ok := next[sel.ItemID]
			if !ok {
				line = domain.CartLine{ItemID: sel.ItemID, SectionID: sel.SectionID}
			}
			line.Quantity += qty
			line.IsWildcard = true
			line.WildcardReason = sel.Reason
			next[sel.ItemID] = line
		}
		return next
	}
	return c
}
