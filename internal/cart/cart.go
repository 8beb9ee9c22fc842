// Package cart holds the order in progress as an immutable mapping from menu
// item identifier to cart line, advanced by Reduce.
package cart

import (
	"sort"

	"carte/internal/domain"
)

// Cart maps item identifiers to their line. Values returned by Reduce are
// never modified afterwards.
type Cart map[string]domain.CartLine

// New returns an empty cart.
func New() Cart {
	return Cart{}
}

// Quantity returns the quantity of itemID, zero when absent.
func (c Cart) Quantity(itemID string) int {
	return c[itemID].Quantity
}

// Count returns the total number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

// Lines returns the lines sorted by item identifier. A line without an
// identifier takes its map key.
func (c Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c))
	for id, l := range c {
		if l.ItemID == "" {
			l.ItemID = id
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (c Cart) clone() Cart {
	out := make(Cart, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	return out
}
