package cart

import (
	"carte/internal/domain"
	"carte/internal/menu"
)

// SummaryLine is one cart line resolved against the menu.
type SummaryLine struct {
	ItemID         string        `json:"itemId"`
	SectionID      string        `json:"sectionId"`
	SectionTitle   string        `json:"sectionTitle,omitempty"`
	Name           string        `json:"name"`
	OriginalName   string        `json:"originalName,omitempty"`
	Quantity       int           `json:"quantity"`
	Price          *domain.Price `json:"price,omitempty"`
	LineTotal      *float64      `json:"lineTotal,omitempty"`
	IsWildcard     bool          `json:"isWildcard,omitempty"`
	WildcardReason string        `json:"wildcardReason,omitempty"`
}

// Summary is the order as shown to the diner or the waiter.
type Summary struct {
	Lines          []SummaryLine `json:"lines"`
	ItemCount      int           `json:"itemCount"`
	Total          float64       `json:"total"`
	Currency       string        `json:"currency,omitempty"`
	FormattedTotal string        `json:"formattedTotal"`
}

// Summarize resolves the cart against m. Lines follow menu order; lines whose
// item is not on the menu come last, sorted by id, and add nothing to the total.
// The total takes the currency of the last priced line that names one.
func Summarize(m *domain.ParsedMenu, c Cart) Summary {
	s := Summary{Lines: []SummaryLine{}}
	seen := make(map[string]bool, len(c))

	if m != nil {
		for _, sec := range m.Sections {
			title := sec.OriginalTitle
			if title == "" {
				title = sec.TranslatedTitle
			}
			for i := range sec.Items {
				item := &sec.Items[i]
				cl, ok := c[item.ID]
				if !ok || seen[item.ID] {
					continue
				}
				seen[item.ID] = true
				s.Lines = append(s.Lines, resolvedLine(cl, sec.ID, title, item))
			}
		}
	}

	for _, cl := range c.Lines() {
		if seen[cl.ItemID] {
			continue
		}
		s.Lines = append(s.Lines, SummaryLine{
			ItemID:         cl.ItemID,
			SectionID:      cl.SectionID,
			Name:           cl.ItemID,
			Quantity:       cl.Quantity,
			IsWildcard:     cl.IsWildcard,
			WildcardReason: cl.WildcardReason,
		})
	}

	for _, l := range s.Lines {
		s.ItemCount += l.Quantity
		if l.LineTotal == nil {
			continue
		}
		s.Total += *l.LineTotal
		if l.Price.Currency != "" {
			s.Currency = l.Price.Currency
		}
	}
	s.FormattedTotal = menu.FormatMoney(s.Total, s.Currency)
	return s
}

func resolvedLine(cl domain.CartLine, sectionID, sectionTitle string, item *domain.MenuItem) SummaryLine {
	name := item.TranslatedName
	if name == "" {
		name = item.ID
	}
	l := SummaryLine{
		ItemID:         item.ID,
		SectionID:      sectionID,
		SectionTitle:   sectionTitle,
		Name:           name,
		OriginalName:   item.OriginalName,
		Quantity:       cl.Quantity,
		Price:          item.Price,
		IsWildcard:     cl.IsWildcard,
		WildcardReason: cl.WildcardReason,
	}
	if item.Price != nil && item.Price.Amount != nil {
		total := *item.Price.Amount * float64(cl.Quantity)
		l.LineTotal = &total
	}
	return l
}
