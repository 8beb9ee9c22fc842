package menu

import (
	"fmt"
	"strings"
	"unicode"

	"carte/internal/domain"
)

// Sanitize enforces the document invariants on a freshly decoded menu:
// non-empty allergens, closed vocabularies, spice range, romanization only
// where the translation is logographic, and identifiers unique within the menu.
// It must run before the menu is shared.
func Sanitize(m *domain.ParsedMenu, language string) {
	if m == nil {
		return
	}
	if m.TranslatedLanguage == "" {
		m.TranslatedLanguage = language
	}
	if m.Sections == nil {
		m.Sections = []domain.MenuSection{}
	}

	sectionIDs := newIDSet("-")
	itemIDs := newIDSet("-")

	for i := range m.Sections {
		sec := &m.Sections[i]
		if strings.TrimSpace(sec.ID) == "" {
			sec.ID = fmt.Sprintf("section-%d", i+1)
		}
		sec.ID = sectionIDs.claim(sec.ID)
		if !ContainsHan(sec.TranslatedTitle) {
			sec.PinyinTitle = ""
		}
		if sec.Items == nil {
			sec.Items = []domain.MenuItem{}
		}

		for j := range sec.Items {
			item := &sec.Items[j]
			if strings.TrimSpace(item.ID) == "" {
				item.ID = fmt.Sprintf("%s-item-%d", sec.ID, j+1)
			}
			item.ID = itemIDs.claim(item.ID)
			sanitizeItem(item)
		}
	}
}

func sanitizeItem(item *domain.MenuItem) {
	item.Allergens = cleanAllergens(item.Allergens)

	if len(item.DietaryCategories) > 0 {
		kept := item.DietaryCategories[:0]
		for _, d := range item.DietaryCategories {
			d = domain.DietaryCategory(strings.ToLower(strings.TrimSpace(string(d))))
			if domain.ValidDietaryCategories[d] {
				kept = append(kept, d)
			}
		}
		item.DietaryCategories = kept
	}

	if item.SpiceLevel != nil {
		level := *item.SpiceLevel
		if level < domain.MinSpiceLevel {
			level = domain.MinSpiceLevel
		}
		if level > domain.MaxSpiceLevel {
			level = domain.MaxSpiceLevel
		}
		item.SpiceLevel = &level
	}

	if len(item.Badges) > 0 {
		kept := item.Badges[:0]
		for _, b := range item.Badges {
			if domain.ValidBadges[b] {
				kept = append(kept, b)
			}
		}
		item.Badges = kept
	}

	if item.Price != nil && item.Price.Amount == nil && item.Price.Currency == "" && item.Price.Raw == "" {
		item.Price = nil
	}

	if !ContainsHan(item.TranslatedName) {
		item.Pinyin = ""
	}
	if !ContainsHan(item.TranslatedDescription) {
		item.PinyinDescription = ""
	}
}

// cleanAllergens keeps known allergens and falls back to the "none" sentinel.
func cleanAllergens(in []domain.Allergen) []domain.Allergen {
	seen := make(map[domain.Allergen]bool, len(in))
	out := make([]domain.Allergen, 0, len(in))
	for _, a := range in {
		a = domain.Allergen(strings.ToLower(strings.TrimSpace(string(a))))
		if !domain.ValidAllergens[a] || a == domain.AllergenNone || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	if len(out) == 0 {
		return []domain.Allergen{domain.AllergenNone}
	}
	return out
}

// ContainsHan reports whether s has any Han (Chinese) characters.
func ContainsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// idSet hands out identifiers, suffixing repeats with sep and a counter.
type idSet struct {
	sep  string
	used map[string]int
}

func newIDSet(sep string) *idSet {
	return &idSet{sep: sep, used: make(map[string]int)}
}

func (s *idSet) claim(id string) string {
	n, taken := s.used[id]
	if !taken {
		s.used[id] = 1
		return id
	}
	for {
		n++
		candidate := fmt.Sprintf("%s%s%d", id, s.sep, n)
		if _, clash := s.used[candidate]; !clash {
			s.used[id] = n
			s.used[candidate] = 1
			return candidate
		}
	}
}
