package menu

import (
	"fmt"
	"strings"

	"carte/internal/domain"
)

// Merge combines per-page menus into one logical menu.
//
// Identifiers from page i (1-based) are suffixed with "_page{i}". Sections
// sharing a merge key (translated title, else original title, else the page
// position) are combined with items concatenated in page order. A single
// menu is returned as-is.
func Merge(menus []*domain.ParsedMenu) (*domain.ParsedMenu, error) {
	pages := make([]*domain.ParsedMenu, 0, len(menus))
	for _, m := range menus {
		if m != nil {
			pages = append(pages, m)
		}
	}
	if len(pages) == 0 {
		return nil, &domain.MergeError{Kind: domain.KindEmpty}
	}
	if len(pages) == 1 {
		return pages[0], nil
	}

	merged := &domain.ParsedMenu{
		OriginalLanguage:   pages[0].OriginalLanguage,
		TranslatedLanguage: pages[0].TranslatedLanguage,
		Sections:           []domain.MenuSection{},
	}

	byKey := make(map[string]int)
	sectionIDs := newIDSet("_")
	itemIDs := newIDSet("_")

	for pageIdx, page := range pages {
		suffix := fmt.Sprintf("_page%d", pageIdx+1)

		for _, sec := range page.Sections {
			key := mergeKey(sec, pageIdx)
			pos, ok := byKey[key]
			if !ok {
				merged.Sections = append(merged.Sections, domain.MenuSection{
					ID:              sectionIDs.claim(sec.ID + suffix),
					OriginalTitle:   sec.OriginalTitle,
					TranslatedTitle: sec.TranslatedTitle,
					PinyinTitle:     sec.PinyinTitle,
					Items:           make([]domain.MenuItem, 0, len(sec.Items)),
				})
				pos = len(merged.Sections) - 1
				byKey[key] = pos
			} else {
				fillTitles(&merged.Sections[pos], sec)
			}

			for _, item := range sec.Items {
				item.ID = itemIDs.claim(item.ID + suffix)
				merged.Sections[pos].Items = append(merged.Sections[pos].Items, item)
			}
		}
	}

	return merged, nil
}

func mergeKey(sec domain.MenuSection, pageIdx int) string {
	if t := strings.TrimSpace(sec.TranslatedTitle); t != "" {
		return t
	}
	if t := strings.TrimSpace(sec.OriginalTitle); t != "" {
		return t
	}
	return fmt.Sprintf("Section_%d", pageIdx)
}

// fillTitles copies titles the first-seen section lacked.
func fillTitles(dst *domain.MenuSection, src domain.MenuSection) {
	if dst.OriginalTitle == "" {
		dst.OriginalTitle = src.OriginalTitle
	}
	if dst.TranslatedTitle == "" {
		dst.TranslatedTitle = src.TranslatedTitle
	}
	if dst.PinyinTitle == "" {
		dst.PinyinTitle = src.PinyinTitle
	}
}
