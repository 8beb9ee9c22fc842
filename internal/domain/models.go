package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Price is a menu price as printed, with the parsed amount when one could be read.
type Price struct {
	Amount   *float64 `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Raw      string   `json:"raw,omitempty"`
}

// MenuItem is one dish or drink line on a menu.
type MenuItem struct {
	ID                    string            `json:"id"`
	OriginalName          string            `json:"originalName"`
	OriginalDescription   string            `json:"originalDescription,omitempty"`
	TranslatedName        string            `json:"translatedName"`
	TranslatedDescription string            `json:"translatedDescription,omitempty"`
	Pinyin                string            `json:"pinyin,omitempty"`
	PinyinDescription     string            `json:"pinyinDescription,omitempty"`
	CulturalNotes         string            `json:"culturalNotes,omitempty"`
	Allergens             []Allergen        `json:"allergens"`
	DietaryCategories     []DietaryCategory `json:"dietaryCategories,omitempty"`
	SpiceLevel            *int              `json:"spiceLevel,omitempty"`
	Price                 *Price            `json:"price,omitempty"`
	Badges                []Badge           `json:"badges,omitempty"`
}

// MenuSection is a named grouping of items.
type MenuSection struct {
	ID              string     `json:"id"`
	OriginalTitle   string     `json:"originalTitle,omitempty"`
	TranslatedTitle string     `json:"translatedTitle,omitempty"`
	PinyinTitle     string     `json:"pinyinTitle,omitempty"`
	Items           []MenuItem `json:"items"`
}

// ParsedMenu is the root structured menu document.
type ParsedMenu struct {
	OriginalLanguage   string        `json:"originalLanguage,omitempty"`
	TranslatedLanguage string        `json:"translatedLanguage"`
	Sections           []MenuSection `json:"sections"`
}

// ItemIDs returns the set of every item identifier in the menu.
func (m *ParsedMenu) ItemIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	if m == nil {
		return ids
	}
	for i := range m.Sections {
		for j := range m.Sections[i].Items {
			ids[m.Sections[i].Items[j].ID] = struct{}{}
		}
	}
	return ids
}

// FindItem looks up an item and the section that holds it.
func (m *ParsedMenu) FindItem(itemID string) (*MenuItem, *MenuSection, bool) {
	if m == nil {
		return nil, nil, false
	}
	for i := range m.Sections {
		sec := &m.Sections[i]
		for j := range sec.Items {
			if sec.Items[j].ID == itemID {
				return &sec.Items[j], sec, true
			}
		}
	}
	return nil, nil, false
}

// CartLine is one entry of the order in progress, keyed by item identifier.
type CartLine struct {
	ItemID         string `json:"itemId"`
	SectionID      string `json:"sectionId"`
	Quantity       int    `json:"quantity"`
	IsWildcard     bool   `json:"isWildcard,omitempty"`
	WildcardReason string `json:"wildcardReason,omitempty"`
}

// WildcardSelection is one recommended line returned by the advisory backend.
type WildcardSelection struct {
	ItemID    string `json:"itemId"`
	SectionID string `json:"sectionId"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// ImagePayload is a normalized image ready to send to a model backend.
type ImagePayload struct {
	MediaType string
	Data      []byte
}

// Base64 returns the payload as standard base64.
func (p ImagePayload) Base64() string {
	return base64.StdEncoding.EncodeToString(p.Data)
}

// DataURL returns the payload as a data URL.
func (p ImagePayload) DataURL() string {
	return "data:" + p.MediaType + ";base64," + p.Base64()
}

// MenuScan is an archived extraction: the stored page images and the resulting menu.
type MenuScan struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	Language         string          `db:"language" json:"language"`
	OriginalLanguage string          `db:"original_language" json:"original_language"`
	PageCount        int             `db:"page_count" json:"page_count"`
	ImageKeys        json.RawMessage `db:"image_keys" json:"image_keys" swaggertype:"array,string"`
	Menu             json.RawMessage `db:"menu" json:"menu" swaggertype:"object"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
