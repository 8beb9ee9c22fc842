package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"carte/internal/domain"
)

const menuSchema = `{
  "originalLanguage": "string, optional",
  "translatedLanguage": "string",
  "sections": [
    {
      "id": "string",
      "originalTitle": "string, optional",
      "translatedTitle": "string, optional",
      "pinyinTitle": "string, only for Chinese targets",
      "items": [
        {
          "id": "string, unique within the menu",
          "originalName": "string",
          "originalDescription": "string, optional",
          "translatedName": "string",
          "translatedDescription": "string, optional",
          "pinyin": "string, only for Chinese targets",
          "pinyinDescription": "string, only for Chinese targets",
          "culturalNotes": "string, optional",
          "allergens": ["nuts|peanuts|dairy|gluten|soy|eggs|shellfish|fish|sesame|none"],
          "dietaryCategories": ["vegetarian|vegan|pescatarian|halal|kosher|none"],
          "spiceLevel": "integer 0-5, optional",
          "price": {"amount": 0.0, "currency": "ISO 4217 code", "raw": "price as printed"},
          "badges": ["Local Specialty|Must Try"]
        }
      ]
    }
  ]
}`

// BuildMenuSystemPrompt returns the fixed extraction contract: output schema
// and the scanning policy for photographed menus.
func BuildMenuSystemPrompt() string {
	return `You are Carte, a culinary menu analyst. You read photographs of restaurant menus and return a structured, translated menu.

Return ONLY a JSON object, with no code fences and no commentary, matching this schema:
` + menuSchema + `

Scanning:
- Extract every visible item. Never invent items that are not on the page.
- Read multi-column layouts one column at a time, top to bottom, then left to right.
- Check boxes, sidebars, margins and small print for specials, sides and add-ons.
- Treat bold, all-caps or centered lines followed by items as section headings. Infer a grouping when none is printed.
- Each selectable choice is its own item. Size or temperature modifiers belong in the description.

Prices:
- Attach prices on the same line first, then the nearest right-aligned price at the same height.
- Keep the printed text in "raw" and the decimal value in "amount". Read "3'00" and "12,90" as 3.00 and 12.90 where regional convention says so.

Content:
- Preserve original names and descriptions. Translate into the requested language.
- Write a short appetizing description when the menu gives none.
- Add cultural notes where useful and mark "Local Specialty" or "Must Try" when deserved.
- List likely allergens. Use ["none"] when there are none or they are unknown.
- Estimate spice level and dietary categories when relevant.
- Append "(unclear)" to translatedName when the source text is illegible.

Identifiers:
- Use kebab-case ids derived from the original name plus a 4-character suffix, e.g. "grilled-salmon-1a2b".
- Ids must be unique within the menu.

Before answering, count the items and confirm no column or section was skipped. Use double-quoted keys and strings only.`
}

// BuildMenuUserPrompt returns the per-request instruction. displayLanguage is
// the human-readable target, romanize requests pinyin fields.
func BuildMenuUserPrompt(displayLanguage string, romanize bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extract the complete menu from the image and translate everything to %s.\n", displayLanguage)
	if romanize {
		b.WriteString(`
Romanization is required for this language:
- Add "pinyinTitle" to every section whose translatedTitle contains Chinese characters.
- Add "pinyin" to every item whose translatedName contains Chinese characters, and "pinyinDescription" when the translatedDescription does.
- Use Hanyu Pinyin with tone marks, spaced by word, e.g. {"translatedName": "麻婆豆腐", "pinyin": "má pó dòu fu"}.
`)
	} else {
		b.WriteString("\nOmit the pinyin fields.\n")
	}
	fmt.Fprintf(&b, "\nTARGET LANGUAGE: %s. All translated text, descriptions and cultural notes must use it.\nRespond with JSON only, following the schema.", displayLanguage)
	return b.String()
}

// BuildWildcardSystemPrompt returns the recommendation contract.
func BuildWildcardSystemPrompt() string {
	return `You are a culinary expert and cultural guide helping travelers order well from a local menu. You choose a set of dishes for a party based on its size, appetite and appetite for adventure.

Respond with ONLY a JSON object, no text before or after:
{
  "selections": [
    {"itemId": "id from the menu", "sectionId": "id from the menu", "quantity": 1, "reason": "why this dish"}
  ],
  "explanation": "overall description of the meal"
}

Guidelines:
- Adventurous parties get local specialties and must-try dishes. Cautious parties get familiar, approachable dishes.
- Scale quantities to the party size and the hunger level, favouring dishes that can be shared.
- Balance the meal across courses and flavours.
- Use item and section ids exactly as they appear in the menu.
- Write every reason and the explanation in the diner's preferred language.`
}

var hungerDescriptions = map[domain.HungerLevel]string{
	domain.HungerLight:    "light appetite - small portions, perhaps appetizers or light dishes",
	domain.HungerModerate: "moderate appetite - a reasonable meal, not too heavy",
	domain.HungerHungry:   "hungry - substantial portions, multiple courses",
	domain.HungerFeast:    "very hungry - generous portions, multiple dishes to share",
}

// WildcardPrompt holds the inputs of a recommendation request.
type WildcardPrompt struct {
	Menu        *domain.ParsedMenu
	PartySize   int
	HungerLevel domain.HungerLevel
	Adventurous bool
	Language    string
	CurrentCart map[string]domain.CartLine
}

// BuildWildcardUserPrompt renders the party, the full menu and, when present,
// the existing cart that the selection should complement.
func BuildWildcardUserPrompt(in WildcardPrompt) (string, error) {
	menuJSON, err := json.MarshalIndent(in.Menu, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding menu: %w", err)
	}

	adventure := "SAFE - familiar and approachable dishes"
	if in.Adventurous {
		adventure = "ADVENTUROUS - local specialties and must-try dishes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Choose dishes for this party:\n\nPARTY:\n- Party size: %d people\n- Hunger level: %s (%s)\n- Adventure preference: %s\n- Preferred language: %s\n\nMENU:\n%s\n",
		in.PartySize, in.HungerLevel, hungerDescriptions[in.HungerLevel], adventure, in.Language, menuJSON)

	hasCart := len(in.CurrentCart) > 0
	if hasCart {
		cartJSON, err := json.MarshalIndent(in.CurrentCart, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding cart: %w", err)
		}
		fmt.Fprintf(&b, `
EXISTING CART:
%s

Complement these items rather than repeating them. Fill gaps in the meal, pair with what is already chosen and avoid clashing flavours.
`, cartJSON)
	}

	b.WriteString("\nConsider:\n")
	fmt.Fprintf(&b, "- Quantities suited to %d people\n", in.PartySize)
	if hasCart {
		b.WriteString("- Dishes that go together and with the existing cart\n")
	} else {
		b.WriteString("- Dishes that go together\n")
	}
	fmt.Fprintf(&b, "- Portions suited to a %s appetite\n", in.HungerLevel)
	b.WriteString("- Cultural significance, especially for adventurous diners\n")
	fmt.Fprintf(&b, "\nWrite every reason and the explanation in %s. Respond with the JSON format from the system prompt.", in.Language)
	return b.String(), nil
}
