package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"carte/internal/cart"
	"carte/internal/domain"
	"carte/internal/menu"
)

// writeStructured renders v as indented JSON or as YAML with the JSON field
// names and order.
func writeStructured(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if format == "json" {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	blockStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle drops the flow style JSON input leaves on every node.
func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func writeMenuText(w io.Writer, m *domain.ParsedMenu) {
	if m.OriginalLanguage != "" {
		fmt.Fprintf(w, "%s → %s\n", m.OriginalLanguage, m.TranslatedLanguage)
	}
	for _, sec := range m.Sections {
		fmt.Fprintf(w, "\n== %s ==\n", sectionTitle(sec))
		for _, item := range sec.Items {
			line := "  [" + item.ID + "] " + item.TranslatedName
			if item.OriginalName != "" && item.OriginalName != item.TranslatedName {
				line += " (" + item.OriginalName + ")"
			}
			if item.Price != nil && item.Price.Raw != "" {
				line += "  " + item.Price.Raw
			}
			fmt.Fprintln(w, line)
			if item.TranslatedDescription != "" {
				fmt.Fprintln(w, "      "+item.TranslatedDescription)
			}
			if len(item.Allergens) > 0 {
				names := make([]string, len(item.Allergens))
				for i, a := range item.Allergens {
					names[i] = string(a)
				}
				fmt.Fprintln(w, "      allergens: "+strings.Join(names, ", "))
			}
		}
	}
}

func writeSummaryText(w io.Writer, s cart.Summary) {
	for _, l := range s.Lines {
		mark := " "
		if l.IsWildcard {
			mark = "*"
		}
		total := ""
		if l.LineTotal != nil && l.Price != nil {
			total = "  " + menu.FormatMoney(*l.LineTotal, l.Price.Currency)
		}
		fmt.Fprintf(w, "%s %dx %s%s\n", mark, l.Quantity, l.Name, total)
		if l.WildcardReason != "" {
			fmt.Fprintln(w, "     "+l.WildcardReason)
		}
	}
	fmt.Fprintf(w, "\n%d items, total %s\n", s.ItemCount, s.FormattedTotal)
}

func sectionTitle(sec domain.MenuSection) string {
	switch {
	case sec.TranslatedTitle != "" && sec.OriginalTitle != "" && sec.TranslatedTitle != sec.OriginalTitle:
		return sec.TranslatedTitle + " / " + sec.OriginalTitle
	case sec.TranslatedTitle != "":
		return sec.TranslatedTitle
	case sec.OriginalTitle != "":
		return sec.OriginalTitle
	}
	return sec.ID
}
