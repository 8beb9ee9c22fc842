package menu

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLanguage is used when a request names no target language.
const DefaultLanguage = "English"

// LanguageOption is a selectable target language.
type LanguageOption struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Code        string `json:"code"`
}

var languageOptions = []LanguageOption{
	{Name: "English", DisplayName: "English", Code: "en"},
	{Name: "Spanish", DisplayName: "Spanish (Español)", Code: "es"},
	{Name: "French", DisplayName: "French (Français)", Code: "fr"},
	{Name: "German", DisplayName: "German (Deutsch)", Code: "de"},
	{Name: "Italian", DisplayName: "Italian (Italiano)", Code: "it"},
	{Name: "Japanese", DisplayName: "Japanese (日本語)", Code: "ja"},
	{Name: "Chinese Simplified", DisplayName: "Simplified Chinese (中文简体)", Code: "zh-cn"},
	{Name: "Chinese Traditional", DisplayName: "Traditional Chinese (中文繁體)", Code: "zh-tw"},
	{Name: "Korean", DisplayName: "Korean (한국어)", Code: "ko"},
	{Name: "Portuguese", DisplayName: "Portuguese (Português)", Code: "pt"},
	{Name: "Russian", DisplayName: "Russian (Русский)", Code: "ru"},
}

// Languages returns the selectable target languages.
func Languages() []LanguageOption {
	out := make([]LanguageOption, len(languageOptions))
	copy(out, languageOptions)
	return out
}

// DisplayLanguage maps a language name to the phrase the model is asked to
// translate into. Unmapped names pass through unchanged.
func DisplayLanguage(name string) string {
	for _, opt := range languageOptions {
		if opt.Name == name {
			return opt.DisplayName
		}
	}
	return name
}

// ResolveLanguage maps a URL language parameter to a language name. It
// accepts short codes ("zh-cn"), option names in any case, and BCP 47 tags.
func ResolveLanguage(param string) (string, bool) {
	p := strings.ToLower(strings.TrimSpace(param))
	if p == "" {
		return "", false
	}

	for _, opt := range languageOptions {
		if opt.Code == p || strings.ToLower(opt.Name) == p {
			return opt.Name, true
		}
	}

	tag, err := language.Parse(p)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}

	if base.String() == "zh" {
		if script, _ := tag.Script(); script.String() == "Hant" {
			return "Chinese Traditional", true
		}
		return "Chinese Simplified", true
	}
	for _, opt := range languageOptions {
		if opt.Code == base.String() {
			return opt.Name, true
		}
	}

	if name := display.English.Languages().Name(base); name != "" {
		return name, true
	}
	return "", false
}

// IsChinese reports whether the language name targets a Chinese script,
// which requires pinyin romanization.
func IsChinese(name string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(name)), "chinese")
}
