package locale

// Info is a supported locale.
type Info struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

var fallback = []Info{
	{"en-US", "English (United States)"},
	{"en-GB", "English (United Kingdom)"},
	{"en-AU", "English (Australia)"},
	{"en-CA", "English (Canada)"},
	{"en-IN", "English (India)"},
	{"es-ES", "Spanish (Spain)"},
	{"es-MX", "Spanish (Mexico)"},
	{"fr-FR", "French (France)"},
	{"fr-CA", "French (Canada)"},
	{"de-DE", "German (Germany)"},
	{"it-IT", "Italian (Italy)"},
	{"pt-BR", "Portuguese (Brazil)"},
	{"pt-PT", "Portuguese (Portugal)"},
	{"ja-JP", "Japanese (Japan)"},
	{"ko-KR", "Korean (Korea)"},
	{"zh-CN", "Chinese (Mandarin, Simplified)"},
	{"zh-HK", "Chinese (Cantonese, Traditional)"},
	{"zh-TW", "Chinese (Taiwanese Mandarin)"},
	{"nl-NL", "Dutch (Netherlands)"},
	{"ru-RU", "Russian (Russia)"},
	{"ar-SA", "Arabic (Saudi Arabia)"},
	{"hi-IN", "Hindi (India)"},
	{"sv-SE", "Swedish (Sweden)"},
	{"da-DK", "Danish (Denmark)"},
	{"fi-FI", "Finnish (Finland)"},
	{"no-NO", "Norwegian (Norway)"},
	{"pl-PL", "Polish (Poland)"},
	{"tr-TR", "Turkish (Turkey)"},
	{"th-TH", "Thai (Thailand)"},
	{"id-ID", "Indonesian (Indonesia)"},
}

// Fallback returns the common locales served when the platform is
// unavailable.
func Fallback() []Info {
	return append([]Info(nil), fallback...)
}

func fallbackName(code string) string {
	for _, l := range fallback {
		if l.Code == code {
			return l.Name
		}
	}
	return ""
}
