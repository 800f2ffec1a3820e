package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1
	code3   string   // ISO 639-3 as reported by the detector
	alt3    []string // other 3-letter forms (ISO 639-2/B, macrolanguage)
	display string
	chinese bool
}

var languages = []entry{
	{"zh", "cmn", []string{"zho", "chi"}, "Chinese (Mandarin)", true},
	{"zh", "yue", nil, "Chinese (Cantonese)", true},
	{"zh", "wuu", nil, "Chinese (Wu)", true},
	{"ja", "jpn", nil, "Japanese", false},
	{"ko", "kor", nil, "Korean", false},
	{"en", "eng", nil, "English", false},
	{"es", "spa", nil, "Spanish", false},
	{"fr", "fra", []string{"fre"}, "French", false},
	{"de", "deu", []string{"ger"}, "German", false},
	{"ru", "rus", nil, "Russian", false},
	{"vi", "vie", nil, "Vietnamese", false},
	{"th", "tha", nil, "Thai", false},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		if _, ok := byCode2[e.code2]; !ok {
			byCode2[e.code2] = e
		}
		byCode3[e.code3] = e
		for _, alt := range e.alt3 {
			byCode3[alt] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	return byCode2[code]
}

// ToISO2 converts a recognized code to ISO 639-1. Unknown 2-letter codes
// pass through; anything else yields "".
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a readable name, "Unknown" for empty input, or the
// uppercased code when unrecognized.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsChinese reports whether code names a Chinese language.
func IsChinese(code string) bool {
	e := lookup(code)
	return e != nil && e.chinese
}
