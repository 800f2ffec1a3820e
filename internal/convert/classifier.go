package convert

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Classifier decides whether text is Chinese content worth converting.
type Classifier interface {
	IsEligible(text string) bool
}

// AllowAll accepts every input; used when language detection is off.
type AllowAll struct{}

// IsEligible always returns true.
func (AllowAll) IsEligible(string) bool { return true }

// HanClassifier rejects Japanese text and text without any CJK unified
// ideograph. Empty text is accepted.
type HanClassifier struct{}

// IsEligible implements Classifier.
func (HanClassifier) IsEligible(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	if whatlanggo.Detect(text).Lang == whatlanggo.Jpn {
		return false
	}
	return ContainsHan(text)
}

// ContainsHan reports whether text has a rune in U+4E00..U+9FFF.
func ContainsHan(text string) bool {
	for _, r := range text {
		if r >= 0x4e00 && r <= 0x9fff {
			return true
		}
	}
	return false
}

// ClassifierFor returns HanClassifier when detect is set and AllowAll
// otherwise.
func ClassifierFor(detect bool) Classifier {
	if detect {
		return HanClassifier{}
	}
	return AllowAll{}
}

// DetectLanguage reports the ISO 639-3 code and confidence whatlanggo
// assigns to text.
func DetectLanguage(text string) (string, float64) {
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6393(), info.Confidence
}
