package textenc

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// PrefixSize is the number of leading bytes sampled for detection.
const PrefixSize = 100 * 1024

// MinConfidence is the detector confidence (0-100) a guess must exceed.
const MinConfidence = 80

// ErrEncodingUndetermined reports that no encoding could be chosen.
var ErrEncodingUndetermined = errors.New("encoding undetermined")

// Source records how an encoding was chosen.
type Source string

const (
	SourceForced   Source = "forced"
	SourceDetected Source = "detected"
	SourceFallback Source = "fallback"
)

// Resolved is the outcome of encoding resolution.
type Resolved struct {
	Name       string
	Encoding   encoding.Encoding
	Source     Source
	Confidence int
}

// Auto is the forced-encoding value that requests detection.
const Auto = "auto"

var fallbackCandidates = []string{"utf-8", "utf-8-sig", "gbk", "gb18030", "big5", "cp936"}

var named = map[string]encoding.Encoding{
	"utf-8":     unicode.UTF8,
	"utf8":      unicode.UTF8,
	"utf-8-sig": unicode.UTF8BOM,
	"gbk":       simplifiedchinese.GBK,
	"cp936":     simplifiedchinese.GBK,
	"gb2312":    simplifiedchinese.HZGB2312,
	"gb18030":   simplifiedchinese.GB18030,
	"gb-18030":  simplifiedchinese.GB18030,
	"big5":      traditionalchinese.Big5,
	"utf-16le":  unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be":  unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
}

// Names lists the encodings offered for forcing, in display order.
func Names() []string {
	return []string{"utf-8", "utf-8-sig", "gbk", "gb18030", "big5", "cp936", "shift_jis", "euc-kr", "utf-16le", "utf-16be", "windows-1252"}
}

// Lookup maps an encoding name to an encoding.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("%w: empty encoding name", ErrEncodingUndetermined)
	}
	if enc, ok := named[key]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", ErrEncodingUndetermined, name)
	}
	return enc, nil
}

// Detector guesses an encoding with a confidence between 0 and 100.
type Detector interface {
	Detect(sample []byte) (name string, confidence int, err error)
}

type chardetDetector struct {
	detector *chardet.Detector
}

// NewDetector returns the statistical detector backed by chardet.
func NewDetector() Detector {
	return chardetDetector{detector: chardet.NewTextDetector()}
}

func (d chardetDetector) Detect(sample []byte) (string, int, error) {
	result, err := d.detector.DetectBest(sample)
	if err != nil {
		return "", 0, err
	}
	return result.Charset, result.Confidence, nil
}

// Resolver chooses encodings for byte samples.
type Resolver struct {
	detector Detector
}

// NewResolver returns a resolver using detector; nil selects chardet.
func NewResolver(detector Detector) *Resolver {
	if detector == nil {
		detector = NewDetector()
	}
	return &Resolver{detector: detector}
}

// Resolve picks the encoding for prefix. A forced name other than "" or
// "auto" is used unconditionally.
func (r *Resolver) Resolve(prefix []byte, forced string) (Resolved, error) {
	if name := strings.ToLower(strings.TrimSpace(forced)); name != "" && name != Auto {
		enc, err := Lookup(name)
		if err != nil {
			return Resolved{}, err
		}
		return Resolved{Name: name, Encoding: enc, Source: SourceForced}, nil
	}

	if r.detector != nil && len(prefix) > 0 {
		if name, confidence, err := r.detector.Detect(prefix); err == nil && confidence > MinConfidence {
			if enc, lookupErr := Lookup(name); lookupErr == nil {
				return Resolved{
					Name:       strings.ToLower(name),
					Encoding:   enc,
					Source:     SourceDetected,
					Confidence: confidence,
				}, nil
			}
		}
	}

	truncated := len(prefix) >= PrefixSize
	for _, name := range fallbackCandidates {
		enc := named[name]
		if decodesStrictly(enc, prefix, truncated) {
			return Resolved{Name: name, Encoding: enc, Source: SourceFallback}, nil
		}
	}
	return Resolved{}, fmt.Errorf("%w: no candidate decodes the sample", ErrEncodingUndetermined)
}

// decodesStrictly reports whether enc decodes sample without substitution.
// When the sample was cut from a longer file, up to three trailing bytes of
// a split multibyte sequence are tolerated.
func decodesStrictly(enc encoding.Encoding, sample []byte, truncated bool) bool {
	trims := 0
	if truncated {
		trims = utf8.UTFMax - 1
	}
	for cut := 0; cut <= trims && cut <= len(sample); cut++ {
		if decodesClean(enc, sample[:len(sample)-cut]) {
			return true
		}
	}
	return false
}

func decodesClean(enc encoding.Encoding, sample []byte) bool {
	if enc == unicode.UTF8 || enc == unicode.UTF8BOM {
		return utf8.Valid(sample)
	}
	decoded, err := enc.NewDecoder().Bytes(sample)
	if err != nil {
		return false
	}
	return !containsReplacement(decoded)
}

func containsReplacement(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError {
			return true
		}
		b = b[size:]
	}
	return false
}

// Decode converts data to a string using the resolved encoding, replacing
// undecodable bytes with U+FFFD. It never fails.
func Decode(data []byte, resolved Resolved) string {
	enc := resolved.Encoding
	if enc == nil {
		enc = unicode.UTF8
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return strings.ToValidUTF8(string(decoded), string(utf8.RuneError))
}
