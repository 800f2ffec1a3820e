package textenc_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"zhbatch/internal/textenc"
)

type fakeDetector struct {
	name       string
	confidence int
	err        error
	calls      int
}

func (f *fakeDetector) Detect([]byte) (string, int, error) {
	f.calls++
	return f.name, f.confidence, f.err
}

var gbkSample = []byte{0xd6, 0xd0, 0xce, 0xc4} // 中文

func TestResolveForcedWins(t *testing.T) {
	detector := &fakeDetector{name: "UTF-8", confidence: 100}
	resolved, err := textenc.NewResolver(detector).Resolve([]byte("plain"), " GBK ")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.Name != "gbk" || resolved.Source != textenc.SourceForced {
		t.Fatalf("unexpected resolution %+v", resolved)
	}
	if detector.calls != 0 {
		t.Fatal("detector should not run when forced")
	}
}

func TestResolveUnknownForcedFails(t *testing.T) {
	_, err := textenc.NewResolver(&fakeDetector{}).Resolve([]byte("x"), "klingon-8")
	if !errors.Is(err, textenc.ErrEncodingUndetermined) {
		t.Fatalf("expected ErrEncodingUndetermined, got %v", err)
	}
}

func TestResolveConfidenceThreshold(t *testing.T) {
	tests := []struct {
		name       string
		detected   string
		confidence int
		sample     []byte
		want       string
		source     textenc.Source
	}{
		{"confident guess accepted", "Big5", 95, []byte("hello"), "big5", textenc.SourceDetected},
		{"threshold is exclusive", "Big5", 80, []byte("hello"), "utf-8", textenc.SourceFallback},
		{"unknown charset falls back", "IBM420_rtl", 99, gbkSample, "gbk", textenc.SourceFallback},
		{"gb-18030 name mapped", "GB-18030", 100, gbkSample, "gb-18030", textenc.SourceDetected},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := textenc.NewResolver(&fakeDetector{name: tc.detected, confidence: tc.confidence})
			resolved, err := resolver.Resolve(tc.sample, textenc.Auto)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if resolved.Name != tc.want || resolved.Source != tc.source {
				t.Fatalf("got %q/%s, want %q/%s", resolved.Name, resolved.Source, tc.want, tc.source)
			}
		})
	}
}

func TestResolveFallbackOrder(t *testing.T) {
	resolver := textenc.NewResolver(&fakeDetector{err: errors.New("no guess")})

	resolved, err := resolver.Resolve([]byte("中文"), "")
	if err != nil || resolved.Name != "utf-8" {
		t.Fatalf("expected utf-8, got %+v (%v)", resolved, err)
	}
	resolved, err = resolver.Resolve(gbkSample, "")
	if err != nil || resolved.Name != "gbk" {
		t.Fatalf("expected gbk, got %+v (%v)", resolved, err)
	}
	_, err = resolver.Resolve([]byte{0xff, 0xff}, "")
	if !errors.Is(err, textenc.ErrEncodingUndetermined) {
		t.Fatalf("expected undetermined, got %v", err)
	}
}

func TestResolveToleratesTruncatedPrefix(t *testing.T) {
	full := []byte(strings.Repeat("中", textenc.PrefixSize/3+1))
	prefix := full[:textenc.PrefixSize]
	resolver := textenc.NewResolver(&fakeDetector{})
	resolved, err := resolver.Resolve(prefix, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.Name != "utf-8" {
		t.Fatalf("expected utf-8 for split sequence, got %q", resolved.Name)
	}
}

func TestResolveWithChardet(t *testing.T) {
	sample := []byte(strings.Repeat("这是一个用于检测编码的中文句子。", 40))
	resolved, err := textenc.NewResolver(nil).Resolve(sample, textenc.Auto)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got := textenc.Decode(sample, resolved); got != string(sample) {
		t.Fatalf("round trip mismatch using %q", resolved.Name)
	}
}

func TestDecodeIsPermissive(t *testing.T) {
	utf8Resolved, err := textenc.NewResolver(&fakeDetector{}).Resolve([]byte("a"), "utf-8")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	got := textenc.Decode([]byte{'a', 0xff, 'b'}, utf8Resolved)
	if got != "a�b" {
		t.Fatalf("expected replacement character, got %q", got)
	}

	sig, err := textenc.NewResolver(nil).Resolve(nil, "utf-8-sig")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	withBOM := append([]byte{0xef, 0xbb, 0xbf}, []byte("中文")...)
	if got := textenc.Decode(withBOM, sig); got != "中文" {
		t.Fatalf("expected signature stripped, got %q", got)
	}

	gbk, _ := textenc.Lookup("gbk")
	if got := textenc.Decode(gbkSample, textenc.Resolved{Name: "gbk", Encoding: gbk}); got != "中文" {
		t.Fatalf("unexpected gbk decode %q", got)
	}
	if got := textenc.Decode(bytes.Repeat([]byte("x"), 3), textenc.Resolved{}); got != "xxx" {
		t.Fatalf("zero Resolved should decode as utf-8, got %q", got)
	}
}

func TestNamesAreResolvable(t *testing.T) {
	for _, name := range textenc.Names() {
		if _, err := textenc.Lookup(name); err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
	}
}
