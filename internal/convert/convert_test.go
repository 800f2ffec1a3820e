package convert_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"zhbatch/internal/convert"
)

func replacerProvider(oldnew ...string) convert.Provider {
	r := strings.NewReplacer(oldnew...)
	return convert.ProviderFunc(func(s string) (string, error) { return r.Replace(s), nil })
}

func identity() convert.Provider {
	return convert.ProviderFunc(func(s string) (string, error) { return s, nil })
}

func TestApplyOverlayComposesInInsertionOrder(t *testing.T) {
	d := convert.NewDispatcher(convert.Providers{convert.S2T: identity(), convert.T2S: identity()})
	vocab := convert.NewVocabulary(
		convert.Pair{Source: "A", Target: "甲"},
		convert.Pair{Source: "B", Target: "乙"},
		convert.Pair{Source: "甲", Target: "丙"},
	)

	got, err := d.Apply("A B 甲", convert.S2T, vocab, true)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "丙 乙 丙" {
		t.Fatalf("expected later pair to rewrite earlier output, got %q", got)
	}

	got, _ = d.Apply("A B 甲", convert.S2T, vocab, false)
	if got != "A B 甲" {
		t.Fatalf("disabled overlay should leave base output, got %q", got)
	}
}

func TestApplyOverlaySearchesConvertedTerm(t *testing.T) {
	s2t := replacerProvider("头", "頭", "发", "髮")
	t2s := replacerProvider("頭", "头", "髮", "发")
	d := convert.NewDispatcher(convert.Providers{convert.S2T: s2t, convert.T2S: t2s})

	vocab := convert.NewVocabulary(convert.Pair{Source: "头发", Target: "秀髮"})
	got, err := d.Apply("剪头发", convert.S2T, vocab, true)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "剪秀髮" {
		t.Fatalf("unexpected s2t overlay result %q", got)
	}

	reverse := convert.NewVocabulary(convert.Pair{Source: "甲乙", Target: "頭髮"})
	got, err = d.Apply("頭髮", convert.T2S, reverse, true)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got != "甲乙" {
		t.Fatalf("unexpected t2s overlay result %q", got)
	}
}

func TestApplyProviderFailureBecomesText(t *testing.T) {
	failing := convert.ProviderFunc(func(string) (string, error) { return "", errors.New("boom") })
	d := convert.NewDispatcher(convert.Providers{convert.S2T: failing})

	got, err := d.Apply("文本", convert.S2T, nil, true)
	if got != "Conversion error: boom" {
		t.Fatalf("unexpected output %q", got)
	}
	if !errors.Is(err, convert.ErrTransform) {
		t.Fatalf("expected ErrTransform, got %v", err)
	}

	if _, err := d.Name("x", convert.T2S); !errors.Is(err, convert.ErrTransform) {
		t.Fatalf("expected missing provider to fail with ErrTransform, got %v", err)
	}
}

func TestVocabularySetKeepsPosition(t *testing.T) {
	v := convert.NewVocabulary()
	for _, pair := range [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}} {
		if err := v.Set(pair[0], pair[1]); err != nil {
			t.Fatalf("Set(%q) failed: %v", pair[0], err)
		}
	}
	if err := v.Set("a", "9"); err != nil {
		t.Fatalf("Set replace failed: %v", err)
	}
	want := []convert.Pair{{"a", "9"}, {"b", "2"}, {"c", "3"}}
	if got := v.Pairs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected pairs %v", got)
	}
	clone := v.Clone()
	if !v.Delete("b") || v.Delete("b") {
		t.Fatal("Delete should report presence once")
	}
	if clone.Len() != 3 {
		t.Fatalf("clone changed with original: %d", clone.Len())
	}
	if err := v.Set("  ", "x"); !errors.Is(err, convert.ErrEmptyTerm) {
		t.Fatalf("expected ErrEmptyTerm, got %v", err)
	}
}

func TestVocabularyFilePreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vocabulary.toml")

	empty, err := convert.LoadVocabulary(path)
	if err != nil || empty.Len() != 0 {
		t.Fatalf("missing file should load empty, got %d (%v)", empty.Len(), err)
	}

	v := convert.NewVocabulary(
		convert.Pair{Source: "软件", Target: "軟體"},
		convert.Pair{Source: "网络", Target: "網路"},
		convert.Pair{Source: "信息", Target: "資訊"},
	)
	if err := convert.SaveVocabulary(path, v); err != nil {
		t.Fatalf("SaveVocabulary failed: %v", err)
	}
	loaded, err := convert.LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Pairs(), v.Pairs()) {
		t.Fatalf("order not preserved: %v", loaded.Pairs())
	}
}

func TestHanClassifier(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"这是一段简体中文文本", true},
		{"Plain English text only", false},
		{"これは日本語の文章です。ひらがなとカタカナを含みます。", false},
	}
	c := convert.HanClassifier{}
	for _, tc := range tests {
		if got := c.IsEligible(tc.text); got != tc.want {
			t.Errorf("IsEligible(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
	if !convert.ClassifierFor(false).IsEligible("Plain English") {
		t.Fatal("AllowAll should accept everything")
	}
}

func TestParseDirection(t *testing.T) {
	dir, err := convert.ParseDirection(" T2S ")
	if err != nil || dir != convert.T2S || dir.Reverse() != convert.S2T {
		t.Fatalf("unexpected direction %q (%v)", dir, err)
	}
	if _, err := convert.ParseDirection("x"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestOpenCCProviders(t *testing.T) {
	providers, err := convert.NewOpenCC()
	if err != nil {
		t.Fatalf("NewOpenCC failed: %v", err)
	}
	d := convert.NewDispatcher(providers)
	got, err := d.Apply("汉字", convert.S2T, nil, false)
	if err != nil || got != "漢字" {
		t.Fatalf("s2t = %q (%v)", got, err)
	}
	got, err = d.Name("漢字", convert.T2S)
	if err != nil || got != "汉字" {
		t.Fatalf("t2s = %q (%v)", got, err)
	}
}
