package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrEmptyTerm reports a vocabulary pair with a blank source term.
var ErrEmptyTerm = errors.New("vocabulary term is empty")

// Pair maps a simplified source term to its traditional target term.
type Pair struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// Vocabulary is an insertion-ordered overlay keyed by Source.
type Vocabulary struct {
	pairs []Pair
}

// NewVocabulary builds a vocabulary; a repeated source replaces the earlier
// target without moving it.
func NewVocabulary(pairs ...Pair) *Vocabulary {
	v := &Vocabulary{}
	for _, pair := range pairs {
		_ = v.Set(pair.Source, pair.Target)
	}
	return v
}

// Set adds or replaces a pair. Replacing keeps the original position.
func (v *Vocabulary) Set(source, target string) error {
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)
	if source == "" {
		return ErrEmptyTerm
	}
	for i := range v.pairs {
		if v.pairs[i].Source == source {
			v.pairs[i].Target = target
			return nil
		}
	}
	v.pairs = append(v.pairs, Pair{Source: source, Target: target})
	return nil
}

// Get returns the target for source.
func (v *Vocabulary) Get(source string) (string, bool) {
	if v == nil {
		return "", false
	}
	for _, pair := range v.pairs {
		if pair.Source == source {
			return pair.Target, true
		}
	}
	return "", false
}

// Delete removes source and reports whether it existed.
func (v *Vocabulary) Delete(source string) bool {
	source = strings.TrimSpace(source)
	for i, pair := range v.pairs {
		if pair.Source == source {
			v.pairs = append(v.pairs[:i:i], v.pairs[i+1:]...)
			return true
		}
	}
	return false
}

// Pairs returns the pairs in insertion order.
func (v *Vocabulary) Pairs() []Pair {
	if v == nil {
		return nil
	}
	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)
	return out
}

// Len returns the number of pairs.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.pairs)
}

// Clone returns an independent copy.
func (v *Vocabulary) Clone() *Vocabulary {
	if v == nil {
		return &Vocabulary{}
	}
	return &Vocabulary{pairs: v.Pairs()}
}

type vocabularyFile struct {
	Term []Pair `toml:"term"`
}

// LoadVocabulary reads a vocabulary file. A missing file yields an empty
// vocabulary.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Vocabulary{}, nil
		}
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	var file vocabularyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	v := &Vocabulary{}
	for _, pair := range file.Term {
		if err := v.Set(pair.Source, pair.Target); err != nil {
			return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
		}
	}
	return v, nil
}

// SaveVocabulary writes v to path, replacing the file atomically.
func SaveVocabulary(path string, v *Vocabulary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create vocabulary directory: %w", err)
	}
	data, err := toml.Marshal(vocabularyFile{Term: v.Pairs()})
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vocabulary-*.toml")
	if err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write vocabulary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write vocabulary: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}
