package task

import (
	"fmt"
	"strings"

	"zhbatch/internal/convert"
)

// Kind names the two task types.
type Kind string

const (
	KindContent  Kind = "content"
	KindFilename Kind = "filename"
)

// Operation is what a filename task does with each item.
type Operation string

const (
	OpMove Operation = "move"
	OpCopy Operation = "copy"
)

// ParseOperation normalizes an operation name.
func ParseOperation(value string) (Operation, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(value))) {
	case OpMove:
		return OpMove, nil
	case OpCopy:
		return OpCopy, nil
	default:
		return "", fmt.Errorf("unknown operation %q (want move or copy)", value)
	}
}

// DefaultAcceptedExtension is used when ContentParams leaves it empty.
const DefaultAcceptedExtension = ".txt"

// ContentParams configures a content task.
type ContentParams struct {
	Direction         convert.Direction
	Vocabulary        *convert.Vocabulary
	VocabularyEnabled bool
	OutputFolder      string
	// Encoding forces a decoder; "" or "auto" detects.
	Encoding          string
	NamePattern       string
	AcceptedExtension string
	DetectLanguage    bool
}

func (p ContentParams) snapshot() ContentParams {
	out := p
	out.Vocabulary = p.Vocabulary.Clone()
	out.AcceptedExtension = normalizeExtension(p.AcceptedExtension)
	out.OutputFolder = strings.TrimSpace(p.OutputFolder)
	return out
}

// FilenameParams configures a filename task.
type FilenameParams struct {
	Direction      convert.Direction
	OutputFolder   string
	Operation      Operation
	DetectLanguage bool
}

func (p FilenameParams) snapshot() FilenameParams {
	out := p
	out.OutputFolder = strings.TrimSpace(p.OutputFolder)
	return out
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return DefaultAcceptedExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
