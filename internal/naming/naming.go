package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"zhbatch/internal/textutil"
)

// ErrNamingFormat reports an unusable output-name pattern.
var ErrNamingFormat = errors.New("invalid name pattern")

// FallbackSuffix is appended to the original name when a pattern fails.
const FallbackSuffix = "_naming_error"

// Resolve returns dir/base+ext, or the first dir/base(N)+ext with N >= 1
// for which exists reports false.
func Resolve(exists func(string) bool, dir, base, ext string) string {
	candidate := filepath.Join(dir, base+ext)
	for n := 1; exists(candidate); n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s(%d)%s", base, n, ext))
	}
	return candidate
}

// Split separates a path's final element into base name and extension.
// Directories keep their whole name as the base.
func Split(path string, isDir bool) (string, string) {
	name := filepath.Base(path)
	if isDir {
		return name, ""
	}
	ext := filepath.Ext(name)
	if ext == name {
		// dotfiles such as ".profile" have no extension
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// FormatPattern expands {original_name} and {index} in pattern. The index
// accepts an optional width spec such as {index:03d}. "{{" and "}}" yield
// literal braces.
func FormatPattern(pattern, original string, index int) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' in %q", ErrNamingFormat, pattern)
			}
			field := pattern[i+1 : i+1+end]
			value, err := expandField(field, original, index)
			if err != nil {
				return "", err
			}
			b.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' in %q", ErrNamingFormat, pattern)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func expandField(field, original string, index int) (string, error) {
	name, spec, _ := strings.Cut(field, ":")
	switch name {
	case "original_name":
		if spec != "" {
			return "", fmt.Errorf("%w: format spec not supported for original_name", ErrNamingFormat)
		}
		return original, nil
	case "index":
		return formatIndex(index, spec)
	default:
		return "", fmt.Errorf("%w: unknown placeholder {%s}", ErrNamingFormat, field)
	}
}

func formatIndex(index int, spec string) (string, error) {
	spec = strings.TrimSuffix(spec, "d")
	if spec == "" {
		return strconv.Itoa(index), nil
	}
	pad := " "
	if strings.HasPrefix(spec, "0") {
		pad = "0"
	}
	width, err := strconv.Atoi(spec)
	if err != nil || width < 0 {
		return "", fmt.Errorf("%w: bad index width %q", ErrNamingFormat, spec)
	}
	digits := strconv.Itoa(index)
	if len(digits) >= width {
		return digits, nil
	}
	return strings.Repeat(pad, width-len(digits)) + digits, nil
}

// OutputBase returns the base name for an output file. An empty pattern
// keeps original. A failing pattern falls back to original+"_naming_error"
// and returns the formatting error for logging.
func OutputBase(pattern, original string, index int) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return original, nil
	}
	name, err := FormatPattern(pattern, original, index)
	if err != nil {
		return original + FallbackSuffix, err
	}
	name = textutil.SanitizeFileName(name)
	if name == "" {
		return original + FallbackSuffix, fmt.Errorf("%w: pattern %q produced an empty name", ErrNamingFormat, pattern)
	}
	return name, nil
}
