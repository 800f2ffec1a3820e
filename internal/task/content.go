package task

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"zhbatch/internal/convert"
	"zhbatch/internal/filelist"
	"zhbatch/internal/fileutil"
	"zhbatch/internal/logging"
	"zhbatch/internal/naming"
	"zhbatch/internal/textenc"
)

type contentProcessor struct {
	params     ContentParams
	fs         fileutil.FS
	resolver   *textenc.Resolver
	dispatcher *convert.Dispatcher
	classifier convert.Classifier
	logger     *slog.Logger

	preview *PreviewPair
}

func (p *contentProcessor) process(index int, path string) Outcome {
	logger := p.logger.With(logging.String(logging.FieldItemPath, path), logging.Int(logging.FieldItemIndex, index))

	if !strings.EqualFold(filepath.Ext(path), p.params.AcceptedExtension) {
		return Outcome{Status: filelist.StatusSkippedExtension}
	}

	prefix, err := p.fs.ReadPrefix(path, textenc.PrefixSize)
	if err != nil {
		logging.WarnWithContext(logger, "read failed", "item_read_failed",
			logging.Error(err), logging.String(logging.FieldErrorHint, "check the file exists and is readable"))
		return Outcome{Status: filelist.StatusFailedRead, Err: err}
	}
	resolved, err := p.resolver.Resolve(prefix, p.params.Encoding)
	if err != nil {
		logging.WarnWithContext(logger, "encoding undetermined", "item_encoding_failed",
			logging.Error(err), logging.String(logging.FieldErrorHint, "force an encoding with --encoding"))
		return Outcome{Status: filelist.StatusFailedRead, Err: err}
	}
	data, err := p.fs.ReadFile(path)
	if err != nil {
		logging.WarnWithContext(logger, "read failed", "item_read_failed", logging.Error(err))
		return Outcome{Status: filelist.StatusFailedRead, Err: err}
	}
	original := textenc.Decode(data, resolved)
	logger.Debug("decoded", logging.String("encoding", resolved.Name), logging.String("encoding_source", string(resolved.Source)))

	if !p.classifier.IsEligible(original) {
		return Outcome{Status: filelist.StatusSkippedNonTarget}
	}

	converted, err := p.dispatcher.Apply(original, p.params.Direction, p.params.Vocabulary, p.params.VocabularyEnabled)
	if err != nil {
		logging.WarnWithContext(logger, "conversion failed; writing error text", "item_transform_failed", logging.Error(err))
	}

	base, ext := naming.Split(path, false)
	outBase, err := naming.OutputBase(p.params.NamePattern, base, index)
	if err != nil {
		logging.WarnWithContext(logger, "name pattern failed; using fallback name", "item_naming_failed",
			logging.Error(err), logging.String("fallback", outBase))
	}
	outBase, err = p.dispatcher.Name(outBase, p.params.Direction)
	if err != nil {
		logging.WarnWithContext(logger, "name conversion failed", "item_name_convert_failed", logging.Error(err))
		return Outcome{Status: filelist.StatusFailedException, Err: err}
	}

	dest := naming.Resolve(p.fs.Exists, p.params.OutputFolder, outBase, ext)
	if err := p.fs.WriteFile(dest, []byte(converted)); err != nil {
		logging.WarnWithContext(logger, "write failed", "item_write_failed",
			logging.Error(err), logging.String(logging.FieldErrorHint, "check output folder permissions and free space"))
		return Outcome{Status: filelist.StatusFailedException, Err: fmt.Errorf("write %s: %w", dest, err)}
	}

	if p.preview == nil {
		p.preview = &PreviewPair{Path: path, Original: original, Converted: converted}
	}
	return Outcome{Status: filelist.StatusConverted, NewPath: dest}
}
