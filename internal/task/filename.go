package task

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"zhbatch/internal/convert"
	"zhbatch/internal/filelist"
	"zhbatch/internal/fileutil"
	"zhbatch/internal/logging"
	"zhbatch/internal/naming"
)

type filenameProcessor struct {
	params     FilenameParams
	fs         fileutil.FS
	dispatcher *convert.Dispatcher
	classifier convert.Classifier
	logger     *slog.Logger
}

func (p *filenameProcessor) process(index int, path string) Outcome {
	logger := p.logger.With(logging.String(logging.FieldItemPath, path), logging.Int(logging.FieldItemIndex, index))

	if !p.fs.Exists(path) {
		return Outcome{Status: filelist.StatusFailedNotExist}
	}
	isDir, err := p.fs.IsDir(path)
	if err != nil {
		logging.WarnWithContext(logger, "stat failed", "item_stat_failed", logging.Error(err))
		return Outcome{Status: filelist.StatusFailedException, Err: err}
	}

	name := filepath.Base(path)
	base, ext := naming.Split(path, isDir)
	if !p.classifier.IsEligible(base) {
		return Outcome{Status: filelist.StatusSkippedNonTarget}
	}

	newBase, err := p.dispatcher.Name(base, p.params.Direction)
	if err != nil {
		logging.WarnWithContext(logger, "name conversion failed", "item_name_convert_failed", logging.Error(err))
		return Outcome{Status: filelist.StatusFailedException, Err: err}
	}
	if newBase+ext == name {
		return Outcome{Status: filelist.StatusSkippedUnchanged}
	}

	dest := naming.Resolve(p.fs.Exists, p.params.OutputFolder, newBase, ext)
	switch p.params.Operation {
	case OpMove:
		err = p.fs.Move(path, dest)
	case OpCopy:
		err = p.fs.Copy(path, dest)
	default:
		err = fmt.Errorf("unsupported operation %q", p.params.Operation)
	}
	if err != nil {
		logging.WarnWithContext(logger, string(p.params.Operation)+" failed", "item_"+string(p.params.Operation)+"_failed",
			logging.Error(err), logging.String("destination", dest))
		return Outcome{Status: filelist.StatusFailedException, Err: err}
	}
	return Outcome{Status: filelist.StatusConverted, NewPath: dest}
}
