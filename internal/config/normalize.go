package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeContent()
	c.normalizeFilename()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if c.Paths.OutputDir == "" {
		if value, ok := os.LookupEnv("ZHBATCH_OUTPUT_DIR"); ok {
			c.Paths.OutputDir = strings.TrimSpace(value)
		}
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.VocabularyFile) == "" {
		c.Paths.VocabularyFile = defaultVocabularyFile
	}
	if c.Paths.VocabularyFile, err = expandPath(c.Paths.VocabularyFile); err != nil {
		return fmt.Errorf("paths.vocabulary_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeContent() {
	c.Content.Direction = strings.ToLower(strings.TrimSpace(c.Content.Direction))
	if c.Content.Direction == "" {
		c.Content.Direction = defaultDirection
	}
	ext := strings.ToLower(strings.TrimSpace(c.Content.AcceptedExtension))
	if ext == "" {
		ext = defaultAcceptedExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Content.AcceptedExtension = ext
	c.Content.Encoding = strings.ToLower(strings.TrimSpace(c.Content.Encoding))
	if c.Content.Encoding == "" {
		c.Content.Encoding = defaultEncoding
	}
}

func (c *Config) normalizeFilename() {
	c.Filename.Direction = strings.ToLower(strings.TrimSpace(c.Filename.Direction))
	if c.Filename.Direction == "" {
		c.Filename.Direction = defaultDirection
	}
	c.Filename.Operation = strings.ToLower(strings.TrimSpace(c.Filename.Operation))
	if c.Filename.Operation == "" {
		c.Filename.Operation = defaultOperation
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("ZHBATCH_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
