package config

const (
	defaultConfigPath        = "~/.config/zhbatch/config.toml"
	defaultStateDir          = "~/.local/share/zhbatch"
	defaultLogDir            = "~/.local/share/zhbatch/logs"
	defaultVocabularyFile    = "~/.config/zhbatch/vocabulary.toml"
	defaultDirection         = "s2t"
	defaultAcceptedExtension = ".txt"
	defaultEncoding          = "auto"
	defaultOperation         = "copy"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:       defaultStateDir,
			LogDir:         defaultLogDir,
			VocabularyFile: defaultVocabularyFile,
		},
		Content: Content{
			Direction:         defaultDirection,
			AcceptedExtension: defaultAcceptedExtension,
			Encoding:          defaultEncoding,
			VocabularyEnabled: true,
			DetectLanguage:    true,
		},
		Filename: Filename{
			Direction:      defaultDirection,
			Operation:      defaultOperation,
			DetectLanguage: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
