package config

const (
	defaultStateDir          = "~/.local/share/unscramble"
	defaultLexicalThreshold  = 0.2
	defaultSemanticThreshold = 0.5
	defaultStopWordLanguage  = "english"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultVectorStoreName   = "vectors.db"
	defaultConfigLocation    = "~/.config/unscramble/config.toml"
	projectConfigName        = "unscramble.toml"

	envVectorsPath = "UNSCRAMBLE_VECTORS_PATH"
	envStateDir    = "UNSCRAMBLE_STATE_DIR"
	envLogLevel    = "UNSCRAMBLE_LOG_LEVEL"
)

func defaultExcludes() []string {
	return []string{".DS_Store", "*.part", "*.crdownload", "Thumbs.db"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Sort: Sort{
			LexicalThreshold:  defaultLexicalThreshold,
			SemanticThreshold: defaultSemanticThreshold,
			StopWordLanguage:  defaultStopWordLanguage,
			Exclude:           defaultExcludes(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
