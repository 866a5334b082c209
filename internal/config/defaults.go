package config

const (
	defaultLogFileName = "plexsubs.log"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// DefaultTextCodecs lists the codecs written as UTF-8 text with LF line endings.
// Every other codec is copied byte for byte.
var DefaultTextCodecs = []string{"srt", "ass", "ssa"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Extract: Extract{
			TextCodecs: append([]string(nil), DefaultTextCodecs...),
		},
		Logging: Logging{
			Enabled: true,
			Format:  defaultLogFormat,
			Level:   defaultLogLevel,
		},
	}
}
