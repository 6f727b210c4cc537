package logging

// Config is the `logging` section of onair.yml.
type Config struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Can be overridden by the ONAIR_LOG_LEVEL environment variable.
	Level string `yaml:"level"`

	// ReportCaller includes file, line and function in the output.
	// Can be enabled with ONAIR_LOG_CALLER=true.
	ReportCaller bool `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	// Enabled defaults to true; the daemon log file backs `onair logs`.
	Enabled *bool `yaml:"enabled"`
	// Path overrides the default state-dir log file.
	Path string `yaml:"path"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr is "auto" (default), "always", or "never".
	StructuredToStderr string `yaml:"structured_to_stderr"`
}

func (c FileSinkConfig) enabled() bool {
	return c.Enabled == nil || *c.Enabled
}
