package logging

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// Config defines the structure of the logging section in jsonlview.yml.
type Config struct {
	// Level is the minimum log level to output (e.g., "debug", "info", "warn", "error").
	// Can be overridden by the JSONLVIEW_LOG_LEVEL environment variable.
	Level string `yaml:"level" jsonschema:"description=Minimum log level,enum=trace,enum=debug,enum=info,enum=warn,enum=warning,enum=error,enum=fatal,enum=panic"`

	// ReportCaller, if true, includes the file, line, and function name in the log output.
	// Can be enabled with the JSONLVIEW_LOG_CALLER=true environment variable.
	ReportCaller bool `yaml:"report_caller" jsonschema:"description=Include file, line and function in log output"`

	// File configures logging to a file.
	File FileSinkConfig `yaml:"file" jsonschema:"description=File sink"`

	// Format configures the appearance of the log output.
	Format FormatConfig `yaml:"format" jsonschema:"description=Log output format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	// Enabled is a tri-state: unset keeps the default dated file under the
	// state directory, false turns file logging off.
	Enabled *bool `yaml:"enabled"`
	// Path is the full path to the log file.
	Path string `yaml:"path" jsonschema:"description=Full path to the log file"`
}

// Disabled reports whether file logging was switched off explicitly.
func (f FileSinkConfig) Disabled() bool {
	return f.Enabled != nil && !*f.Enabled
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset string `yaml:"preset" jsonschema:"enum=default,enum=simple,enum=json"`
	// DisableTimestamp disables the timestamp from the "default" and "simple" formats.
	DisableTimestamp bool `yaml:"disable_timestamp"`
	// DisableComponent disables the component name from the "default" and "simple" formats.
	DisableComponent bool `yaml:"disable_component"`
	// StructuredToStderr controls when structured logs are sent to stderr.
	// Can be "auto" (default), "always", or "never".
	StructuredToStderr string `yaml:"structured_to_stderr" jsonschema:"enum=auto,enum=always,enum=never"`
}
