package config

// LoggingConfig configures the slog handler shared by the CLI and `serve`
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stdout, stderr or file. Command output always goes to stdout, so
	// logging there is only sensible for `serve`.
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Adds the source file:line to every record
	IncludeCaller bool `mapstructure:"include_caller"`
}
