// Package config provides configuration management for sift.
package config

// Default configuration values for sift.
const (
	// DefaultPath is the directory analyzed when none is given and no
	// terminal is available to ask for one.
	DefaultPath = "."

	// DefaultOutput is the report format.
	DefaultOutput = "plain"

	// DefaultOutDir is where charts and side reports are written.
	DefaultOutDir = "."

	// DefaultChartWidth and DefaultChartHeight size the histogram and CDF.
	DefaultChartWidth  = 1200
	DefaultChartHeight = 600

	// DefaultBins is the number of log-spaced histogram bins.
	DefaultBins = 50

	// DefaultLogLevel is the console log level.
	DefaultLogLevel = "warn"

	// DefaultLogFormat is the console log format.
	DefaultLogFormat = "text"

	// ConfigFileName is the config file looked up in ConfigDir.
	ConfigFileName = "config.yaml"
)
