package config

// Prefixes for run-level log messages
const (
	LogInfo  = "[cliffwalk] [INFO]"
	LogWarn  = "[cliffwalk] [WARN]"
	LogFatal = "[cliffwalk] [FATAL]"
)
