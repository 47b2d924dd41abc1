package logger

// SetupLogger installs the default logger used when a context carries none.
func SetupLogger(logLevel LogLevel, logJSON, logSource bool) {
	Init(&Config{
		Level:      logLevel,
		Output:     DefaultConfig().Output,
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	})
}
