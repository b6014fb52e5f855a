package constants

const (
	AppName            = "dewy"
	DefaultKeyringUser = "gemini-api-key"
	DefaultConfigPath  = "~/.config/dewy/dewy.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dewy-"

	// GeminiModel is the default model used for product classification
	GeminiModel = "gemini-3-flash-preview"
)
