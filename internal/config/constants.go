package config

const (
	// ConfigPathEnvVar overrides config discovery when set
	ConfigPathEnvVar = "RENOVATE_CONFIG_PATH"

	// Notification Defaults
	DefaultNotificationUsername      = "F1O PS Bot"
	DefaultNotificationAuthorName    = "F1O PS Bot"
	DefaultNotificationUpdateMessage = "Es gibt ein Update zu F1 22!"

	// Orbis (PlayStation 4) Defaults
	DefaultOrbisAPIBaseURL      = "https://orbispatches.com"
	DefaultOrbisPlatformColor   = "00439C"
	DefaultOrbisPlatformLogoURL = "https://i.imgur.com/ccNqLcb.png"

	// HTTP Client Defaults
	DefaultHTTPTimeoutSeconds    = 30
	DefaultHTTPRetryDelaySeconds = 10
	DefaultHTTPMaxAttempts       = 2
	DefaultHTTPMaxRedirects      = 10
	DefaultHTTPUserAgent         = "renovate/1.0 (+https://github.com/f1o/renovate)"

	// Storage Defaults
	DefaultStorageHistoryFile   = "history.json"
	DefaultStorageLockFile      = "history.json.lock"
	DefaultStorageRunLedgerPath = "database/run_ledger.db"

	// Scheduler Defaults
	DefaultSchedulerIntervalSeconds = 300

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
