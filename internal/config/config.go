package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains token signing settings. The secret is injected
// here and never hardcoded; rotation requires a restart.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// SMTPConfig contains the outbound mail transport settings used by the
// reminder notifier.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// UploadConfig contains attachment storage settings.
type UploadConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// SchedulerConfig contains the reminder job settings. ReminderTime is a
// local wall-clock HH:MM string; the job fires once daily at that time.
type SchedulerConfig struct {
	ReminderTime string `mapstructure:"reminder_time" validate:"required"`
	Timezone     string `mapstructure:"timezone"`
}
