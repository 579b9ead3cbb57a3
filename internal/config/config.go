package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Quiz      QuizConfig      `mapstructure:"quiz" validate:"required"`
	Media     MediaConfig     `mapstructure:"media" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`
	BCryptCost         int    `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// QuizConfig contains the tunables of the card selection policy: the daily
// and per-sitting budgets for introducing new words, and the skill level a
// nugget must exceed before its quiz questions are offered cold.
type QuizConfig struct {
	MaxNewWordsPerDay     int `mapstructure:"max_new_words_per_day" validate:"required,gt=0"`
	MaxNewWordsPerSitting int `mapstructure:"max_new_words_per_sitting" validate:"required,gt=0"`
	ColdQuizSkillLevel    int `mapstructure:"cold_quiz_skill_level" validate:"gte=0"`
	BatchSize             int `mapstructure:"batch_size" validate:"required,gt=0"`
}

// MediaConfig contains settings for serving audio recordings.
type MediaConfig struct {
	AudioDir string `mapstructure:"audio_dir" validate:"required"`
}

// SchedulerConfig contains settings for the background metrics maintenance
// jobs that reset the new-word counters.
type SchedulerConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`
	BreakAfter   time.Duration `mapstructure:"break_after" validate:"required"`
}
