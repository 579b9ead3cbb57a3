package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config.yaml next to the binary or in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables carry the settings.
	}

	// Environment variables with a KOTOBA_ prefix override everything,
	// e.g. KOTOBA_DATABASE_URL, KOTOBA_AUTH_JWT_SECRET.
	v.SetEnvPrefix("KOTOBA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about. The
	// required settings carry no defaults, so without explicit bindings
	// they would never be read from the environment.
	for _, key := range []string{"database.url", "auth.jwt_secret"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env var for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("auth.token_lifetime_hours", 24)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("quiz.max_new_words_per_day", 18)
	v.SetDefault("quiz.max_new_words_per_sitting", 6)
	v.SetDefault("quiz.cold_quiz_skill_level", 1)
	v.SetDefault("quiz.batch_size", 5)

	v.SetDefault("media.audio_dir", "audio")

	v.SetDefault("scheduler.tick_interval", time.Minute)
	v.SetDefault("scheduler.break_after", 30*time.Minute)
}

// validateConfig runs struct validation and translates the first failure into
// a readable error naming the offending field.
func validateConfig(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("config validation setup failed: %w", err)
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf(
				"invalid config: field %s failed rule %q",
				fe.Namespace(),
				fe.Tag(),
			)
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
