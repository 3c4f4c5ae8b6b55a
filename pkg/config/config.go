package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS      CORSConfig
	Log       LogConfig
	Weights   WeightsConfig
	Planner   PlannerConfig
	Reminders RemindersConfig
	Storage   StorageConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// WeightsConfig tunes the course weight model.
type WeightsConfig struct {
	Beta          float64
	Gamma         float64
	HorizonDays   int
	CategoryCoefs map[string]float64
}

// PlannerConfig governs plan generation defaults and plan retention.
type PlannerConfig struct {
	DefaultBlockMinutes int
	DefaultRoundTo      int
	PlanTTL             time.Duration
}

// RemindersConfig controls the reminder scheduler and its worker queue.
type RemindersConfig struct {
	Enabled       bool
	PollInterval  time.Duration
	SnoozeMinutes int
	Workers       int
}

// StorageConfig locates the on-disk data directory for timetables and exports.
type StorageConfig struct {
	DataDir       string
	TimetableFile string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Weights = WeightsConfig{
		Beta:        v.GetFloat64("WEIGHTS_BETA"),
		Gamma:       v.GetFloat64("WEIGHTS_GAMMA"),
		HorizonDays: v.GetInt("WEIGHTS_EXAM_HORIZON_DAYS"),
		CategoryCoefs: map[string]float64{
			"required":          v.GetFloat64("WEIGHTS_COEF_REQUIRED"),
			"elective":          v.GetFloat64("WEIGHTS_COEF_ELECTIVE"),
			"general-education": v.GetFloat64("WEIGHTS_COEF_GENERAL_EDUCATION"),
			"lab":               v.GetFloat64("WEIGHTS_COEF_LAB"),
		},
	}

	cfg.Planner = PlannerConfig{
		DefaultBlockMinutes: v.GetInt("PLANNER_BLOCK_MINUTES"),
		DefaultRoundTo:      v.GetInt("PLANNER_ROUND_TO"),
		PlanTTL:             parseDuration(v.GetString("PLANNER_PLAN_TTL"), 30*time.Minute),
	}

	cfg.Reminders = RemindersConfig{
		Enabled:       v.GetBool("REMINDERS_ENABLED"),
		PollInterval:  parseDuration(v.GetString("REMINDERS_POLL_INTERVAL"), 10*time.Second),
		SnoozeMinutes: v.GetInt("REMINDERS_SNOOZE_MINUTES"),
		Workers:       v.GetInt("REMINDERS_WORKERS"),
	}

	cfg.Storage = StorageConfig{
		DataDir:       v.GetString("STORAGE_DATA_DIR"),
		TimetableFile: v.GetString("STORAGE_TIMETABLE_FILE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("WEIGHTS_BETA", 0.10)
	v.SetDefault("WEIGHTS_GAMMA", 0.80)
	v.SetDefault("WEIGHTS_EXAM_HORIZON_DAYS", 21)
	v.SetDefault("WEIGHTS_COEF_REQUIRED", 1.30)
	v.SetDefault("WEIGHTS_COEF_ELECTIVE", 1.00)
	v.SetDefault("WEIGHTS_COEF_GENERAL_EDUCATION", 0.85)
	v.SetDefault("WEIGHTS_COEF_LAB", 1.10)

	v.SetDefault("PLANNER_BLOCK_MINUTES", 30)
	v.SetDefault("PLANNER_ROUND_TO", 30)
	v.SetDefault("PLANNER_PLAN_TTL", "30m")

	v.SetDefault("REMINDERS_ENABLED", true)
	v.SetDefault("REMINDERS_POLL_INTERVAL", "10s")
	v.SetDefault("REMINDERS_SNOOZE_MINUTES", 10)
	v.SetDefault("REMINDERS_WORKERS", 2)

	v.SetDefault("STORAGE_DATA_DIR", "./data")
	v.SetDefault("STORAGE_TIMETABLE_FILE", "courses.csv")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
