package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"

	"production/internal/core/domain/model/pipeline"
	"production/internal/core/domain/services"
	"production/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string `mapstructure:"http_port"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSslMode  string `mapstructure:"db_sslmode"`
	LogLevel   string `mapstructure:"log_level"`

	SaturationWarning  float64 `mapstructure:"saturation_warning"`
	SaturationCritical float64 `mapstructure:"saturation_critical"`

	ReconcileSchedule string `mapstructure:"reconcile_schedule"`
	LineLoadSchedule  string `mapstructure:"line_load_schedule"`

	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// PipelineConfig lists the process stages every new order goes through.
//
//	pipeline:
//	  stages:
//	    - name: cutting
//	      position: 1
type PipelineConfig struct {
	Stages []StageConfig `mapstructure:"stages"`
}

type StageConfig struct {
	Name     string `mapstructure:"name"`
	Position int    `mapstructure:"position"`
}

// LoadConfig reads envFile into the process environment when it exists,
// then resolves every key from the environment (upper-cased, e.g.
// SATURATION_WARNING), an optional config.yaml found in configPaths, and the
// defaults, in that order of precedence. CONFIG_FILE names an explicit file.
func LoadConfig(envFile string, configPaths ...string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, path := range configPaths {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config_file", "")
	v.SetDefault("http_port", "8080")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "production")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("log_level", "info")
	v.SetDefault("saturation_warning", services.DefaultWarningThreshold)
	v.SetDefault("saturation_critical", services.DefaultCriticalThreshold)
	v.SetDefault("reconcile_schedule", jobs.DefaultReconcileSchedule)
	v.SetDefault("line_load_schedule", jobs.DefaultLineLoadSchedule)
}

// DSN returns the Postgres URL built from the DB_* settings.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// BuildPipeline validates the configured stages. No stages means the
// default six-stage pipeline.
func (c Config) BuildPipeline() (pipeline.Pipeline, error) {
	if len(c.Pipeline.Stages) == 0 {
		return pipeline.Default(), nil
	}

	stages := make([]pipeline.Stage, len(c.Pipeline.Stages))
	for i, s := range c.Pipeline.Stages {
		stages[i] = pipeline.Stage{Name: s.Name, Position: s.Position}
	}
	return pipeline.New(stages)
}

func (c Config) BuildSaturationMonitor() (services.SaturationMonitor, error) {
	return services.NewSaturationMonitor(c.SaturationWarning, c.SaturationCritical)
}

func (c Config) Schedules() jobs.Schedules {
	return jobs.Schedules{Reconcile: c.ReconcileSchedule, LineLoad: c.LineLoadSchedule}
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
