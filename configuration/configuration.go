package configuration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
	"github.com/zvonler/pitchpulse/database"
	"github.com/zvonler/pitchpulse/predict"
	"github.com/zvonler/pitchpulse/reddit"
	"github.com/zvonler/pitchpulse/utils"
)

const EnvPrefix = "PITCHPULSE"

func SetDefaults(v *viper.Viper) {
	defaults := reddit.DefaultConfig()

	v.SetDefault("database", "pitchpulse.db")

	v.SetDefault("reddit.base_url", defaults.BaseURL)
	v.SetDefault("reddit.user_agent", defaults.UserAgent)
	v.SetDefault("reddit.delay", defaults.Delay)
	v.SetDefault("reddit.random_delay", defaults.RandomDelay)
	v.SetDefault("reddit.timeout", defaults.Timeout)
	v.SetDefault("reddit.retries", defaults.Retries)
	v.SetDefault("reddit.retry_wait", defaults.RetryWait)
	v.SetDefault("reddit.cloudflare", defaults.CloudflareBypass)
	v.SetDefault("reddit.comment_limit", defaults.CommentLimit)

	v.SetDefault("model.url", "http://localhost:5000")
	v.SetDefault("model.timeout", 2*time.Minute)
	v.SetDefault("model.api_key", "")

	v.SetDefault("serve.listen", ":8080")
	v.SetDefault("serve.subreddit", "")
	v.SetDefault("serve.max_tasks", 1024)
	v.SetDefault("serve.task_ttl", 24*time.Hour)
}

// Load reads the optional config file into the global viper instance.
// Without an explicit path, pitchpulse.yaml is looked up in the working
// directory and in $HOME/.config/pitchpulse.
func Load(cfgFile string) error {
	return load(viper.GetViper(), cfgFile)
}

func load(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pitchpulse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/pitchpulse")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	slog.Debug("loaded config", "file", v.ConfigFileUsed())
	return nil
}

// InitLogging routes slog, and with it the standard logger, through tint.
func InitLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func ScraperConfig() reddit.Config {
	return scraperConfig(viper.GetViper())
}

func scraperConfig(v *viper.Viper) reddit.Config {
	return reddit.Config{
		BaseURL:          strings.TrimRight(v.GetString("reddit.base_url"), "/"),
		UserAgent:        v.GetString("reddit.user_agent"),
		Delay:            v.GetDuration("reddit.delay"),
		RandomDelay:      v.GetDuration("reddit.random_delay"),
		Timeout:          v.GetDuration("reddit.timeout"),
		Retries:          v.GetUint64("reddit.retries"),
		RetryWait:        v.GetDuration("reddit.retry_wait"),
		CloudflareBypass: v.GetBool("reddit.cloudflare"),
		CommentLimit:     v.GetInt("reddit.comment_limit"),
	}
}

func ModelConfig() predict.RemoteConfig {
	return modelConfig(viper.GetViper())
}

func modelConfig(v *viper.Viper) predict.RemoteConfig {
	return predict.RemoteConfig{
		BaseURL: v.GetString("model.url"),
		Timeout: v.GetDuration("model.timeout"),
		APIKey:  v.GetString("model.api_key"),
	}
}

func OpenExistingDatabase() (sdb *database.ScraperDB, err error) {
	dbPath := viper.GetString("database")

	var exists bool
	if exists, err = utils.PathExists(dbPath); err == nil {
		if exists {
			sdb, err = database.OpenScraperDB(dbPath)
		} else {
			err = fmt.Errorf("Database %q does not exist", dbPath)
		}
	}
	return
}

// OpenDatabase opens the configured database, creating it if needed.
func OpenDatabase() (*database.ScraperDB, error) {
	return database.OpenScraperDB(viper.GetString("database"))
}
