package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	"github.com/tj309c/FLWSTradingLiveUpdates/pkg/util"
)

var validate = validator.New()

// ThresholdLevel is one configured pain-chain entry.
type ThresholdLevel struct {
	Name  string  `yaml:"name" validate:"required"`
	Level float64 `yaml:"level" validate:"gt=0"`
	Label string  `yaml:"label"`
	Color int     `yaml:"color"`
}

type Config struct {
	Environment string `yaml:"environment" default:"production" validate:"required"`

	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`

	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`

	Monitor struct {
		Symbol          string        `yaml:"symbol" default:"FLWS" validate:"required"`
		Interval        time.Duration `yaml:"interval" default:"60s"`
		SessionDuration time.Duration `yaml:"session_duration" default:"9m"` // 0 = run until signal
		RunOnce         bool          `yaml:"run_once"`
		VolumeTarget    int64         `yaml:"volume_target" default:"1500000" validate:"gt=0"`
		FooterTag       string        `yaml:"footer_tag" default:"Kurrupt Research"`
	} `yaml:"monitor"`

	Session struct {
		Open     string `yaml:"open" default:"09:30"`
		Close    string `yaml:"close" default:"16:00"`
		Timezone string `yaml:"timezone" default:"America/New_York"`
	} `yaml:"session"`

	// Thresholds left empty falls back to the built-in FLWS pain chain.
	Thresholds struct {
		Floor  *ThresholdLevel  `yaml:"floor"`
		Levels []ThresholdLevel `yaml:"levels" validate:"dive"`
	} `yaml:"thresholds"`

	Polygon struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url" default:"https://api.polygon.io"`
		Timeout time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"polygon"`

	Yahoo struct {
		BaseURL string        `yaml:"base_url" default:"https://query1.finance.yahoo.com"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"yahoo"`

	// Discord delivery is the safety switch of the original monitor: muted
	// unless explicitly enabled.
	Discord struct {
		Enabled    bool          `yaml:"enabled"`
		WebhookURL string        `yaml:"webhook_url"`
		Timeout    time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"discord"`

	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"squeeze.alerts"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`

	Cache struct {
		QuoteTTL time.Duration `yaml:"quote_ttl" default:"10s"`
		Redis    struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"flwsmon"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	History struct {
		Size int `yaml:"size" default:"64" validate:"gt=0"`
	} `yaml:"history"`
}

// Load reads a YAML config file, applies defaults and validates.
func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. Secrets (API key, webhook) take env priority so cloud runners
// never need them on disk.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		c.Polygon.APIKey = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		c.Discord.WebhookURL = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		c.Monitor.Symbol = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	return c, nil
}

// Validate checks tag rules plus the invariants the tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	open, err := util.ParseClock(c.Session.Open)
	if err != nil {
		return fmt.Errorf("session.open: %w", err)
	}
	closeM, err := util.ParseClock(c.Session.Close)
	if err != nil {
		return fmt.Errorf("session.close: %w", err)
	}
	if open >= closeM {
		return fmt.Errorf("session.open %q must be before session.close %q", c.Session.Open, c.Session.Close)
	}
	if _, err := time.LoadLocation(c.Session.Timezone); err != nil {
		return fmt.Errorf("session.timezone: %w", err)
	}

	if c.Discord.Enabled && c.Discord.WebhookURL == "" && os.Getenv("DISCORD_WEBHOOK_URL") == "" {
		return fmt.Errorf("discord.webhook_url is required when discord.enabled is true")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 && os.Getenv("KAFKA_BROKERS") == "" {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka.enabled is true")
	}

	// Custom pain chains must be fully specified and strictly increasing.
	if len(c.Thresholds.Levels) > 0 {
		if c.Thresholds.Floor == nil {
			return fmt.Errorf("thresholds.floor is required when thresholds.levels is set")
		}
		if _, err := c.ThresholdSet(); err != nil {
			return err
		}
	}
	return nil
}

// ThresholdSet materializes the configured pain chain, falling back to the
// built-in FLWS set when the section is empty.
func (c *Config) ThresholdSet() (models.ThresholdSet, error) {
	if len(c.Thresholds.Levels) == 0 {
		s := models.DefaultThresholdSet()
		return s, s.Validate()
	}

	def := models.DefaultThresholdSet()
	s := models.ThresholdSet{Baseline: def.Baseline}

	s.Floor = models.Threshold{
		Name:  c.Thresholds.Floor.Name,
		Level: c.Thresholds.Floor.Level,
		Label: c.Thresholds.Floor.Label,
		Color: c.Thresholds.Floor.Color,
	}
	if s.Floor.Label == "" {
		s.Floor.Label = def.Floor.Label
	}
	if s.Floor.Color == 0 {
		s.Floor.Color = def.Floor.Color
	}

	for _, l := range c.Thresholds.Levels {
		t := models.Threshold{Name: l.Name, Level: l.Level, Label: l.Label, Color: l.Color}
		if t.Label == "" {
			t.Label = "🔺 " + l.Name
		}
		if t.Color == 0 {
			t.Color = def.Baseline.Color
		}
		s.Levels = append(s.Levels, t)
	}
	if err := s.Validate(); err != nil {
		return models.ThresholdSet{}, err
	}
	return s, nil
}

// SessionLocation resolves the configured trading-session timezone.
func (c *Config) SessionLocation() *time.Location {
	loc, err := time.LoadLocation(c.Session.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
