// Package config loads the service configuration: a YAML file plus
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jshacar-hms/requesthelp/internal/hours"
)

// UI front-end modes.
const (
	UIDevice  = "device"  // drive the room device's touch panel
	UIConsole = "console" // local terminal panel for development
)

type Config struct {
	// Listen is the address for the device feedback listener.
	Listen string `yaml:"listen"`
	// UI selects the prompt surface: "device" or "console".
	UI       string           `yaml:"ui"`
	LogLevel string           `yaml:"log_level"`
	Device   DeviceConfig     `yaml:"device"`
	Slack    SlackConfig      `yaml:"slack"`
	Snow     ServiceNowConfig `yaml:"servicenow"`
	Hours    HoursConfig      `yaml:"hours"`
}

type DeviceConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

type ServiceNowConfig struct {
	// Instance is the subdomain only, e.g. "harvardmed" for
	// harvardmed.service-now.com.
	Instance string `yaml:"instance"`
	// Key is the base64 basic-auth credential.
	Key string `yaml:"key"`
}

// BaseURL is the instance root used by the ticket client.
func (s ServiceNowConfig) BaseURL() string {
	return fmt.Sprintf("https://%s.service-now.com", s.Instance)
}

// HoursConfig is the staffed window in "HH:MM:SS" local time plus weekday
// names. Empty means the Mon-Fri 08:00-17:00 default.
type HoursConfig struct {
	Start string   `yaml:"start"`
	End   string   `yaml:"end"`
	Days  []string `yaml:"days"`
}

// Load reads the YAML file at path, applies environment overrides, and
// validates. A missing file is fine when everything needed arrives via the
// environment.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Listen:   ":8473",
		UI:       UIDevice,
		LogLevel: "info",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("REQUESTHELP_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("REQUESTHELP_UI"); v != "" {
		cfg.UI = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DEVICE_BASE_URL"); v != "" {
		cfg.Device.BaseURL = v
	}
	if v := os.Getenv("DEVICE_USERNAME"); v != "" {
		cfg.Device.Username = v
	}
	if v := os.Getenv("DEVICE_PASSWORD"); v != "" {
		cfg.Device.Password = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Slack.WebhookURL = v
	}
	if v := os.Getenv("SERVICENOW_INSTANCE"); v != "" {
		cfg.Snow.Instance = v
	}
	if v := os.Getenv("SERVICENOW_KEY"); v != "" {
		cfg.Snow.Key = v
	}
}

func (c *Config) validate() error {
	if c.UI != UIDevice && c.UI != UIConsole {
		return fmt.Errorf("ui must be %q or %q, got %q", UIDevice, UIConsole, c.UI)
	}
	if c.UI == UIDevice && c.Device.BaseURL == "" {
		return fmt.Errorf("device.base_url must be set when ui is %q", UIDevice)
	}
	if c.Snow.Instance == "" {
		return fmt.Errorf("servicenow.instance must not be empty")
	}
	if c.Snow.Key == "" {
		return fmt.Errorf("servicenow.key must not be empty")
	}
	if c.Slack.WebhookURL == "" {
		return fmt.Errorf("slack.webhook_url must not be empty")
	}
	if _, err := c.Hours.Window(); err != nil {
		return err
	}
	return nil
}

// Window converts the hours section to a TimeWindow.
func (h HoursConfig) Window() (hours.TimeWindow, error) {
	w := hours.DefaultWindow()

	if h.Start != "" {
		sec, err := parseSecondOfDay(h.Start)
		if err != nil {
			return w, fmt.Errorf("hours.start: %w", err)
		}
		w.StartSecondOfDay = sec
	}
	if h.End != "" {
		sec, err := parseSecondOfDay(h.End)
		if err != nil {
			return w, fmt.Errorf("hours.end: %w", err)
		}
		w.EndSecondOfDay = sec
	}
	if w.StartSecondOfDay > w.EndSecondOfDay {
		return w, fmt.Errorf("hours.start %q is after hours.end %q", h.Start, h.End)
	}

	if len(h.Days) > 0 {
		days := make(map[time.Weekday]bool, len(h.Days))
		for _, name := range h.Days {
			d, err := parseWeekday(name)
			if err != nil {
				return w, fmt.Errorf("hours.days: %w", err)
			}
			days[d] = true
		}
		w.BusinessDays = days
	}
	return w, nil
}

func parseSecondOfDay(s string) (int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("want HH:MM:SS, got %q", s)
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return d, nil
}
