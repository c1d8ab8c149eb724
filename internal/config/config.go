package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hugo/presencebot/internal/classify"
)

// Config holds all application configuration
type Config struct {
	// Status API configuration
	API APIConfig `yaml:"api"`

	// Chat bot configuration
	Bot BotConfig `yaml:"bot"`

	// Report configuration
	Report ReportConfig `yaml:"report"`

	// Web server configuration
	Web WebConfig `yaml:"web"`

	// Daemon process configuration
	Daemon DaemonConfig `yaml:"daemon"`

	// Tracked persons and the group query
	Persons []PersonConfig `yaml:"persons"`
	Team    TeamConfig     `yaml:"team"`
}

// APIConfig holds remote status API configuration
type APIConfig struct {
	Base           string `yaml:"base"`            // Default API base URL
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
}

// BotConfig holds chat transport configuration
type BotConfig struct {
	TokenEnv        string `yaml:"token_env"`         // Env var holding the Telegram token
	TodaySuffix     string `yaml:"today_suffix"`      // Appended to a trigger to ask for the day report
	ListTrigger     string `yaml:"list_trigger"`      // Message that lists all tracked names
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"` // Reply cache expiry window
}

// ReportConfig holds aggregation configuration
type ReportConfig struct {
	HeartbeatSeconds int64 `yaml:"heartbeat_seconds"` // Nominal snapshot interval
	RecentLimit      int   `yaml:"recent_limit"`      // Events fetched per status query
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string `yaml:"pid_file"`
}

// PersonConfig describes one tracked person. Everything beyond name and
// trigger is optional per-person special casing.
type PersonConfig struct {
	Name          string            `yaml:"name"`
	Trigger       string            `yaml:"trigger"`
	APIBase       string            `yaml:"api_base,omitempty"`
	HideDesktop   bool              `yaml:"hide_desktop,omitempty"`
	PhoneLabel    string            `yaml:"phone_label,omitempty"`
	DesktopLabel  string            `yaml:"desktop_label,omitempty"`
	PhoneDevice   string            `yaml:"phone_device,omitempty"`
	DesktopDevice string            `yaml:"desktop_device,omitempty"`
	BusyApp       string            `yaml:"busy_app,omitempty"`
	SpecialApps   map[string]string `yaml:"special_apps,omitempty"`
}

// TeamConfig names the group query: one trigger fanning out to several
// persons, delivered as a single titled bundle.
type TeamConfig struct {
	Trigger string   `yaml:"trigger"`
	Members []string `yaml:"members"`
	Title   string   `yaml:"title"`
}

// Profile builds the classification profile for this person: the default
// special-app table overlaid with any per-person entries.
func (p *PersonConfig) Profile() *classify.Profile {
	profile := classify.NewProfile(p.Name)
	profile.HideDesktop = p.HideDesktop
	profile.PhoneLabel = p.PhoneLabel
	profile.DesktopLabel = p.DesktopLabel
	profile.PhoneDeviceID = p.PhoneDevice
	profile.DesktopDeviceID = p.DesktopDevice
	profile.BusyApp = p.BusyApp
	for app, text := range p.SpecialApps {
		profile.SpecialApps[app] = text
	}
	return profile
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSeconds: 10,
		},
		Bot: BotConfig{
			TokenEnv:        "PRESENCEBOT_TG_TOKEN",
			TodaySuffix:     " today",
			ListTrigger:     "/who",
			CacheTTLSeconds: 45,
		},
		Report: ReportConfig{
			HeartbeatSeconds: 60,
			RecentLimit:      20,
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 10000 + os.Getuid(),
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/presencebot-%d.pid", os.Getuid()),
		},
		Team: TeamConfig{
			Title: "crew status",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.Base == "" {
		return fmt.Errorf("api.base cannot be empty")
	}

	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}

	if c.Report.HeartbeatSeconds <= 0 {
		return fmt.Errorf("report.heartbeat_seconds must be positive, got %d", c.Report.HeartbeatSeconds)
	}

	if c.Report.RecentLimit <= 0 {
		return fmt.Errorf("report.recent_limit must be positive, got %d", c.Report.RecentLimit)
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	seen := make(map[string]bool, len(c.Persons))
	triggers := make(map[string]bool, len(c.Persons))
	for i := range c.Persons {
		p := &c.Persons[i]
		if p.Name == "" {
			return fmt.Errorf("persons[%d]: name cannot be empty", i)
		}
		if p.Trigger == "" {
			return fmt.Errorf("person %q: trigger cannot be empty", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("person %q listed twice", p.Name)
		}
		if triggers[p.Trigger] {
			return fmt.Errorf("trigger %q used twice", p.Trigger)
		}
		seen[p.Name] = true
		triggers[p.Trigger] = true
	}

	for _, member := range c.Team.Members {
		if !seen[member] {
			return fmt.Errorf("team member %q is not a configured person", member)
		}
	}

	return nil
}

// Person returns the configuration for a name, or nil.
func (c *Config) Person(name string) *PersonConfig {
	for i := range c.Persons {
		if c.Persons[i].Name == name {
			return &c.Persons[i]
		}
	}
	return nil
}

// FetchTimeout returns the API timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CacheTTL returns the reply cache expiry window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Bot.CacheTTLSeconds) * time.Second
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  API:
    Base: %s
    Timeout: %ds
  Report:
    Heartbeat: %ds
    Recent Limit: %d
  Bot:
    Token Env: %s
    Cache TTL: %ds
  Web:
    Host: %s
    Port: %d
  Daemon:
    PID File: %s
  Persons: %d
  Team Members: %d`,
		c.API.Base,
		c.API.TimeoutSeconds,
		c.Report.HeartbeatSeconds,
		c.Report.RecentLimit,
		c.Bot.TokenEnv,
		c.Bot.CacheTTLSeconds,
		c.Web.Host,
		c.Web.Port,
		c.Daemon.PIDFile,
		len(c.Persons),
		len(c.Team.Members),
	)
}
