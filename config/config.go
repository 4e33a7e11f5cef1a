package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	DemoData bool   `yaml:"demo_data" json:"demo_data"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Swagger bool   `yaml:"swagger" json:"swagger"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

// RateLimitConfig defines the request ceiling applied per client IP:
// at most Requests within Window seconds, with Burst allowed at once.
type RateLimitConfig struct {
	Enabled  bool `yaml:"enabled" json:"enabled"`
	Requests int  `yaml:"requests" json:"requests"`
	Window   int  `yaml:"window" json:"window"`
	Burst    int  `yaml:"burst" json:"burst"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Database  DBConfig        `yaml:"database" json:"database"`
	RateLimit RateLimitConfig `yaml:"ratelimit" json:"ratelimit"`
	Logger    LoggerConfig    `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "catalogd",
			Location: "Asia/Shanghai",
			Workdir:  "/var/catalogd",
			DemoData: false,
			Debug:    true,
		},
		Web: WebConfig{
			Host:    "0.0.0.0",
			Port:    1816,
			Swagger: true,
		},
		Database: DBConfig{
			Type:   "postgres",
			Host:   "127.0.0.1",
			Port:   5432,
			Name:   "catalogd",
			User:   "postgres",
			Passwd: "",
			Debug:  false,
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 100,
			Window:   60,
			Burst:    20,
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: true,
			Filename:   "/var/catalogd/catalogd.log",
		},
	}
}

func setEnvStringValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToBool(evalue)
	}
}

// LoadConfig reads the yaml configuration file if present and applies
// environment variable overrides on top of the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvStringValue("CATALOGD_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvStringValue("CATALOGD_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("CATALOGD_SYSTEM_DEMO_DATA", &cfg.System.DemoData)
	setEnvBoolValue("CATALOGD_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvStringValue("CATALOGD_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("CATALOGD_WEB_PORT", &cfg.Web.Port)
	setEnvBoolValue("CATALOGD_WEB_SWAGGER", &cfg.Web.Swagger)

	setEnvStringValue("CATALOGD_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("CATALOGD_DB_PORT", &cfg.Database.Port)
	setEnvStringValue("CATALOGD_DB_NAME", &cfg.Database.Name)
	setEnvStringValue("CATALOGD_DB_USER", &cfg.Database.User)
	setEnvStringValue("CATALOGD_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("CATALOGD_DB_DEBUG", &cfg.Database.Debug)

	setEnvBoolValue("CATALOGD_RATELIMIT_ENABLED", &cfg.RateLimit.Enabled)
	setEnvIntValue("CATALOGD_RATELIMIT_REQUESTS", &cfg.RateLimit.Requests)
	setEnvIntValue("CATALOGD_RATELIMIT_WINDOW", &cfg.RateLimit.Window)
	setEnvIntValue("CATALOGD_RATELIMIT_BURST", &cfg.RateLimit.Burst)

	setEnvStringValue("CATALOGD_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("CATALOGD_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvStringValue("CATALOGD_LOGGER_FILENAME", &cfg.Logger.Filename)

	return cfg
}
