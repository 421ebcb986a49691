package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Research ResearchConfig `yaml:"research"`
	Export   ExportConfig   `yaml:"export"`
	Data     DataConfig     `yaml:"data"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

// ResearchConfig 研究后端（外部协作方）接入配置
type ResearchConfig struct {
	APIURL        string        `yaml:"api_url"`
	APIKey        string        `yaml:"api_key"`
	EnvironmentID string        `yaml:"environment_id"`
	Interaction   string        `yaml:"interaction"`
	Timeout       time.Duration `yaml:"timeout"`
}

// ExportConfig PDF 导出参数
type ExportConfig struct {
	PageWidthPx  int     `yaml:"page_width_px"`
	PaddingPx    int     `yaml:"padding_px"`
	MarginInches float64 `yaml:"margin_inches"`
	Scale        float64 `yaml:"scale"`
	MaxWorkers   int     `yaml:"max_workers"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		Research: ResearchConfig{
			APIURL:      "https://api.vertesia.io/api/v1",
			Interaction: "ResearchV2",
			Timeout:     5 * time.Minute,
		},
		Export: ExportConfig{
			PageWidthPx:  800,
			PaddingPx:    60,
			MarginInches: 0.75,
			Scale:        2,
			MaxWorkers:   2,
		},
		Data: DataConfig{
			Dir: "./data",
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if apiKey := os.Getenv("RESEARCH_API_KEY"); apiKey != "" {
		config.Research.APIKey = apiKey
	}
	if baseURL := os.Getenv("RESEARCH_API_URL"); baseURL != "" {
		config.Research.APIURL = baseURL
	}
	if envID := os.Getenv("RESEARCH_ENVIRONMENT_ID"); envID != "" {
		config.Research.EnvironmentID = envID
	}
	if interaction := os.Getenv("RESEARCH_INTERACTION"); interaction != "" {
		config.Research.Interaction = interaction
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// 数据目录环境变量
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}

	return config
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
