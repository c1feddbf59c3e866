package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 配置校验错误
var (
	ErrMissingProduct     = errors.New("pipeline.product is required")
	ErrInvalidNumResults  = errors.New("pipeline.num_results must be positive")
	ErrInvalidMaxMonthOld = errors.New("pipeline.max_months_old must be positive")
)

// 可覆盖配置的环境变量
const (
	envSerperKey  = "SERPER_API_KEY"
	envSerpAPIKey = "SERPAPI_API_KEY"
	envTavilyKey  = "TAVILY_API_KEY"
	envHFKey      = "HF_API_KEY"
	envLLMKey     = "LLM_API_KEY"
)

// Config 项目配置结构体
type Config struct {
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// PipelineConfig 流水线参数
type PipelineConfig struct {
	Product      string   `yaml:"product"`
	NumResults   int      `yaml:"num_results"`
	MaxMonthsOld int      `yaml:"max_months_old"`
	OutputDir    string   `yaml:"output_dir"`
	Blacklist    []string `yaml:"blacklist"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout int    `yaml:"timeout"` // 秒
}

// DBConfig 数据库相关配置，Host 为空时不启用归档
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Topic    string        `yaml:"topic"`
	Serper   SerperConfig  `yaml:"serper"`
	SerpAPI  SerpAPIConfig `yaml:"serpapi"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// SerperConfig google.serper.dev 配置
type SerperConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

// SerpAPIConfig SerpApi 配置
type SerpAPIConfig struct {
	APIKey string `yaml:"api_key"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig LLM 调用限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			NumResults:   5,
			MaxMonthsOld: 6,
			OutputDir:    "outputs",
			Blacklist:    []string{"youtube.com", "reddit.com"},
		},
		LLM: LLMConfig{
			BaseURL: "https://router.huggingface.co/v1",
			Model:   "meta-llama/Llama-3.1-8B-Instruct:novita",
			Timeout: 30,
		},
		Search: SearchConfig{
			Provider: "serper",
			Topic:    "general",
		},
		Log: LogConfig{
			Level: "info",
			File:  "logs/pipeline.log",
		},
		Concurrency: ConcurrencyConfig{
			QPS: 1,
			RPM: 60,
		},
	}
}

// LoadConfig 从指定路径加载配置。文件不存在时使用默认值，
// 工作目录下的 .env 会被加载，API Key 可由环境变量覆盖
func LoadConfig(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// ApplyEnv 使用环境变量覆盖密钥
func (c *Config) ApplyEnv() {
	if v := os.Getenv(envSerperKey); v != "" {
		c.Search.Serper.APIKey = v
	}
	if v := os.Getenv(envSerpAPIKey); v != "" {
		c.Search.SerpAPI.APIKey = v
		// 早期部署把 serper 的 key 放在 SERPAPI_API_KEY 中
		if c.Search.Serper.APIKey == "" {
			c.Search.Serper.APIKey = v
		}
	}
	if v := os.Getenv(envTavilyKey); v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v := os.Getenv(envHFKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(envLLMKey); v != "" {
		c.LLM.APIKey = v
	}
}

// Validate 校验流水线参数
func (c *Config) Validate() error {
	if c.Pipeline.Product == "" {
		return ErrMissingProduct
	}
	if c.Pipeline.NumResults <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNumResults, c.Pipeline.NumResults)
	}
	if c.Pipeline.MaxMonthsOld <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxMonthOld, c.Pipeline.MaxMonthsOld)
	}
	return nil
}
