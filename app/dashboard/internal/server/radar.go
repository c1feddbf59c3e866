package server

import (
	"github.com/iWorld-y/update_radar/app/dashboard/internal/conf"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
)

// NewRadarConfig 将 internal/conf.Radar 转换为 pkg/config.Config，未填写的字段保留默认值
func NewRadarConfig(c *conf.Radar) *config.Config {
	cfg := config.Default()
	if c == nil {
		cfg.ApplyEnv()
		return cfg
	}

	if p := c.Pipeline; p != nil {
		setInt(&cfg.Pipeline.NumResults, p.NumResults)
		setInt(&cfg.Pipeline.MaxMonthsOld, p.MaxMonthsOld)
		setString(&cfg.Pipeline.OutputDir, p.OutputDir)
		if p.Blacklist != nil {
			cfg.Pipeline.Blacklist = p.Blacklist
		}
	}
	if l := c.Llm; l != nil {
		setString(&cfg.LLM.BaseURL, l.BaseUrl)
		setString(&cfg.LLM.APIKey, l.ApiKey)
		setString(&cfg.LLM.Model, l.Model)
		setInt(&cfg.LLM.Timeout, l.Timeout)
	}
	if s := c.Search; s != nil {
		setString(&cfg.Search.Provider, s.Provider)
		setString(&cfg.Search.Topic, s.Topic)
		if s.Serper != nil {
			cfg.Search.Serper = config.SerperConfig{APIKey: s.Serper.ApiKey, Endpoint: s.Serper.Endpoint}
		}
		if s.Serpapi != nil {
			cfg.Search.SerpAPI = config.SerpAPIConfig{APIKey: s.Serpapi.ApiKey}
		}
		if s.Tavily != nil {
			cfg.Search.Tavily = config.TavilyConfig{APIKey: s.Tavily.ApiKey, Endpoint: s.Tavily.Endpoint}
		}
		if s.Searxng != nil {
			cfg.Search.SearXNG = config.SearXNGConfig{BaseURL: s.Searxng.BaseUrl, Timeout: int(s.Searxng.Timeout)}
		}
	}
	if l := c.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		setString(&cfg.Log.File, l.File)
	}
	if cc := c.Concurrency; cc != nil {
		cfg.Concurrency = config.ConcurrencyConfig{QPS: int(cc.Qps), RPM: int(cc.Rpm)}
	}
	if d := c.Db; d != nil {
		cfg.DB = config.DBConfig{
			Host:     d.Host,
			Port:     int(d.Port),
			User:     d.User,
			Password: d.Password,
			Name:     d.Name,
		}
	}

	cfg.ApplyEnv()
	return cfg
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int32) {
	if v != 0 {
		*dst = int(v)
	}
}
