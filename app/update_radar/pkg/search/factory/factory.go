package factory

import (
	"fmt"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/search"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/searxng"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/serpapi"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/serper"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/tavily"
)

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		provider = "serper"
	}

	switch provider {
	case "serper":
		if cfg.Search.Serper.APIKey == "" {
			return nil, fmt.Errorf("serper api key is missing")
		}
		return serper.NewClient(cfg.Search.Serper.APIKey, cfg.Search.Serper.Endpoint), nil

	case "serpapi":
		if cfg.Search.SerpAPI.APIKey == "" {
			return nil, fmt.Errorf("serpapi api key is missing")
		}
		return serpapi.NewClient(cfg.Search.SerpAPI.APIKey), nil

	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey, cfg.Search.Tavily.Endpoint), nil

	case "searxng":
		baseURL := cfg.Search.SearXNG.BaseURL
		if baseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(baseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
