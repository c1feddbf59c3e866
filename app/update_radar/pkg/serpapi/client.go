package serpapi

import (
	"context"
	"fmt"
	"strconv"

	g "github.com/serpapi/google-search-results-golang"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/search"
)

// Client SerpApi 谷歌搜索客户端
type Client struct {
	apiKey string
	query  func(params map[string]string, apiKey string) (map[string]interface{}, error)
}

// NewClient 创建 SerpApi 客户端
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		query: func(params map[string]string, apiKey string) (map[string]interface{}, error) {
			s := g.NewGoogleSearch(params, apiKey)
			return s.GetJSON()
		},
	}
}

var _ search.Searcher = (*Client)(nil)

// Search implements search.Searcher。SDK 不支持 context，仅在发起前检查取消
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("serpapi api key is not set")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := map[string]string{
		"engine": "google",
		"q":      req.Query,
		"hl":     "en",
		"gl":     "us",
	}
	if req.MaxResults > 0 {
		params["num"] = strconv.Itoa(req.MaxResults)
	}

	data, err := c.query(params, c.apiKey)
	if err != nil {
		return nil, fmt.Errorf("serpapi search failed: %w", err)
	}

	return &search.Response{Results: search.Truncate(parseOrganic(data), req.MaxResults)}, nil
}

func parseOrganic(data map[string]interface{}) []search.Result {
	organic, ok := data["organic_results"].([]interface{})
	if !ok {
		return nil
	}

	results := make([]search.Result, 0, len(organic))
	for _, item := range organic {
		res, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		link, _ := res["link"].(string)
		if link == "" {
			continue
		}
		title, _ := res["title"].(string)
		snippet, _ := res["snippet"].(string)
		date, _ := res["date"].(string)

		results = append(results, search.Result{
			Title:         title,
			URL:           link,
			Content:       snippet,
			PublishedDate: date,
		})
	}
	return results
}
