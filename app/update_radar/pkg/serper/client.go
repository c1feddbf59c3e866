package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/search"
)

const defaultEndpoint = "https://google.serper.dev/search"

// Client google.serper.dev 搜索客户端
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient 创建 Serper 客户端，endpoint 为空时使用官方地址
func NewClient(apiKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

var _ search.Searcher = (*Client)(nil)

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
}

// SearchResponse Serper 响应中用到的部分
type SearchResponse struct {
	Organic []OrganicResult `json:"organic"`
}

// OrganicResult 自然搜索结果
type OrganicResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Date     string `json:"date"`
	Position int    `json:"position"`
}

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	payload, err := json.Marshal(searchRequest{Q: req.Query, Num: req.MaxResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("X-API-KEY", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper api error (status %d): %s", res.StatusCode, string(body))
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	results := make([]search.Result, 0, len(searchResp.Organic))
	for _, r := range searchResp.Organic {
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.Link,
			Content:       r.Snippet,
			PublishedDate: r.Date,
		})
	}

	return &search.Response{Results: search.Truncate(results, req.MaxResults)}, nil
}
