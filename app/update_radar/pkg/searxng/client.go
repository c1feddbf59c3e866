package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/search"
)

// dateLayout 与 Serper 等提供方返回的日期文本保持一致，便于后续统一解析
const dateLayout = "Jan 2, 2006"

const userAgent = "Mozilla/5.0 (compatible; update-radar/1.0)"

// Client 通过自建 SearXNG 实例检索产品更新
type Client struct {
	endpoint *url.URL
	http     *http.Client
}

var _ search.Searcher = (*Client)(nil)

// NewClient 创建客户端，timeout 单位为秒，0 表示 30 秒
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t <= 0 {
		t = 30 * time.Second
	}
	// 解析失败时 endpoint 为 nil，由 Search 报错
	endpoint, _ := url.Parse(strings.TrimRight(baseURL, "/") + "/search")
	return &Client{endpoint: endpoint, http: &http.Client{Timeout: t}}
}

type response struct {
	Results []hit `json:"results"`
}

type hit struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"publishedDate"`
	Score         float64 `json:"score"`
}

// Search 查询 SearXNG 的 JSON 接口，并按最大月龄收窄时间范围
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if c.endpoint == nil {
		return nil, fmt.Errorf("invalid searxng base url")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, string(body))
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	results := make([]search.Result, 0, len(body.Results))
	for _, h := range body.Results {
		results = append(results, h.toResult())
	}
	return &search.Response{Results: search.Truncate(results, req.MaxResults)}, nil
}

func (c *Client) buildURL(req *search.Request) string {
	u := *c.endpoint
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("format", "json")
	category := "general"
	if req.Topic == "news" {
		category = "news"
	}
	q.Set("categories", category)
	if tr := timeRange(req.MaxAgeMonths); tr != "" {
		q.Set("time_range", tr)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// timeRange 选择能覆盖 months 个月的最小 SearXNG 时间范围，超过一年则不限制
func timeRange(months int) string {
	switch {
	case months <= 0:
		return ""
	case months <= 1:
		return "month"
	case months <= 12:
		return "year"
	default:
		return ""
	}
}

func (h hit) toResult() search.Result {
	return search.Result{
		Title:         h.Title,
		URL:           h.URL,
		Content:       h.Content,
		Score:         h.Score,
		PublishedDate: publishedText(h.PublishedDate),
	}
}

// publishedText 把 ISO 时间戳转为 "Jan 2, 2006"，无法识别时原样返回
func publishedText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return raw
	}
	return t.Format(dateLayout)
}
