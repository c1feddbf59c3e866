package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// 抓取参数
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxRunes = 2000
	maxBodyBytes    = 5 << 20
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Fetcher 抓取网页并提取正文
type Fetcher struct {
	client   *http.Client
	maxRunes int
}

// New 创建抓取器，timeout 为 0 时使用 DefaultTimeout
func New(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxRunes: DefaultMaxRunes,
	}
}

// FetchText 返回页面所有 <p> 的文本（换行拼接）；页面没有段落时退回 readability 正文。
// 结果截断到 2000 个字符
func (f *Fetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	res, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("status code error: %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body failed: %w", err)
	}

	text, err := paragraphs(body)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		text = readable(body, u)
	}

	return truncate(text, f.maxRunes), nil
}

func paragraphs(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(parts, "\n"), nil
}

func readable(body []byte, u *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}

func truncate(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes])
}
