package search

import (
	"context"
	"strings"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
	// MaxAgeMonths 结果的最大月龄，0 表示不限制，提供方可据此收窄时间范围
	MaxAgeMonths int
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}

// Hit 将搜索结果归一化为 SearchHit，缺失的摘要与日期填入占位文本
func (r Result) Hit() model.SearchHit {
	hit := model.SearchHit{
		Title:       strings.TrimSpace(r.Title),
		Source:      strings.TrimSpace(r.URL),
		Description: strings.TrimSpace(r.Content),
		Date:        strings.TrimSpace(r.PublishedDate),
	}
	if hit.Description == "" {
		hit.Description = model.NoDescription
	}
	if hit.Date == "" {
		hit.Date = model.NoDate
	}
	return hit
}

// Hits 归一化整组结果
func (r *Response) Hits() []model.SearchHit {
	if r == nil {
		return nil
	}
	hits := make([]model.SearchHit, 0, len(r.Results))
	for _, res := range r.Results {
		hits = append(hits, res.Hit())
	}
	return hits
}

// Truncate 截断到 limit 条，limit <= 0 时不截断
func Truncate(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
