package domain

import (
	"errors"
	"strings"
)

// 请求参数取值范围
const (
	MinNumResults   = 1
	MaxNumResults   = 10
	MinMaxMonthsOld = 1
	MaxMaxMonthsOld = 12
)

// 请求校验错误
var (
	ErrEmptyProduct      = errors.New("product is required")
	ErrEmptyQuery        = errors.New("query is required")
	ErrNumResultsRange   = errors.New("num_results must be between 1 and 10")
	ErrMaxMonthsOldRange = errors.New("max_months_old must be between 1 and 12")
)

// Products 页面可选的产品，"Other" 表示自定义
var Products = []string{"Notion AI", "ChatGPT", "Grammarly", "GitHub Copilot", "Other"}

// RunRequest 一次流水线运行请求
type RunRequest struct {
	Product      string `json:"product"`
	Query        string `json:"query"`
	NumResults   int    `json:"num_results"`
	MaxMonthsOld int    `json:"max_months_old"`
}

// Validate 校验并规范化请求
func (r *RunRequest) Validate() error {
	r.Product = strings.TrimSpace(r.Product)
	r.Query = strings.TrimSpace(r.Query)

	switch {
	case r.Product == "":
		return ErrEmptyProduct
	case r.Query == "":
		return ErrEmptyQuery
	case r.NumResults < MinNumResults || r.NumResults > MaxNumResults:
		return ErrNumResultsRange
	case r.MaxMonthsOld < MinMaxMonthsOld || r.MaxMonthsOld > MaxMaxMonthsOld:
		return ErrMaxMonthsOldRange
	}
	return nil
}
