package model

import "time"

// 搜索结果缺省字段占位
const (
	NoDescription = "No description available"
	NoDate        = "No date available"
)

// SearchHit 搜索协作方返回的原始结果
type SearchHit struct {
	Title       string
	Source      string // 结果 URL，去重键
	Description string
	Date        string // 原始日期文本，可能是 "3 days ago" 或 "May 13, 2025"
}

// Summary LLM 总结后的记录
type Summary struct {
	Product string
	Update  string
	Source  string
	Date    string
}

// Verdict 校验结论
type Verdict struct {
	Valid  bool
	Reason string
}

// Entry 去重记忆中保存的条目
type Entry struct {
	Summary Summary
	Verdict Verdict
}

// Update 最终导出的更新记录
type Update struct {
	Product string `json:"product"`
	Update  string `json:"update"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

// Run 单次流水线运行结果
type Run struct {
	ID         string    `json:"id"`
	Product    string    `json:"product"`
	Query      string    `json:"query"`
	StartedAt  time.Time `json:"started_at"`
	OutputPath string    `json:"output"`
	Updates    []Update  `json:"updates"`
}
