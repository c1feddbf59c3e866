package datenorm

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Month 相对日期里的“月”，固定按 30 天近似，不按日历计算
const Month = 30 * 24 * time.Hour

var relativePattern = regexp.MustCompile(`^(\d+)\s+(minute|hour|day|week|month)s?\s+ago$`)

var unitSeconds = map[string]int64{
	"minute": int64(time.Minute / time.Second),
	"hour":   int64(time.Hour / time.Second),
	"day":    int64(24 * time.Hour / time.Second),
	"week":   int64(7 * 24 * time.Hour / time.Second),
	"month":  int64(Month / time.Second),
}

// Earliest 相对日期的下限，超出可表示范围的跨度会被截断到这一刻
var Earliest = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// Normalizer 将各种日期文本归一化为时间点
type Normalizer struct {
	now func() time.Time
}

// Option Normalizer 可选项
type Option func(*Normalizer)

// WithClock 指定“当前时间”来源
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// New 创建日期归一化器
func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Now 返回归一化器使用的当前时间
func (n *Normalizer) Now() time.Time {
	return n.now()
}

// Parse 解析日期文本，无法解析时第二个返回值为 false
func (n *Normalizer) Parse(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	now := n.now()
	if m := relativePattern.FindStringSubmatch(strings.ToLower(text)); m != nil {
		return relative(now, m[1], unitSeconds[m[2]]), true
	}

	t, err := dateparse.ParseIn(text, now.Location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// relative 以整秒计算 now 之前 count 个单位的时间点，不经过 time.Duration 以免溢出
func relative(now time.Time, digits string, unit int64) time.Time {
	floor := Earliest.In(now.Location())
	count, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return floor
	}

	span := now.Unix() - Earliest.Unix()
	if count > span/unit {
		return floor
	}
	return time.Unix(now.Unix()-count*unit, int64(now.Nanosecond())).In(now.Location())
}
