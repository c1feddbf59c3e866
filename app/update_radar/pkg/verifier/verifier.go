package verifier

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/datenorm"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/registrable"
)

// 校验结论原因
const (
	ReasonEmptyUpdate    = "Empty update text"
	ReasonUnparsableDate = "Unparsable date"
	ReasonVerified       = "Verified"
	reasonBlacklistedFmt = "Blacklisted domain: %s"
	reasonOutdatedFmt    = "Outdated (%d months old)"
)

// DefaultMaxMonthsOld 默认最大月龄
const DefaultMaxMonthsOld = 6

// DefaultBlacklist 默认屏蔽的域名
var DefaultBlacklist = []string{"youtube.com", "reddit.com"}

var nonContent = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Verifier 过滤内容为空、来源不可信或过旧的记录
type Verifier struct {
	maxMonthsOld int
	blacklist    map[string]struct{}
	dates        *datenorm.Normalizer
}

// New 创建校验器，blacklist 为空时不屏蔽任何域名
func New(maxMonthsOld int, blacklist []string, dates *datenorm.Normalizer) *Verifier {
	if dates == nil {
		dates = datenorm.New()
	}

	set := make(map[string]struct{}, len(blacklist))
	for _, d := range blacklist {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			set[d] = struct{}{}
		}
	}

	return &Verifier{
		maxMonthsOld: maxMonthsOld,
		blacklist:    set,
		dates:        dates,
	}
}

// Verify 依次检查内容、域名与时效，遇到第一个失败即返回
func (v *Verifier) Verify(rec model.Summary) model.Verdict {
	if !hasContent(rec.Update) {
		return model.Verdict{Valid: false, Reason: ReasonEmptyUpdate}
	}

	if domain := registrable.Domain(rec.Source); domain != "" {
		if _, blocked := v.blacklist[domain]; blocked {
			return model.Verdict{Valid: false, Reason: fmt.Sprintf(reasonBlacklistedFmt, domain)}
		}
	}

	dt, ok := v.dates.Parse(rec.Date)
	if !ok {
		return model.Verdict{Valid: true, Reason: ReasonUnparsableDate}
	}

	if age := AgeInMonths(v.dates.Now(), dt); age > v.maxMonthsOld {
		return model.Verdict{Valid: false, Reason: fmt.Sprintf(reasonOutdatedFmt, age)}
	}

	return model.Verdict{Valid: true, Reason: ReasonVerified}
}

// AgeInMonths 按年月差计算月龄，忽略日
func AgeInMonths(now, dt time.Time) int {
	return (now.Year()-dt.Year())*12 + int(now.Month()) - int(dt.Month())
}

func hasContent(text string) bool {
	return strings.TrimSpace(nonContent.ReplaceAllString(text, "")) != ""
}
