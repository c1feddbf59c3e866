package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

// ErrInvalidSource 来源不是合法的绝对 http(s) URL
var ErrInvalidSource = errors.New("source is not a valid absolute http(s) url")

// Validate 校验记录结构并生成导出记录，product 为流水线配置的产品名
func Validate(rec model.Summary, product string) (model.Update, error) {
	source, err := normalizeSource(rec.Source)
	if err != nil {
		return model.Update{}, err
	}

	return model.Update{
		Product: strings.TrimSpace(product),
		Update:  strings.TrimSpace(rec.Update),
		Source:  source,
		Date:    strings.TrimSpace(rec.Date),
	}, nil
}

func normalizeSource(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidSource, raw, err)
	}
	if !u.IsAbs() || u.Host == "" || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, raw)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: %q: unsupported scheme %s", ErrInvalidSource, raw, u.Scheme)
	}
	return u.String(), nil
}
