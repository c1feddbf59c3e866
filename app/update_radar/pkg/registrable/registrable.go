package registrable

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Domain 返回 URL 的可注册域名（二级域名 + 公共后缀），例如
// https://www.youtube.com/watch -> youtube.com，https://blog.example.co.uk -> example.co.uk。
// 无法解析的 URL 返回空串。
func Domain(rawURL string) string {
	host := hostOf(strings.TrimSpace(rawURL))
	if host == "" {
		return ""
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return domain
}

func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
}
