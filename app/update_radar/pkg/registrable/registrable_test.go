package registrable

import "testing"

func TestDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=x", "youtube.com"},
		{"https://blog.example.co.uk/post", "example.co.uk"},
		{"https://www.notion.com/releases", "notion.com"},
		{"http://old.reddit.com:8080/r/golang", "reddit.com"},
		{"HTTPS://WWW.YouTube.COM/", "youtube.com"},
		{"www.reddit.com/r/notion", "reddit.com"},
		{"example.com", "example.com"},
	}

	for _, tt := range tests {
		if got := Domain(tt.url); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestDomain_Malformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "http://", "://", "https://co.uk/", "http://%zz"} {
		if got := Domain(raw); got != "" {
			t.Errorf("Domain(%q) = %q, want empty", raw, got)
		}
	}
}
