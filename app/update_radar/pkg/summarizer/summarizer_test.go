package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/logger"
	dm "github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

// mockChatModel 按顺序返回预设回复并记录输入
type mockChatModel struct {
	replies []string
	err     error
	calls   [][]*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls = append(m.calls, input)
	if m.err != nil {
		return nil, m.err
	}
	reply := ""
	if len(m.replies) > 0 {
		reply, m.replies = m.replies[0], m.replies[1:]
	}
	return &schema.Message{Role: schema.Assistant, Content: reply}, nil
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

type mockFetcher struct {
	text string
	err  error
}

func (f *mockFetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	return f.text, f.err
}

var sampleHit = dm.SearchHit{
	Title:       "What's New with Notion",
	Source:      "https://www.notion.com/releases",
	Description: "Notion 2.51: AI Meeting Notes, Enterprise Search & more",
	Date:        "May 13, 2025",
}

func TestSummarizer_Summarize(t *testing.T) {
	cm := &mockChatModel{replies: []string{" Notion ", "AI meeting notes added.\n"}}
	s := New(cm, &mockFetcher{text: "Full article body"}, nil, logger.Discard())

	got, err := s.Summarize(context.Background(), sampleHit)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	want := dm.Summary{
		Product: "Notion",
		Update:  "AI meeting notes added.",
		Source:  sampleHit.Source,
		Date:    sampleHit.Date,
	}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}

	if len(cm.calls) != 2 {
		t.Fatalf("model called %d times, want 2", len(cm.calls))
	}
	if !strings.Contains(cm.calls[0][0].Content, sampleHit.Title) {
		t.Errorf("subject prompt missing title: %q", cm.calls[0][0].Content)
	}
	if cm.calls[1][0].Role != schema.System || cm.calls[1][1].Content != "Full article body" {
		t.Errorf("article call = %+v", cm.calls[1])
	}
}

func TestSummarizer_FetchFailureUsesDescription(t *testing.T) {
	for _, f := range []*mockFetcher{{err: errors.New("timeout")}, {text: "   "}} {
		cm := &mockChatModel{replies: []string{"Notion", "summary"}}
		s := New(cm, f, nil, logger.Discard())

		if _, err := s.Summarize(context.Background(), sampleHit); err != nil {
			t.Fatalf("Summarize: %v", err)
		}
		if got := cm.calls[1][1].Content; got != sampleHit.Description {
			t.Errorf("article input = %q, want description", got)
		}
	}
}

func TestSummarizer_ModelErrorPropagates(t *testing.T) {
	upstream := errors.New("503 service unavailable")
	s := New(&mockChatModel{err: upstream}, nil, nil, logger.Discard())

	if _, err := s.Summarize(context.Background(), sampleHit); !errors.Is(err, upstream) {
		t.Errorf("Summarize error = %v, want wrapped upstream error", err)
	}
	if _, err := s.RefineQuery(context.Background(), "q"); !errors.Is(err, upstream) {
		t.Errorf("RefineQuery error = %v, want wrapped upstream error", err)
	}
}

func TestSummarizer_RefineQuery(t *testing.T) {
	cm := &mockChatModel{replies: []string{`"Notion AI new features"`}}
	s := New(cm, nil, nil, logger.Discard())

	got, err := s.RefineQuery(context.Background(), "I would like to know everything that changed in Notion AI over the past year")
	if err != nil {
		t.Fatalf("RefineQuery: %v", err)
	}
	if got != "Notion AI new features" {
		t.Errorf("RefineQuery() = %q", got)
	}
}

func TestNewLimiter(t *testing.T) {
	if l := NewLimiter(config.ConcurrencyConfig{}); l.Burst() != 1 {
		t.Errorf("unlimited burst = %d", l.Burst())
	}
	l := NewLimiter(config.ConcurrencyConfig{QPS: 3, RPM: 120})
	if l.Limit() != 2 || l.Burst() != 3 {
		t.Errorf("limiter = %v/%d, want 2/3", l.Limit(), l.Burst())
	}
}
