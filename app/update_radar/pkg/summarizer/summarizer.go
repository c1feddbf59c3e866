package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	dm "github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

const subjectPrompt = `You need to find out the main subject of a prompt. You don't need to answer the prompt.
Just reply with the subject only, no punctuation and no explanation.
Example:
    Prompt: Notion AI new features 2025
    Response: Notion AI

Prompt: %s
Response:`

const articleSystemPrompt = `You are an article summarization assistant. Summarize the following article concisely in a few words.
If no text is provided respond with an empty string.
Example: New meeting summary feature added.`

const refinePrompt = `Rewrite the following request as a short web search query of at most ten words.
Reply with the query only.

Request: %s`

// PageFetcher 抓取页面正文
type PageFetcher interface {
	FetchText(ctx context.Context, pageURL string) (string, error)
}

// Summarizer 基于 LLM 的总结协作方
type Summarizer struct {
	chatModel model.BaseChatModel
	fetcher   PageFetcher
	limiter   *rate.Limiter
	log       logrus.FieldLogger
}

// New 创建总结器。limiter 为空时不限流，fetcher 为空时直接使用搜索摘要
func New(cm model.BaseChatModel, fetcher PageFetcher, limiter *rate.Limiter, log logrus.FieldLogger) *Summarizer {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Summarizer{
		chatModel: cm,
		fetcher:   fetcher,
		limiter:   limiter,
		log:       log,
	}
}

// NewChatModel 根据配置初始化兼容 OpenAI 协议的模型
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (model.BaseChatModel, error) {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return cm, nil
}

// NewLimiter 按 RPM/QPS 构造限流器，RPM 为 0 时不限流
func NewLimiter(c config.ConcurrencyConfig) *rate.Limiter {
	if c.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := c.QPS
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(c.RPM)/60.0), burst)
}

// Summarize 抓取正文并调用两次模型：一次识别主题，一次总结更新内容
func (s *Summarizer) Summarize(ctx context.Context, hit dm.SearchHit) (dm.Summary, error) {
	text := s.pageText(ctx, hit)

	product, err := s.generate(ctx, []*schema.Message{
		{Role: schema.User, Content: fmt.Sprintf(subjectPrompt, hit.Title)},
	})
	if err != nil {
		return dm.Summary{}, fmt.Errorf("summarize title: %w", err)
	}

	update, err := s.generate(ctx, []*schema.Message{
		{Role: schema.System, Content: articleSystemPrompt},
		{Role: schema.User, Content: text},
	})
	if err != nil {
		return dm.Summary{}, fmt.Errorf("summarize article: %w", err)
	}

	return dm.Summary{
		Product: product,
		Update:  update,
		Source:  hit.Source,
		Date:    hit.Date,
	}, nil
}

// RefineQuery 将过长的查询改写为简短的搜索词
func (s *Summarizer) RefineQuery(ctx context.Context, query string) (string, error) {
	refined, err := s.generate(ctx, []*schema.Message{
		{Role: schema.User, Content: fmt.Sprintf(refinePrompt, query)},
	})
	if err != nil {
		return "", fmt.Errorf("refine query: %w", err)
	}
	return strings.Trim(refined, "\"'"), nil
}

func (s *Summarizer) pageText(ctx context.Context, hit dm.SearchHit) string {
	if s.fetcher == nil {
		return hit.Description
	}

	text, err := s.fetcher.FetchText(ctx, hit.Source)
	if err != nil {
		s.log.Warnf("抓取正文失败，使用搜索摘要 [%s]: %v", hit.Source, err)
		return hit.Description
	}
	if strings.TrimSpace(text) == "" {
		return hit.Description
	}
	return text
}

func (s *Summarizer) generate(ctx context.Context, messages []*schema.Message) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("empty model response")
	}
	return strings.TrimSpace(resp.Content), nil
}
