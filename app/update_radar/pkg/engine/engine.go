package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/search"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/validator"
)

// RefineThreshold 查询超过该长度（字符数）时先由模型改写
const RefineThreshold = 50

// Summarizer 总结协作方
type Summarizer interface {
	Summarize(ctx context.Context, hit model.SearchHit) (model.Summary, error)
	RefineQuery(ctx context.Context, query string) (string, error)
}

// Verifier 记录校验
type Verifier interface {
	Verify(rec model.Summary) model.Verdict
}

// Exporter 结果导出
type Exporter interface {
	Export(product string, updates []model.Update) (string, error)
}

// Archiver 运行结果归档（可选）
type Archiver interface {
	SaveRun(ctx context.Context, run *model.Run) error
}

// Options 引擎配置
type Options struct {
	Product      string
	NumResults   int
	Topic        string
	MaxMonthsOld int
}

// Deps 引擎依赖
type Deps struct {
	Searcher   search.Searcher
	Summarizer Summarizer
	Verifier   Verifier
	Exporter   Exporter
	Archiver   Archiver
	Logger     logrus.FieldLogger
	// ProgressCallback 可选，progress 取值 0-100
	ProgressCallback func(stage string, progress int)
}

// Engine 串行执行 搜索 -> 总结 -> 校验 -> 结构验证 -> 导出
type Engine struct {
	opts     Options
	searcher search.Searcher
	sum      Summarizer
	verifier Verifier
	exporter Exporter
	archiver Archiver
	log      logrus.FieldLogger
	progress func(stage string, progress int)

	// memory 以 source 为键记录已通过校验的条目，仅在进程内有效
	memory map[string]model.Entry
}

// NewEngine 创建引擎实例
func NewEngine(opts Options, deps Deps) (*Engine, error) {
	if opts.Product == "" {
		return nil, errors.New("product name is required")
	}
	if opts.NumResults <= 0 {
		return nil, fmt.Errorf("num results must be positive, got %d", opts.NumResults)
	}
	if deps.Searcher == nil || deps.Summarizer == nil || deps.Verifier == nil || deps.Exporter == nil {
		return nil, errors.New("searcher, summarizer, verifier and exporter are required")
	}

	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	e := &Engine{
		opts:     opts,
		searcher: deps.Searcher,
		sum:      deps.Summarizer,
		verifier: deps.Verifier,
		exporter: deps.Exporter,
		archiver: deps.Archiver,
		log:      log,
		progress: deps.ProgressCallback,
		memory:   make(map[string]model.Entry),
	}
	e.log.Infof("引擎初始化完成: 产品 [%s]，返回前 %d 条结果", opts.Product, opts.NumResults)
	return e, nil
}

// Memory 返回 source 对应的记忆条目
func (e *Engine) Memory(source string) (model.Entry, bool) {
	entry, ok := e.memory[source]
	return entry, ok
}

// Run 执行一次流水线，搜索或总结失败时中止且不导出
func (e *Engine) Run(ctx context.Context, query string) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.NewString(),
		Product:   e.opts.Product,
		StartedAt: time.Now(),
	}
	e.report("starting", 0)

	// 1. 改写过长的查询
	if q := strings.TrimSpace(query); utf8.RuneCountInString(q) > RefineThreshold {
		e.log.Infof("查询过长，正在改写: %s", query)
		refined, err := e.sum.RefineQuery(ctx, query)
		if err != nil {
			return nil, err
		}
		query = refined
	}
	run.Query = query

	// 2. 搜索，多取一倍结果以抵消过滤与去重损耗
	e.log.Infof("开始运行流水线，查询: '%s'", query)
	resp, err := e.searcher.Search(ctx, &search.Request{
		Query:        query,
		Topic:        e.opts.Topic,
		MaxResults:   2 * e.opts.NumResults,
		MaxAgeMonths: e.opts.MaxMonthsOld,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	hits := resp.Hits()
	e.report("searched", 10)

	// 3. 逐条总结、校验、结构验证
	var results []model.Update
	for i, hit := range hits {
		if _, seen := e.memory[hit.Source]; seen {
			e.log.Infof("跳过已处理的条目: %s", hit.Source)
			continue
		}

		e.log.Infof("正在总结: %s", hit.Title)
		summary, err := e.sum.Summarize(ctx, hit)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", hit.Source, err)
		}

		e.log.Infof("正在校验: %s", hit.Title)
		verdict := e.verifier.Verify(summary)
		if !verdict.Valid {
			e.log.Warnf("跳过: %s (%s)", summary.Source, verdict.Reason)
			continue
		}

		e.memory[hit.Source] = model.Entry{Summary: summary, Verdict: verdict}

		update, err := validator.Validate(summary, e.opts.Product)
		if err != nil {
			e.log.Errorf("结构校验失败 [%s]: %v", hit.Title, err)
			continue
		}
		e.log.Infof("结构校验通过: %s", hit.Title)
		results = append(results, update)

		e.report(fmt.Sprintf("processed: %s", hit.Source), 10+(i+1)*80/len(hits))
	}

	// 4. 按搜索顺序截断
	if len(results) > e.opts.NumResults {
		results = results[:e.opts.NumResults]
	}
	if results == nil {
		results = []model.Update{}
	}
	run.Updates = results

	// 5. 导出
	e.log.Infof("导出 %d 条有效结果", len(results))
	path, err := e.exporter.Export(e.opts.Product, results)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	run.OutputPath = path
	e.log.Infof("JSON 结果已保存到 %s", path)

	if e.archiver != nil {
		if err := e.archiver.SaveRun(ctx, run); err != nil {
			e.log.Errorf("归档运行结果失败: %v", err)
		}
	}

	e.report("completed", 100)
	return run, nil
}

func (e *Engine) report(stage string, progress int) {
	if e.progress != nil {
		e.progress(stage, progress)
	}
}
