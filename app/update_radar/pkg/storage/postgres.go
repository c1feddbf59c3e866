package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/update_radar/app/update_radar/pkg/config"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

// DefaultListLimit ListRuns 的默认条数
const DefaultListLimit = 20

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Storage 运行结果归档，仅写入历史，不回读到去重记忆
type Storage struct {
	db *sql.DB
}

func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS update_runs (
			id TEXT PRIMARY KEY,
			product TEXT NOT NULL,
			query TEXT,
			output_path TEXT,
			update_count INTEGER,
			started_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS run_updates (
			id SERIAL PRIMARY KEY,
			run_id TEXT REFERENCES update_runs(id) ON DELETE CASCADE,
			position INTEGER,
			product TEXT,
			update_text TEXT,
			source TEXT,
			date_text TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_update_runs_started_at ON update_runs (started_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveRun 在一个事务内写入运行记录及其更新条目
func (s *Storage) SaveRun(ctx context.Context, run *model.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query, args, err := insertRunQuery(run).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build run insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if len(run.Updates) > 0 {
		query, args, err = insertUpdatesQuery(run.ID, run.Updates).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build updates insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert updates: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns 按开始时间倒序返回最近的运行记录
func (s *Storage) ListRuns(ctx context.Context, limit int) ([]*model.Run, error) {
	query, args, err := listRunsQuery(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build runs query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	byID := make(map[string]*model.Run)
	for rows.Next() {
		var run model.Run
		var q, out sql.NullString
		if err := rows.Scan(&run.ID, &run.Product, &q, &out, &run.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Query, run.OutputPath = q.String, out.String
		run.Updates = []model.Update{}
		runs = append(runs, &run)
		byID[run.ID] = &run
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return runs, nil
	}

	ids := make([]string, 0, len(runs))
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	if err := s.loadUpdates(ctx, ids, byID); err != nil {
		return nil, err
	}
	return runs, nil
}

func (s *Storage) loadUpdates(ctx context.Context, ids []string, byID map[string]*model.Run) error {
	query, args, err := listUpdatesQuery(ids).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build updates query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query updates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var runID string
		var u model.Update
		if err := rows.Scan(&runID, &u.Product, &u.Update, &u.Source, &u.Date); err != nil {
			return fmt.Errorf("failed to scan update: %w", err)
		}
		if run, ok := byID[runID]; ok {
			run.Updates = append(run.Updates, u)
		}
	}
	return rows.Err()
}

func insertRunQuery(run *model.Run) sq.InsertBuilder {
	return psql.Insert("update_runs").
		Columns("id", "product", "query", "output_path", "update_count", "started_at").
		Values(run.ID, run.Product, run.Query, run.OutputPath, len(run.Updates), run.StartedAt)
}

func insertUpdatesQuery(runID string, updates []model.Update) sq.InsertBuilder {
	b := psql.Insert("run_updates").
		Columns("run_id", "position", "product", "update_text", "source", "date_text")
	for i, u := range updates {
		b = b.Values(runID, i, u.Product, u.Update, u.Source, u.Date)
	}
	return b
}

func listRunsQuery(limit int) sq.SelectBuilder {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return psql.Select("id", "product", "query", "output_path", "started_at").
		From("update_runs").
		OrderBy("started_at DESC").
		Limit(uint64(limit))
}

func listUpdatesQuery(ids []string) sq.SelectBuilder {
	return psql.Select("run_id", "product", "update_text", "source", "date_text").
		From("run_updates").
		Where(sq.Eq{"run_id": ids}).
		OrderBy("run_id", "position")
}
