package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/update_radar/app/dashboard/internal/domain"
	"github.com/iWorld-y/update_radar/app/dashboard/internal/repo"
	"github.com/iWorld-y/update_radar/app/update_radar/pkg/model"
)

// RunUseCase 运行业务逻辑
type RunUseCase interface {
	Run(ctx context.Context, req *domain.RunRequest) (*model.Run, error)
	List(ctx context.Context, limit int) ([]*model.Run, error)
}

// RunReply POST /api/run 的返回体
type RunReply struct {
	Count   int            `json:"count"`
	Output  string         `json:"output"`
	Updates []model.Update `json:"updates"`
}

type errorReply struct {
	Error string `json:"error"`
}

type RadarService struct {
	uc  RunUseCase
	log *log.Helper
}

func NewRadarService(uc RunUseCase, logger log.Logger) *RadarService {
	return &RadarService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// Run 运行一次流水线并返回结果
func (s *RadarService) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req domain.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	run, err := s.uc.Run(r.Context(), &req)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}

	updates := run.Updates
	if updates == nil {
		updates = []model.Update{}
	}
	s.writeJSON(w, http.StatusOK, &RunReply{
		Count:   len(updates),
		Output:  run.OutputPath,
		Updates: updates,
	})
}

// ListRuns 列出最近的归档运行
func (s *RadarService) ListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		limit = n
	}

	runs, err := s.uc.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	if runs == nil {
		runs = []*model.Run{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// ListProducts 返回页面可选的产品
func (s *RadarService) ListProducts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.Products)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyProduct),
		errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrNumResultsRange),
		errors.Is(err, domain.ErrMaxMonthsOldRange):
		return http.StatusBadRequest
	case errors.Is(err, repo.ErrNoArchive):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *RadarService) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("写入响应失败: %v", err)
	}
}

func (s *RadarService) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Errorf("请求处理失败: %v", err)
	}
	s.writeJSON(w, status, &errorReply{Error: err.Error()})
}
