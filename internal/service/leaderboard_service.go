package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"quiz-folio/internal/cache"
	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultLeaderboardSize = 10

// LeaderboardService ranks quiz submissions
type LeaderboardService interface {
	// TopPerformers falls back to the configured size when n <= 0.
	TopPerformers(ctx context.Context, n int) (*dto.LeaderboardResponse, error)
	// Invalidate drops every cached ranking. Failures are logged only.
	Invalidate(ctx context.Context)
	ExportXLSX(ctx context.Context, n int) ([]byte, error)
	ExportPDF(ctx context.Context, n int) ([]byte, error)
}

type leaderboardService struct {
	submissions domain.SubmissionRepository
	cache       domain.Cache
	cfg         config.QuizConfig
	sfGroup     singleflight.Group
}

// NewLeaderboardService creates a new LeaderboardService. cache may be nil.
func NewLeaderboardService(submissions domain.SubmissionRepository, cache domain.Cache, cfg config.QuizConfig) LeaderboardService {
	return &leaderboardService{
		submissions: submissions,
		cache:       cache,
		cfg:         cfg,
	}
}

func (s *leaderboardService) size(n int) int {
	if n > 0 {
		return n
	}
	if s.cfg.LeaderboardSize > 0 {
		return s.cfg.LeaderboardSize
	}
	return defaultLeaderboardSize
}

func (s *leaderboardService) TopPerformers(ctx context.Context, n int) (*dto.LeaderboardResponse, error) {
	n = s.size(n)
	if s.cache == nil {
		return s.load(ctx, n)
	}

	key := cache.LeaderboardKey()
	field := strconv.Itoa(n)

	cached, err := s.cache.HGet(ctx, key, field)
	if err == nil {
		var resp dto.LeaderboardResponse
		errUnmarshal := json.Unmarshal([]byte(cached), &resp)
		if errUnmarshal == nil {
			return &resp, nil
		}
		logger.Get().Warn("Failed to decode cached leaderboard", zap.String("key", key), zap.Error(errUnmarshal))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Leaderboard cache read failed", zap.String("key", key), zap.Error(err))
	}

	// The load is shared by every waiter, so it must outlive the caller that started it.
	loadCtx := context.WithoutCancel(ctx)
	res, err, shared := s.sfGroup.Do(field, func() (interface{}, error) {
		resp, err := s.load(loadCtx, n)
		if err != nil {
			return nil, err
		}
		s.store(loadCtx, key, field, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Get().Debug("Leaderboard load shared", zap.Int("n", n))
	}

	resp, ok := res.(*dto.LeaderboardResponse)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected leaderboard type %T", res), nil)
	}
	return resp, nil
}

func (s *leaderboardService) load(ctx context.Context, n int) (*dto.LeaderboardResponse, error) {
	top, err := s.submissions.GetTopPerformers(ctx, n)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get top performers", err)
	}

	resp := &dto.LeaderboardResponse{Entries: make([]dto.LeaderboardEntry, 0, len(top))}
	for i, sub := range top {
		resp.Entries = append(resp.Entries, dto.LeaderboardEntry{
			Rank:           i + 1,
			Name:           sub.Name,
			Score:          sub.Score,
			TotalQuestions: sub.TotalQuestions,
			SubmittedAt:    sub.SubmittedAt,
		})
	}
	return resp, nil
}

func (s *leaderboardService) store(ctx context.Context, key, field string, resp *dto.LeaderboardResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Get().Warn("Failed to encode leaderboard", zap.Error(err))
		return
	}
	if err := s.cache.HSet(ctx, key, field, string(data)); err != nil {
		logger.Get().Warn("Failed to cache leaderboard", zap.String("key", key), zap.Error(err))
		return
	}
	if s.cfg.LeaderboardTTL > 0 {
		if err := s.cache.Expire(ctx, key, s.cfg.LeaderboardTTL); err != nil {
			logger.Get().Warn("Failed to set leaderboard expiry", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *leaderboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.LeaderboardKey()); err != nil {
		logger.Get().Warn("Failed to invalidate leaderboard cache", zap.Error(err))
	}
}

func (s *leaderboardService) ExportXLSX(ctx context.Context, n int) ([]byte, error) {
	resp, err := s.load(ctx, s.size(n))
	if err != nil {
		return nil, err
	}
	data, err := leaderboardXLSX(resp.Entries)
	if err != nil {
		return nil, domain.NewInternalError("Failed to export leaderboard", err)
	}
	return data, nil
}

func (s *leaderboardService) ExportPDF(ctx context.Context, n int) ([]byte, error) {
	resp, err := s.load(ctx, s.size(n))
	if err != nil {
		return nil, err
	}
	data, err := leaderboardPDF(resp.Entries)
	if err != nil {
		return nil, domain.NewInternalError("Failed to export leaderboard", err)
	}
	return data, nil
}
