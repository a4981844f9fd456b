package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

const statsCacheTTL = 5 * time.Minute

type StatisticsService struct {
	StatsRepo *repository.StatisticsRepository
	Redis     *redis.Client
}

func NewStatisticsService(statsRepo *repository.StatisticsRepository, rdb *redis.Client) *StatisticsService {
	return &StatisticsService{StatsRepo: statsRepo, Redis: rdb}
}

// Statistics is the grouped-aggregation dashboard.
type Statistics struct {
	ByGrade       []repository.GroupStat  `json:"byGrade"`
	ByClass       []repository.GroupStat  `json:"byClass"`
	ByCategory    []repository.GroupStat  `json:"byCategory"`
	BySubcategory []repository.GroupStat  `json:"bySubcategory"`
	ByDifficulty  []repository.GroupStat  `json:"byDifficulty"`
	Trend         []repository.TrendPoint `json:"trend"`
}

func (s *StatisticsService) GetStatistics(ctx context.Context) (*Statistics, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, "stats:dashboard").Result(); err == nil {
			var stats Statistics
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats := &Statistics{}
	var err error

	if stats.ByGrade, err = s.StatsRepo.ByGrade(); err != nil {
		return nil, err
	}
	if stats.ByClass, err = s.StatsRepo.ByClass(); err != nil {
		return nil, err
	}
	if stats.ByCategory, err = s.StatsRepo.ByCategory(); err != nil {
		return nil, err
	}
	if stats.BySubcategory, err = s.StatsRepo.BySubcategory(); err != nil {
		return nil, err
	}
	if stats.ByDifficulty, err = s.StatsRepo.ByDifficulty(); err != nil {
		return nil, err
	}
	sortDifficulty(stats.ByDifficulty)

	if stats.Trend, err = s.StatsRepo.DailyTrend(time.Now().AddDate(0, 0, -30)); err != nil {
		return nil, err
	}

	for _, group := range [][]repository.GroupStat{
		stats.ByGrade, stats.ByClass, stats.ByCategory, stats.BySubcategory, stats.ByDifficulty,
	} {
		for i := range group {
			group[i].AvgScore = roundTo1(group[i].AvgScore)
		}
	}
	for i := range stats.Trend {
		stats.Trend[i].AvgScore = roundTo1(stats.Trend[i].AvgScore)
	}

	if s.Redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.Redis.Set(ctx, "stats:dashboard", data, statsCacheTTL)
		}
	}
	return stats, nil
}

// sortDifficulty orders buckets by the fixed difficulty priority:
// middle school, then grade 1-2, grade 3, then everything else.
func sortDifficulty(stats []repository.GroupStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		return model.DifficultyPriority(model.Difficulty(stats[i].Label)) <
			model.DifficultyPriority(model.Difficulty(stats[j].Label))
	})
}

func (s *StatisticsService) GetSummary() (*repository.Totals, error) {
	t, err := s.StatsRepo.Summary()
	if err != nil {
		return nil, err
	}
	t.OverallAvg = roundTo1(t.OverallAvg)
	return t, nil
}
