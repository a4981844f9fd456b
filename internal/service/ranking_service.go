package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const rankingCacheTTL = time.Minute

type RankingService struct {
	StudentRepo *repository.StudentRepository
	ResultRepo  *repository.ResultRepository
	Redis       *redis.Client
}

func NewRankingService(studentRepo *repository.StudentRepository, resultRepo *repository.ResultRepository, rdb *redis.Client) *RankingService {
	return &RankingService{
		StudentRepo: studentRepo,
		ResultRepo:  resultRepo,
		Redis:       rdb,
	}
}

// RankEntry is one leaderboard line. Name is withheld for everyone but
// the requester.
type RankEntry struct {
	StudentID uint    `json:"-"`
	Rank      int     `json:"rank"`
	Grade     int     `json:"grade"`
	Class     int     `json:"class"`
	Number    int     `json:"number"`
	Name      string  `json:"name,omitempty"`
	AvgScore  float64 `json:"avgScore"`
	Attempts  int     `json:"attempts"`
	IsMe      bool    `json:"isMe,omitempty"`
}

type Leaderboard struct {
	Scope  string      `json:"scope"`
	Top5   []RankEntry `json:"top5"`
	MyRank *RankEntry  `json:"myRank,omitempty"`
}

// GetRanking builds the leaderboard for the requester's class or grade.
// Students with no results are excluded. Ranks follow the gapped
// competition scheme: a tied mean score shares the previous rank and
// the next distinct score resumes at its position index.
func (s *RankingService) GetRanking(userID uint, scope string) (*Leaderboard, error) {
	me, err := s.StudentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	if scope != "grade" {
		scope = "class"
	}

	var class *int
	if scope == "class" {
		class = &me.Class
	}

	students, err := s.StudentRepo.ListByScope(me.Grade, class)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(students))
	byID := make(map[uint]model.Student, len(students))
	for i, st := range students {
		ids[i] = st.ID
		byID[st.ID] = st
	}

	scores, err := s.ResultRepo.ScoresByStudents(ids)
	if err != nil {
		return nil, err
	}

	entries := rankStudents(students, scores)

	board := &Leaderboard{Scope: scope}
	for i, e := range entries {
		if i >= 5 {
			break
		}
		entry := e
		if byID[e.StudentID].UserID != me.UserID {
			entry.Name = ""
		}
		board.Top5 = append(board.Top5, entry)
	}
	for _, e := range entries {
		if byID[e.StudentID].UserID == me.UserID {
			mine := e
			mine.IsMe = true
			board.MyRank = &mine
			break
		}
	}

	return board, nil
}

// rankStudents aggregates per-student mean scores (1-decimal rounding),
// drops zero-attempt students, sorts by mean desc then attempts desc,
// and assigns gapped competition ranks.
func rankStudents(students []model.Student, scores []repository.ScoreRow) []RankEntry {
	type agg struct {
		sum      int
		attempts int
	}
	byStudent := make(map[uint]*agg, len(students))
	for _, row := range scores {
		a, ok := byStudent[row.StudentID]
		if !ok {
			a = &agg{}
			byStudent[row.StudentID] = a
		}
		a.sum += row.Score
		a.attempts++
	}

	var entries []RankEntry
	for _, st := range students {
		a, ok := byStudent[st.ID]
		if !ok || a.attempts == 0 {
			continue
		}
		name := ""
		if st.User != nil {
			name = st.User.Name
		}
		entries = append(entries, RankEntry{
			StudentID: st.ID,
			Grade:     st.Grade,
			Class:     st.Class,
			Number:    st.Number,
			Name:      name,
			AvgScore:  roundTo1(float64(a.sum) / float64(a.attempts)),
			Attempts:  a.attempts,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AvgScore != entries[j].AvgScore {
			return entries[i].AvgScore > entries[j].AvgScore
		}
		return entries[i].Attempts > entries[j].Attempts
	})

	for i := range entries {
		if i > 0 && entries[i].AvgScore == entries[i-1].AvgScore {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	return entries
}

// GetRankingCached serves the leaderboard through a short-TTL redis
// cache when a client is configured; scores change often enough that
// a minute of staleness is acceptable for the board.
func (s *RankingService) GetRankingCached(ctx context.Context, userID uint, scope string) (*Leaderboard, error) {
	if s.Redis == nil {
		return s.GetRanking(userID, scope)
	}

	me, err := s.StudentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	// myRank is requester-specific, so the cache key includes the user
	key := fmt.Sprintf("ranking:%s:%d:%d:%d", scope, me.Grade, me.Class, userID)
	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var board Leaderboard
		if json.Unmarshal([]byte(cached), &board) == nil {
			return &board, nil
		}
	}

	board, err := s.GetRanking(userID, scope)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(board); err == nil {
		s.Redis.Set(ctx, key, data, rankingCacheTTL)
	}
	return board, nil
}
