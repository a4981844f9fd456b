package service

import (
	"errors"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"gorm.io/gorm"
)

type WrongAnswerService struct {
	WrongRepo *repository.WrongAnswerRepository
}

func NewWrongAnswerService(wrongRepo *repository.WrongAnswerRepository) *WrongAnswerService {
	return &WrongAnswerService{WrongRepo: wrongRepo}
}

// WrongAnswerStats summarizes a student's review progress.
type WrongAnswerStats struct {
	Total      int64 `json:"total"`
	Reviewed   int64 `json:"reviewed"`
	Unreviewed int64 `json:"unreviewed"`
}

type WrongAnswerList struct {
	List  []model.WrongAnswerRecord `json:"list"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
	Stats WrongAnswerStats          `json:"stats"`
}

func (s *WrongAnswerService) ListForStudent(studentID uint, f repository.WrongAnswerFilter, page, limit int) (*WrongAnswerList, error) {
	recs, total, err := s.WrongRepo.ListByStudent(studentID, f, page, limit)
	if err != nil {
		return nil, err
	}

	all, err := s.WrongRepo.CountByStudent(studentID, nil)
	if err != nil {
		return nil, err
	}
	reviewed := true
	reviewedCount, err := s.WrongRepo.CountByStudent(studentID, &reviewed)
	if err != nil {
		return nil, err
	}

	return &WrongAnswerList{
		List:  recs,
		Total: total,
		Page:  page,
		Limit: limit,
		Stats: WrongAnswerStats{
			Total:      all,
			Reviewed:   reviewedCount,
			Unreviewed: all - reviewedCount,
		},
	}, nil
}

// ReviewOutcome reports one re-attempt against a wrong-answer record.
type ReviewOutcome struct {
	IsCorrect  bool    `json:"isCorrect"`
	Similarity float64 `json:"similarity"`
	Reviewed   bool    `json:"reviewed"`
}

// Review regrades a student's re-attempt against the record's stored
// correct answer and marks the record reviewed only when the re-attempt
// passes. The record must belong to the requesting student.
func (s *WrongAnswerService) Review(studentID, recordID uint, answer string) (*ReviewOutcome, error) {
	rec, err := s.WrongRepo.FindByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWrongAnswerNotFound
		}
		return nil, err
	}
	if rec.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}

	correct, similarity := JudgeAnswer(rec.QuestionType, answer, splitAnswers(rec.CorrectAnswer))

	if correct && !rec.Reviewed {
		now := time.Now()
		rec.Reviewed = true
		rec.ReviewedAt = &now
		if err := s.WrongRepo.Update(rec); err != nil {
			return nil, err
		}
	}

	return &ReviewOutcome{
		IsCorrect:  correct,
		Similarity: similarity,
		Reviewed:   rec.Reviewed,
	}, nil
}
