package service

import (
	"errors"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"
	"reading_edu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type PassageService struct {
	PassageRepo *repository.PassageRepository
	ResultRepo  *repository.ResultRepository
	DB          *gorm.DB
}

func NewPassageService(passageRepo *repository.PassageRepository, resultRepo *repository.ResultRepository, db *gorm.DB) *PassageService {
	return &PassageService{
		PassageRepo: passageRepo,
		ResultRepo:  resultRepo,
		DB:          db,
	}
}

type PassageRequest struct {
	Title       string               `json:"title" binding:"required"`
	Author      string               `json:"author"`
	Category    model.Category       `json:"category" binding:"required"`
	Subcategory string               `json:"subcategory"`
	Difficulty  model.Difficulty     `json:"difficulty"`
	SchoolLevel model.SchoolLevel    `json:"schoolLevel"`
	Grade       int                  `json:"grade"`
	Blocks      []model.ContentBlock `json:"contentBlocks" binding:"required,min=1"`
}

func (s *PassageService) Create(req PassageRequest, createdBy uint) (*model.Passage, error) {
	p := &model.Passage{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Difficulty:  req.Difficulty,
		SchoolLevel: req.SchoolLevel,
		Grade:       req.Grade,
		Blocks:      req.Blocks,
		CreatedBy:   createdBy,
	}
	if err := s.PassageRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PassageService) Get(id uint) (*model.Passage, error) {
	p, err := s.PassageRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPassageNotFound
	}
	return p, err
}

func (s *PassageService) GetWithQuestions(id uint) (*model.Passage, error) {
	p, err := s.PassageRepo.FindByIDWithQuestions(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPassageNotFound
	}
	return p, err
}

func (s *PassageService) List(f repository.PassageFilter, page, limit int) ([]model.Passage, int64, error) {
	return s.PassageRepo.List(f, page, limit)
}

func (s *PassageService) Update(id uint, req PassageRequest) (*model.Passage, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	p.Title = req.Title
	p.Author = req.Author
	p.Category = req.Category
	p.Subcategory = req.Subcategory
	p.Difficulty = req.Difficulty
	p.SchoolLevel = req.SchoolLevel
	p.Grade = req.Grade
	p.Blocks = req.Blocks

	if err := s.PassageRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PassageService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.PassageRepo.Delete(id)
}

func (s *PassageService) SetImageURL(id uint, url string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.PassageRepo.UpdateImageURL(id, url)
}

// PassageAttempt is the graded outcome of a whole passage attempt.
type PassageAttempt struct {
	ResultID uint          `json:"resultId"`
	Score    int           `json:"score"`
	Total    int           `json:"total"`
	Correct  int           `json:"correct"`
	Details  []GradeResult `json:"details"`
}

// SubmitAttempt grades every question of a passage in order and stores
// one Result plus a wrong-answer record per incorrect answer, all in a
// single transaction.
func (s *PassageService) SubmitAttempt(studentID, passageID uint, answers []string) (*PassageAttempt, error) {
	p, err := s.GetWithQuestions(passageID)
	if err != nil {
		return nil, err
	}
	if len(p.Questions) == 0 {
		return nil, util.ErrQuestionNotFound
	}

	attempt := &PassageAttempt{Total: len(p.Questions)}
	var wrongRecs []model.WrongAnswerRecord

	for i, q := range p.Questions {
		submitted := ""
		if i < len(answers) {
			submitted = answers[i]
		}

		correct, similarity := JudgeAnswer(q.Type, submitted, q.Answers)
		monitoring.ObserveGrading(string(q.Type), correct)

		detail := GradeResult{
			IsCorrect:     correct,
			Similarity:    similarity,
			CorrectAnswer: joinAnswers(q.Answers),
			Explanation:   q.Explanation,
		}
		attempt.Details = append(attempt.Details, detail)

		if correct {
			attempt.Correct++
		} else {
			qID := q.ID
			wrongRecs = append(wrongRecs, model.WrongAnswerRecord{
				StudentID:     studentID,
				QuestionID:    &qID,
				QuestionType:  q.Type,
				Prompt:        q.Prompt,
				Submitted:     submitted,
				CorrectAnswer: detail.CorrectAnswer,
				Explanation:   q.Explanation,
				Category:      p.Category,
			})
		}
	}

	attempt.Score = RoundScore(attempt.Correct, attempt.Total)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		result := &model.Result{
			StudentID: studentID,
			PassageID: p.ID,
			Category:  p.Category,
			Score:     attempt.Score,
			Total:     attempt.Total,
			Correct:   attempt.Correct,
		}
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		attempt.ResultID = result.ID

		for i := range wrongRecs {
			if err := tx.Create(&wrongRecs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return attempt, nil
}
