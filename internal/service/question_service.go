package service

import (
	"errors"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"
	"reading_edu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	WrongRepo    *repository.WrongAnswerRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, wrongRepo *repository.WrongAnswerRepository) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		WrongRepo:    wrongRepo,
	}
}

type QuestionRequest struct {
	PassageID         *uint              `json:"passageId"`
	Type              model.QuestionType `json:"type" binding:"required"`
	Prompt            string             `json:"prompt" binding:"required"`
	Options           []string           `json:"options"`
	Answers           []string           `json:"answers" binding:"required,min=1"`
	Explanation       string             `json:"explanation"`
	WrongExplanations map[string]string  `json:"wrongExplanations"`
	Order             int                `json:"order"`
}

func (s *QuestionService) Create(req QuestionRequest, createdBy uint) (*model.Question, error) {
	q := &model.Question{
		PassageID:         req.PassageID,
		Type:              req.Type,
		Prompt:            req.Prompt,
		Options:           req.Options,
		Answers:           req.Answers,
		Explanation:       req.Explanation,
		WrongExplanations: req.WrongExplanations,
		Order:             req.Order,
		CreatedBy:         createdBy,
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *QuestionService) List(f repository.QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	return s.QuestionRepo.List(f, page, limit)
}

func (s *QuestionService) Update(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	q.PassageID = req.PassageID
	q.Type = req.Type
	q.Prompt = req.Prompt
	q.Options = req.Options
	q.Answers = req.Answers
	q.Explanation = req.Explanation
	q.WrongExplanations = req.WrongExplanations
	q.Order = req.Order

	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.QuestionRepo.Delete(id)
}

// GradeResult is the student-facing outcome of one submission.
type GradeResult struct {
	IsCorrect     bool    `json:"isCorrect"`
	Similarity    float64 `json:"similarity"`
	CorrectAnswer string  `json:"correctAnswer"`
	Explanation   string  `json:"explanation"`
}

// SubmitAnswer grades one submission against a standalone question and
// records a wrong answer on an incorrect verdict. This path appends a
// record on every incorrect submission without checking for an existing
// one at the same (student, question) pair; the regrade path dedups.
func (s *QuestionService) SubmitAnswer(studentID, questionID uint, submitted string) (*GradeResult, error) {
	q, err := s.Get(questionID)
	if err != nil {
		return nil, err
	}

	correct, similarity := JudgeAnswer(q.Type, submitted, q.Answers)
	monitoring.ObserveGrading(string(q.Type), correct)

	res := &GradeResult{
		IsCorrect:     correct,
		Similarity:    similarity,
		CorrectAnswer: joinAnswers(q.Answers),
		Explanation:   q.Explanation,
	}

	if !correct {
		rec := &model.WrongAnswerRecord{
			StudentID:     studentID,
			QuestionID:    &q.ID,
			QuestionType:  q.Type,
			Prompt:        q.Prompt,
			Submitted:     submitted,
			CorrectAnswer: res.CorrectAnswer,
			Explanation:   q.Explanation,
			Category:      model.CategoryGrammar,
		}
		if err := s.WrongRepo.Create(rec); err != nil {
			return nil, err
		}
	}

	return res, nil
}
