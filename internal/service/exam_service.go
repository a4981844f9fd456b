package service

import (
	"errors"
	"time"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"
	"reading_edu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo    *repository.ExamRepository
	ResultRepo  *repository.ResultRepository
	StudentRepo *repository.StudentRepository
	DB          *gorm.DB
}

func NewExamService(examRepo *repository.ExamRepository, resultRepo *repository.ResultRepository, studentRepo *repository.StudentRepository, db *gorm.DB) *ExamService {
	return &ExamService{
		ExamRepo:    examRepo,
		ResultRepo:  resultRepo,
		StudentRepo: studentRepo,
		DB:          db,
	}
}

type ExamRequest struct {
	Title       string            `json:"title" binding:"required"`
	Category    model.Category    `json:"category" binding:"required"`
	SchoolLevel model.SchoolLevel `json:"schoolLevel"`
	Grade       int               `json:"grade"`
	Difficulty  model.Difficulty  `json:"difficulty"`
	Type        model.ExamType    `json:"type"`
	Published   bool              `json:"published"`
	Items       []model.ExamItem  `json:"items" binding:"required,min=1"`
}

func (s *ExamService) Create(req ExamRequest, createdBy uint) (*model.Exam, error) {
	examType := req.Type
	if examType == "" {
		examType = model.ExamSelfStudy
	}
	e := &model.Exam{
		Title:       req.Title,
		Category:    req.Category,
		SchoolLevel: req.SchoolLevel,
		Grade:       req.Grade,
		Difficulty:  req.Difficulty,
		Type:        examType,
		Published:   req.Published,
		Items:       req.Items,
		CreatedBy:   createdBy,
	}
	if err := s.ExamRepo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExamService) Get(id uint) (*model.Exam, error) {
	e, err := s.ExamRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	return e, err
}

// GetForStudent returns only published exams to students.
func (s *ExamService) GetForStudent(id uint) (*model.Exam, error) {
	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !e.Published {
		return nil, util.ErrExamNotPublished
	}
	return e, nil
}

func (s *ExamService) List(f repository.ExamFilter, page, limit int) ([]model.Exam, int64, error) {
	return s.ExamRepo.List(f, page, limit)
}

func (s *ExamService) Update(id uint, req ExamRequest) (*model.Exam, error) {
	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	e.Title = req.Title
	e.Category = req.Category
	e.SchoolLevel = req.SchoolLevel
	e.Grade = req.Grade
	e.Difficulty = req.Difficulty
	if req.Type != "" {
		e.Type = req.Type
	}
	e.Published = req.Published
	e.Items = req.Items

	if err := s.ExamRepo.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExamService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.ExamRepo.Delete(id)
}

// ExamAttempt is the graded outcome of one exam submission.
type ExamAttempt struct {
	ResultID uint `json:"resultId"`
	Score    int  `json:"score"`
	Total    int  `json:"total"`
	Correct  int  `json:"correct"`
}

// SubmitAttempt grades an exam submission item by item. The submitted
// answers are snapshotted onto the ExamResult keyed by item/question
// index so regrades can recover the original text. ExamResult and all
// wrong-answer records are written in one transaction.
func (s *ExamService) SubmitAttempt(studentID, examID uint, answers map[string]string, startedAt time.Time) (*ExamAttempt, error) {
	e, err := s.GetForStudent(examID)
	if err != nil {
		return nil, err
	}

	total := e.TotalQuestions()
	attempt := &ExamAttempt{Total: total}
	var wrongRecs []model.WrongAnswerRecord

	for i, item := range e.Items {
		for j, q := range item.Questions {
			submitted := answers[model.AnswerKey(i, j)]

			correct, _ := JudgeAnswer(q.Type, submitted, q.Answers)
			monitoring.ObserveGrading(string(q.Type), correct)

			if correct {
				attempt.Correct++
				continue
			}
			wrongRecs = append(wrongRecs, model.WrongAnswerRecord{
				StudentID:     studentID,
				ItemIndex:     i,
				QuestionIndex: j,
				QuestionType:  q.Type,
				Prompt:        q.Prompt,
				Submitted:     submitted,
				CorrectAnswer: joinAnswers(q.Answers),
				Explanation:   q.Explanation,
				Category:      e.Category,
			})
		}
	}

	attempt.Score = RoundScore(attempt.Correct, total)

	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		result := &model.ExamResult{
			StudentID:   studentID,
			ExamID:      e.ID,
			Score:       attempt.Score,
			Answers:     answers,
			StartedAt:   startedAt,
			CompletedAt: time.Now(),
		}
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		attempt.ResultID = result.ID

		for i := range wrongRecs {
			wrongRecs[i].ExamResultID = &result.ID
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

// CompletionEntry is one student's standing against an exam.
type CompletionEntry struct {
	StudentID   uint       `json:"studentId"`
	Name        string     `json:"name"`
	Grade       int        `json:"grade"`
	Class       int        `json:"class"`
	Number      int        `json:"number"`
	Completed   bool       `json:"completed"`
	Score       int        `json:"score,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CompletionStatus lists every student in the exam's target grade with
// their latest attempt, if any.
func (s *ExamService) CompletionStatus(examID uint) ([]CompletionEntry, error) {
	e, err := s.Get(examID)
	if err != nil {
		return nil, err
	}

	students, err := s.StudentRepo.ListByScope(e.Grade, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}

	latest, err := s.ResultRepo.LatestExamResults(examID, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]CompletionEntry, len(students))
	for i, st := range students {
		entry := CompletionEntry{
			StudentID: st.ID,
			Grade:     st.Grade,
			Class:     st.Class,
			Number:    st.Number,
		}
		if st.User != nil {
			entry.Name = st.User.Name
		}
		if res, ok := latest[st.ID]; ok {
			entry.Completed = true
			entry.Score = res.Score
			completedAt := res.CompletedAt
			entry.CompletedAt = &completedAt
		}
		entries[i] = entry
	}
	return entries, nil
}
