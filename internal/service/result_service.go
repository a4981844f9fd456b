package service

import (
	"errors"

	"reading_edu_backend/internal/model"
	"reading_edu_backend/internal/repository"
	"reading_edu_backend/internal/util"

	"gorm.io/gorm"
)

type ResultService struct {
	ResultRepo *repository.ResultRepository
	WrongRepo  *repository.WrongAnswerRepository
	DB         *gorm.DB
}

func NewResultService(resultRepo *repository.ResultRepository, wrongRepo *repository.WrongAnswerRepository, db *gorm.DB) *ResultService {
	return &ResultService{
		ResultRepo: resultRepo,
		WrongRepo:  wrongRepo,
		DB:         db,
	}
}

// ResultStats summarizes a student's attempts.
type ResultStats struct {
	Count    int     `json:"count"`
	AvgScore float64 `json:"avgScore"`
	Best     int     `json:"best"`
}

// StudentResults bundles a student's passage and exam results with
// summary stats over both.
type StudentResults struct {
	Results     []model.Result     `json:"results"`
	ExamResults []model.ExamResult `json:"examResults"`
	Stats       ResultStats        `json:"stats"`
}

func (s *ResultService) ListForStudent(studentID uint, category model.Category) (*StudentResults, error) {
	results, err := s.ResultRepo.ListByStudent(studentID, category)
	if err != nil {
		return nil, err
	}
	examResults, err := s.ResultRepo.ListExamResultsByStudent(studentID)
	if err != nil {
		return nil, err
	}

	out := &StudentResults{Results: results, ExamResults: examResults}
	sum := 0
	for _, r := range results {
		sum += r.Score
		if r.Score > out.Stats.Best {
			out.Stats.Best = r.Score
		}
		out.Stats.Count++
	}
	for _, r := range examResults {
		sum += r.Score
		if r.Score > out.Stats.Best {
			out.Stats.Best = r.Score
		}
		out.Stats.Count++
	}
	if out.Stats.Count > 0 {
		out.Stats.AvgScore = roundTo1(float64(sum) / float64(out.Stats.Count))
	}
	return out, nil
}

// ListAll pages every exam attempt with student identity for the
// teacher's results view.
func (s *ResultService) ListAll(examID *uint, page, limit int) ([]repository.ExportRow, int64, error) {
	return s.ResultRepo.ListExamResultRows(examID, page, limit)
}

// UpdateGrading lets a teacher flip the correctness of one question of
// one exam attempt. The wrong-answer set and the stored score are
// reconciled in a single transaction: delete the record when flipping
// to correct, create one (dedup-checked) when flipping to incorrect,
// then recompute score = round((total-wrong)/total*100) from the
// current record count. Repeating the same call is a no-op.
func (s *ResultService) UpdateGrading(resultID uint, itemIndex, questionIndex int, isCorrect bool) (*model.ExamResult, error) {
	var updated *model.ExamResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var res model.ExamResult
		if err := tx.First(&res, resultID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrResultNotFound
			}
			return err
		}

		var exam model.Exam
		if err := tx.First(&exam, res.ExamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrExamNotFound
			}
			return err
		}

		if itemIndex < 0 || itemIndex >= len(exam.Items) {
			return util.ErrQuestionNotFound
		}
		item := exam.Items[itemIndex]
		if questionIndex < 0 || questionIndex >= len(item.Questions) {
			return util.ErrQuestionNotFound
		}
		q := item.Questions[questionIndex]

		var rec model.WrongAnswerRecord
		findErr := tx.Where("exam_result_id = ? AND item_index = ? AND question_index = ?",
			res.ID, itemIndex, questionIndex).First(&rec).Error
		exists := findErr == nil
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if isCorrect && exists {
			if err := tx.Delete(&rec).Error; err != nil {
				return err
			}
		}
		if !isCorrect && !exists {
			newRec := model.WrongAnswerRecord{
				StudentID:     res.StudentID,
				ExamResultID:  &res.ID,
				ItemIndex:     itemIndex,
				QuestionIndex: questionIndex,
				QuestionType:  q.Type,
				Prompt:        q.Prompt,
				Submitted:     res.Answers[model.AnswerKey(itemIndex, questionIndex)],
				CorrectAnswer: joinAnswers(q.Answers),
				Explanation:   q.Explanation,
				Category:      exam.Category,
			}
			if err := tx.Create(&newRec).Error; err != nil {
				return err
			}
		}

		total := exam.TotalQuestions()

		var wrongCount int64
		if err := tx.Model(&model.WrongAnswerRecord{}).
			Where("exam_result_id = ?", res.ID).
			Count(&wrongCount).Error; err != nil {
			return err
		}

		score := 0
		if total > 0 {
			score = RoundScore(total-int(wrongCount), total)
		}

		if err := tx.Model(&res).Update("score", score).Error; err != nil {
			return err
		}
		res.Score = score
		updated = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func roundTo1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}
