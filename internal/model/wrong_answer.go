package model

import "time"

// WrongAnswerRecord stores one incorrect submission for student review
// and regrade bookkeeping. Standalone question submissions set
// QuestionID; exam submissions and regrades set ExamResultID plus the
// item/question indices into the exam's stored item list.
type WrongAnswerRecord struct {
	BaseModel
	StudentID uint `gorm:"index;not null" json:"studentId"`

	QuestionID    *uint `gorm:"index" json:"questionId,omitempty"`
	ExamResultID  *uint `gorm:"index:idx_wrong_answers_result_pos" json:"examResultId,omitempty"`
	ItemIndex     int   `gorm:"index:idx_wrong_answers_result_pos" json:"itemIndex"`
	QuestionIndex int   `gorm:"index:idx_wrong_answers_result_pos" json:"questionIndex"`

	QuestionType  QuestionType `gorm:"size:20" json:"questionType"`
	Prompt        string       `gorm:"type:text" json:"prompt"`
	Submitted     string       `gorm:"type:text" json:"submitted"`
	CorrectAnswer string       `gorm:"type:text" json:"correctAnswer"`
	Explanation   string       `gorm:"type:text" json:"explanation"`
	Category      Category     `gorm:"size:20;index" json:"category"`

	Reviewed   bool       `gorm:"default:false;index" json:"reviewed"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

func (WrongAnswerRecord) TableName() string {
	return "wrong_answer_records"
}
