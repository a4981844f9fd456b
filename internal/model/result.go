package model

import (
	"fmt"
	"time"
)

// Result is one scored passage attempt by one student.
type Result struct {
	BaseModel
	StudentID uint     `gorm:"index;not null" json:"studentId"`
	PassageID uint     `gorm:"index;not null" json:"passageId"`
	Category  Category `gorm:"size:20;index" json:"category"`
	Score     int      `gorm:"not null" json:"score"`
	Total     int      `gorm:"not null" json:"total"`
	Correct   int      `gorm:"not null" json:"correct"`
}

func (Result) TableName() string {
	return "results"
}

// ExamResult is one scored exam attempt. Answers snapshots the
// submitted text keyed "itemIndex-questionIndex" so a regrade can
// recover what the student originally wrote.
type ExamResult struct {
	BaseModel
	StudentID   uint              `gorm:"index;not null" json:"studentId"`
	ExamID      uint              `gorm:"index;not null" json:"examId"`
	Score       int               `gorm:"not null" json:"score"`
	Answers     map[string]string `gorm:"serializer:json" json:"answers"`
	StartedAt   time.Time         `json:"startedAt"`
	CompletedAt time.Time         `json:"completedAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

// AnswerKey builds the snapshot key for one question of one item.
func AnswerKey(itemIndex, questionIndex int) string {
	return fmt.Sprintf("%d-%d", itemIndex, questionIndex)
}
