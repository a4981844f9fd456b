package model

type QuestionType string

const (
	// multiple choice, graded by exact match against the single answer
	QuestionChoice QuestionType = "choice"
	// short answer, graded by similarity >= 0.9
	QuestionShort QuestionType = "short"
	// free response, graded by max similarity >= 0.7
	QuestionEssay QuestionType = "essay"
)

func (t QuestionType) Valid() bool {
	return t == QuestionChoice || t == QuestionShort || t == QuestionEssay
}

// Question belongs to a passage, or stands alone as a grammar/concept
// question when PassageID is nil.
type Question struct {
	BaseModel
	PassageID         *uint             `gorm:"index" json:"passageId,omitempty"`
	Type              QuestionType      `gorm:"size:20;not null" json:"type"`
	Prompt            string            `gorm:"type:text;not null" json:"prompt"`
	Options           []string          `gorm:"serializer:json" json:"options,omitempty"`
	Answers           []string          `gorm:"serializer:json" json:"answers"`
	Explanation       string            `gorm:"type:text" json:"explanation"`
	WrongExplanations map[string]string `gorm:"serializer:json" json:"wrongExplanations,omitempty"`
	Order             int               `gorm:"default:0" json:"order"`
	CreatedBy         uint              `gorm:"index" json:"createdBy"`
}

func (Question) TableName() string {
	return "questions"
}
