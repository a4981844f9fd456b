package model

type ExamType string

const (
	ExamSelfStudy ExamType = "self"
	ExamAssigned  ExamType = "assigned"
	ExamGrammar   ExamType = "grammar"
)

func (t ExamType) Valid() bool {
	return t == ExamSelfStudy || t == ExamAssigned || t == ExamGrammar
}

// ExamQuestion is a question embedded in an exam item. Exams snapshot
// their questions at authoring time so later edits to the question bank
// do not change what students already took.
type ExamQuestion struct {
	Type              QuestionType      `json:"type"`
	Prompt            string            `json:"prompt"`
	Options           []string          `json:"options,omitempty"`
	Answers           []string          `json:"answers"`
	Explanation       string            `json:"explanation,omitempty"`
	WrongExplanations map[string]string `json:"wrongExplanations,omitempty"`
}

// ExamItem is one passage plus its ordered question list.
type ExamItem struct {
	Title     string         `json:"title"`
	Blocks    []ContentBlock `json:"contentBlocks"`
	Questions []ExamQuestion `json:"questions"`
}

// swagger:model Exam
type Exam struct {
	BaseModel
	Title       string      `gorm:"size:255;not null" json:"title"`
	Category    Category    `gorm:"size:20;index" json:"category"`
	SchoolLevel SchoolLevel `gorm:"size:10" json:"schoolLevel"`
	Grade       int         `gorm:"index" json:"grade"`
	Difficulty  Difficulty  `gorm:"size:20" json:"difficulty"`
	Type        ExamType    `gorm:"size:20;default:'self'" json:"type"`
	Published   bool        `gorm:"default:false;index" json:"published"`
	Items       []ExamItem  `gorm:"serializer:json" json:"items"`
	CreatedBy   uint        `gorm:"index" json:"createdBy"`
}

func (Exam) TableName() string {
	return "exams"
}

// TotalQuestions sums question-list lengths across all items.
func (e *Exam) TotalQuestions() int {
	total := 0
	for _, item := range e.Items {
		total += len(item.Questions)
	}
	return total
}
