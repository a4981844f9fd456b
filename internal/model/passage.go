package model

type Category string

const (
	CategoryLiterature    Category = "literature"
	CategoryNonliterature Category = "nonliterature"
	CategoryGrammar       Category = "grammar"
	CategoryVocabulary    Category = "vocabulary"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryLiterature, CategoryNonliterature, CategoryGrammar, CategoryVocabulary:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyMiddle Difficulty = "middle"
	DifficultyHigh12 Difficulty = "high12"
	DifficultyHigh3  Difficulty = "high3"
	DifficultyOther  Difficulty = "other"
)

// DifficultyPriority fixes the display order of difficulty buckets on
// the teacher dashboards: middle school first, then grade 1-2, grade 3,
// then everything else.
func DifficultyPriority(d Difficulty) int {
	switch d {
	case DifficultyMiddle:
		return 0
	case DifficultyHigh12:
		return 1
	case DifficultyHigh3:
		return 2
	default:
		return 3
	}
}

// ContentBlock is one paragraph of a passage, optionally paired with an
// embedded check question and its answer.
type ContentBlock struct {
	Paragraph string `json:"para"`
	Question  string `json:"question,omitempty"`
	Answer    string `json:"answer,omitempty"`
}

// swagger:model Passage
type Passage struct {
	BaseModel
	Title       string         `gorm:"size:255;not null" json:"title"`
	Author      string         `gorm:"size:100" json:"author"`
	Category    Category       `gorm:"size:20;index" json:"category"`
	Subcategory string         `gorm:"size:50" json:"subcategory"`
	Difficulty  Difficulty     `gorm:"size:20;index" json:"difficulty"`
	SchoolLevel SchoolLevel    `gorm:"size:10" json:"schoolLevel"`
	Grade       int            `gorm:"index" json:"grade"`
	Blocks      []ContentBlock `gorm:"serializer:json" json:"contentBlocks"`
	ImageURL    string         `gorm:"size:255" json:"imageUrl,omitempty"`
	CreatedBy   uint           `gorm:"index" json:"createdBy"`

	Questions []Question `gorm:"foreignKey:PassageID" json:"questions,omitempty"`
}

func (Passage) TableName() string {
	return "passages"
}
