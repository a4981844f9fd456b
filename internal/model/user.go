package model

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student';index" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// SchoolLevel distinguishes middle and high school students.
type SchoolLevel string

const (
	SchoolMiddle SchoolLevel = "middle"
	SchoolHigh   SchoolLevel = "high"
)

func (l SchoolLevel) Valid() bool {
	return l == SchoolMiddle || l == SchoolHigh
}

// Student is the school-identity profile attached to a user with the
// student role. Grade/Class/Number locate the student for rankings and
// exam assignment. Created in the same transaction as its User.
type Student struct {
	BaseModel
	UserID      uint        `gorm:"uniqueIndex;not null" json:"userId"`
	User        *User       `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	SchoolLevel SchoolLevel `gorm:"size:10;default:'high'" json:"schoolLevel"`
	Grade       int         `gorm:"index:idx_students_grade_class" json:"grade"`
	Class       int         `gorm:"index:idx_students_grade_class" json:"class"`
	Number      int         `json:"number"`
}

func (Student) TableName() string {
	return "students"
}
