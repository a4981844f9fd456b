package util

import "errors"

var (
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrPassageNotFound     = errors.New("passage not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrExamNotFound        = errors.New("exam not found")
	ErrExamNotPublished    = errors.New("exam not published")
	ErrResultNotFound      = errors.New("result not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrWrongAnswerNotFound = errors.New("wrong answer record not found")
)
