package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStudentNotFound    = errors.New("student not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrInvalidBirthday    = errors.New("birthday is not a valid date")
	ErrAgeOutOfRange      = errors.New("student must be between 5 and 12 years old")
	ErrSynthesisFailed    = errors.New("speech synthesis failed")
)
