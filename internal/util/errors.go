package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTestNotFound        = errors.New("test not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrTestHasNoQuestions  = errors.New("test has no questions")
)
