package model

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUnknownMember      = errors.New("member not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrActivityDecided    = errors.New("activity already decided")
	ErrInvalidDecision    = errors.New("decision must be verified or rejected")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAlreadyCompleted   = errors.New("task already completed")
	ErrForbidden          = errors.New("not allowed to close this task")
	ErrInvalidTarget      = errors.New("task requires exactly one target")
)
