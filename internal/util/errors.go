package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrDuplicateEntry   = errors.New("a journal entry already exists for today")
	ErrEntryLocked      = errors.New("entry can no longer be changed")
	ErrInvalidAnswers   = errors.New("answers do not match the question catalog")
	ErrNotGroupMember   = errors.New("join the group before posting")
	ErrAlreadyMember    = errors.New("already a member of this group")
	ErrGroupNameTaken   = errors.New("group name already taken")
	ErrWriteInProgress  = errors.New("another write for this user is in progress")
	ErrAIUnavailable    = errors.New("ai service unavailable")
	ErrLastAffirmation  = errors.New("at least one enabled affirmation is required")
	ErrUnknownExercise  = errors.New("unknown breathing exercise")
	ErrInvalidFile      = errors.New("invalid file")
)
