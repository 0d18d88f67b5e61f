package domain

import "errors"

var (
	ErrVideoNotFound        = errors.New("video not found")
	ErrBusinessNotFound     = errors.New("business not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationExists   = errors.New("conversation already exists")
	ErrSelfConversation     = errors.New("cannot open a conversation with yourself")
)
