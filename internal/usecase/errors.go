package usecase

import "errors"

var (
	ErrRoomIDRequired    = errors.New("room_id is required")
	ErrTargetRequired    = errors.New("target is required")
	ErrUnknownCapability = errors.New("unknown capability")
	ErrMediaKindRequired = errors.New("media kind is required")
	ErrUnknownMediaKind  = errors.New("unknown media kind")
	ErrURLRequired       = errors.New("url is required")
	ErrInvalidPosition   = errors.New("position must not be negative")
	ErrChatTooLong       = errors.New("chat message is too long")
	ErrUnknownEventType  = errors.New("unknown message type")
)
