package constant

// Ключи атрибутов для slog
const (
	Error        = "error"
	ConnectionID = "connection_id"
	RoomID       = "room_id"
	UserID       = "user_id"
	UserName     = "user_name"
	TargetID     = "target_id"
	EventType    = "event_type"
	Capability   = "capability"
	Op           = "op"
)
