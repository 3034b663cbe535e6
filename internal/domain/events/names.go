package events

// Входящие события
const (
	Join              = "join"
	JoinRequest       = "join-request"
	AcceptRequest     = "accept-request"
	RejectRequest     = "reject-request"
	RemoveParticipant = "remove-participant"
	Leave             = "leave"

	Offer     = "offer"
	Answer    = "answer"
	Candidate = "candidate"

	ToggleMedia      = "toggle-media"
	ScreenShareStart = "screen-share-start"
	ScreenShareStop  = "screen-share-stop"

	RequestControl = "request-control"
	GrantControl   = "grant-control"
	DenyControl    = "deny-control"

	WatchSetURL      = "watch-party:set-url"
	WatchPlay        = "watch-party:play"
	WatchPause       = "watch-party:pause"
	WatchSeek        = "watch-party:seek"
	WatchTimeUpdate  = "watch-party:time-update"
	WatchRequestSync = "watch-party:request-sync"
	WatchStop        = "watch-party:stop"

	ChatMessage = "chat-message"
	Ping        = "ping"
)

// Исходящие события. Часть имён совпадает с входящими (offer, chat-message, watch-party:play...)
const (
	Connected = "connected"
	Pong      = "pong"
	Error     = "error"

	UserJoined          = "user-joined"
	AllUsers            = "all-users"
	ParticipantsUpdated = "participants-updated"
	UserLeft            = "user-left"

	JoinPending    = "join-pending"
	JoinRequested  = "join-requested"
	PendingUpdated = "pending-updated"
	JoinAccepted   = "join-accepted"
	JoinRejected   = "join-rejected"
	Removed        = "removed"
	HostLeft       = "host-left"

	UserToggleMedia    = "user-toggle-media"
	ScreenShareStarted = "screen-share-started"
	ScreenShareStopped = "screen-share-stopped"

	ControlRequested = "control-requested"
	ControlGranted   = "control-granted"
	ControlDenied    = "control-denied"

	WatchURLChanged = "watch-party:url-changed"
	WatchSync       = "watch-party:sync"
	WatchStopped    = "watch-party:stopped"
)

// Причины отказа во входе
const (
	ReasonHostNotPresent = "host not present"
	ReasonHostLeft       = "host left"
	ReasonRejected       = "rejected by host"
)

// SignalKinds - типы, которые пересылаются как есть адресату
var SignalKinds = map[string]struct{}{
	Offer:     {},
	Answer:    {},
	Candidate: {},
}
