package models

import "time"

// Room - живое состояние комнаты. Не потокобезопасно: все мутации идут из event loop.
type Room struct {
	ID        string
	CreatedAt time.Time

	Host        *Host
	ScreenShare *ControlOwner
	WatchParty  *WatchParty

	participants map[string]*Participant
	// order хранит порядок входа, он же порядок итерации
	order []string

	pending      map[string]*PendingRequest
	pendingOrder []string
}

func NewRoom(id string, now time.Time) *Room {
	return &Room{
		ID:           id,
		CreatedAt:    now,
		participants: make(map[string]*Participant),
		pending:      make(map[string]*PendingRequest),
	}
}

// AddParticipant добавляет участника. Повторный вход того же соединения заменяет запись
// без смены позиции. Возвращает true, если участник новый.
func (r *Room) AddParticipant(p *Participant) bool {
	if _, ok := r.participants[p.ConnectionID]; ok {
		r.participants[p.ConnectionID] = p
		return false
	}

	r.participants[p.ConnectionID] = p
	r.order = append(r.order, p.ConnectionID)

	return true
}

func (r *Room) RemoveParticipant(connectionID string) (*Participant, bool) {
	p, ok := r.participants[connectionID]
	if !ok {
		return nil, false
	}

	delete(r.participants, connectionID)
	r.order = removeID(r.order, connectionID)

	return p, true
}

func (r *Room) Participant(connectionID string) (*Participant, bool) {
	p, ok := r.participants[connectionID]
	return p, ok
}

// Participants возвращает копии участников в порядке входа
func (r *Room) Participants() []Participant {
	out := make([]Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.participants[id].clone())
	}

	return out
}

// ConnectionIDs возвращает id соединений участников, кроме exclude
func (r *Room) ConnectionIDs(exclude string) []string {
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if id != exclude {
			out = append(out, id)
		}
	}

	return out
}

// FirstParticipant - самый ранний из оставшихся участников
func (r *Room) FirstParticipant() (*Participant, bool) {
	if len(r.order) == 0 {
		return nil, false
	}

	return r.participants[r.order[0]], true
}

func (r *Room) Len() int {
	return len(r.participants)
}

func (r *Room) Empty() bool {
	return len(r.participants) == 0
}

func (r *Room) IsHost(connectionID string) bool {
	return r.Host != nil && r.Host.ConnectionID == connectionID
}

// AddPending ставит заявку в очередь. Повторная заявка от того же соединения заменяет прежнюю.
func (r *Room) AddPending(req *PendingRequest) bool {
	if _, ok := r.pending[req.ConnectionID]; ok {
		r.pending[req.ConnectionID] = req
		return false
	}

	r.pending[req.ConnectionID] = req
	r.pendingOrder = append(r.pendingOrder, req.ConnectionID)

	return true
}

func (r *Room) RemovePending(connectionID string) (*PendingRequest, bool) {
	req, ok := r.pending[connectionID]
	if !ok {
		return nil, false
	}

	delete(r.pending, connectionID)
	r.pendingOrder = removeID(r.pendingOrder, connectionID)

	return req, true
}

func (r *Room) Pending(connectionID string) (*PendingRequest, bool) {
	req, ok := r.pending[connectionID]
	return req, ok
}

func (r *Room) PendingRequests() []PendingRequest {
	out := make([]PendingRequest, 0, len(r.pendingOrder))
	for _, id := range r.pendingOrder {
		out = append(out, *r.pending[id])
	}

	return out
}

func (r *Room) PendingLen() int {
	return len(r.pending)
}

// ClearPending удаляет все заявки и возвращает их
func (r *Room) ClearPending() []PendingRequest {
	out := r.PendingRequests()

	r.pending = make(map[string]*PendingRequest)
	r.pendingOrder = nil

	return out
}

// Owner возвращает текущего владельца возможности или nil
func (r *Room) Owner(c Capability) *ControlOwner {
	switch c {
	case CapabilityScreenShare:
		return r.ScreenShare
	case CapabilityWatchParty:
		if r.WatchParty == nil {
			return nil
		}
		return &r.WatchParty.Controller
	default:
		return nil
	}
}

// SetOwner переназначает владельца. Для watch-party без активного просмотра возвращает false.
func (r *Room) SetOwner(c Capability, owner ControlOwner) bool {
	switch c {
	case CapabilityScreenShare:
		r.ScreenShare = &owner
		return true
	case CapabilityWatchParty:
		if r.WatchParty == nil {
			return false
		}
		r.WatchParty.Controller = owner
		return true
	default:
		return false
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
