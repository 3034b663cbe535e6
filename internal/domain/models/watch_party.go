package models

import "time"

// WatchParty - авторитетное состояние совместного просмотра.
// Позиция хранится как показание часов плюс момент показания, тикающего таймера нет.
type WatchParty struct {
	URL        string
	Playing    bool
	Position   float64
	UpdatedAt  time.Time
	UpdatedBy  string
	Controller ControlOwner
}

type WatchPartySnapshot struct {
	URL        string       `json:"url"`
	Playing    bool         `json:"playing"`
	Position   float64      `json:"position"`
	UpdatedAt  time.Time    `json:"updated_at"`
	UpdatedBy  string       `json:"updated_by"`
	Controller ControlOwner `json:"controller"`
}

func NewWatchParty(url string, controller ControlOwner, now time.Time) *WatchParty {
	return &WatchParty{
		URL:        url,
		UpdatedAt:  now,
		UpdatedBy:  controller.Name,
		Controller: controller,
	}
}

// PositionAt экстраполирует позицию на момент now, если видео играет
func (w *WatchParty) PositionAt(now time.Time) float64 {
	if !w.Playing {
		return w.Position
	}

	elapsed := now.Sub(w.UpdatedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	return w.Position + elapsed
}

func (w *WatchParty) Update(playing bool, position float64, by string, now time.Time) {
	w.Playing = playing
	w.Position = position
	w.UpdatedAt = now
	w.UpdatedBy = by
}

func (w *WatchParty) Seek(position float64, by string, now time.Time) {
	w.Update(w.Playing, position, by, now)
}

func (w *WatchParty) Snapshot(now time.Time) WatchPartySnapshot {
	return WatchPartySnapshot{
		URL:        w.URL,
		Playing:    w.Playing,
		Position:   w.PositionAt(now),
		UpdatedAt:  w.UpdatedAt,
		UpdatedBy:  w.UpdatedBy,
		Controller: w.Controller,
	}
}
