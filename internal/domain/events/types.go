package events

import (
	"encoding/json"
	"fmt"
)

// Message - общее событие
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode упаковывает событие в конверт и сериализует целиком.
// Результат можно отправлять нескольким получателям без повторного marshal.
func Encode(eventType string, data any) ([]byte, error) {
	msg := Message{Type: eventType}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s data: %w", eventType, err)
		}

		msg.Data = raw
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}

	return b, nil
}

// Decode разбирает data входящего события в v. Отсутствующий data оставляет v нулевым
func (m *Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(m.Data, v); err != nil {
		return fmt.Errorf("unmarshal %s data: %w", m.Type, err)
	}

	return nil
}
