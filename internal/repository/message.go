package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/model"
)

// Messages lists all contact-form submissions, newest first.
func (r *Repository) Messages(ctx context.Context) ([]model.Message, error) {
	raw, err := r.gw.List(ctx, gateway.MessagesRoot)
	if err != nil {
		return nil, err
	}

	msgs := make([]model.Message, 0, len(raw))
	for id, data := range raw {
		var m model.Message
		if err := json.Unmarshal(data, &m); err != nil {
			r.logger.Warn("skipping malformed message record", "id", id, "error", err)
			continue
		}
		m.ID = id
		msgs = append(msgs, m)
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].Timestamp > msgs[j].Timestamp })
	return msgs, nil
}

// SaveMessage validates and stores a submission under a generated key,
// stamping the current time. The stored record is returned.
func (r *Repository) SaveMessage(ctx context.Context, m model.Message) (model.Message, error) {
	if m.Name == "" || m.Email == "" || m.Body == "" {
		return model.Message{}, ErrInvalidMessage
	}

	key, err := r.gw.Push(ctx, gateway.MessagesRoot)
	if err != nil {
		return model.Message{}, err
	}
	m.ID = key
	m.Timestamp = time.Now().UnixMilli()

	if err := r.gw.Set(ctx, gateway.MessagePath(key), m); err != nil {
		return model.Message{}, err
	}
	return m, nil
}
