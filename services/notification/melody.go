package notification

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// TenantKey is the session key the websocket handler stores the tenant under.
const TenantKey = "tenantId"

// TenantScoped is implemented by payloads that belong to one tenant.
type TenantScoped interface {
	Tenant() string
}

// MelodySink pushes events to connected websocket sessions. Tenant scoped
// payloads only reach sessions of that tenant.
type MelodySink struct {
	m *melody.Melody
}

func NewMelodySink(m *melody.Melody) *MelodySink {
	return &MelodySink{m: m}
}

func (s *MelodySink) Name() string { return "websocket" }

func (s *MelodySink) Send(_ context.Context, e Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	msg, err := json.Marshal(e)
	if err != nil {
		return err
	}
	scoped, ok := e.Payload.(TenantScoped)
	if !ok || scoped.Tenant() == "" {
		return s.m.Broadcast(msg)
	}
	tenantID := scoped.Tenant()
	return s.m.BroadcastFilter(msg, func(session *melody.Session) bool {
		v, exists := session.Get(TenantKey)
		return exists && v == tenantID
	})
}
