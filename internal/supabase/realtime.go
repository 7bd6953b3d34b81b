package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// Note: Supabase Go client doesn't have direct Realtime publish.
	// Database writes trigger Realtime automatically; this is a placeholder
	// for explicit event publishing via the Realtime REST API.
	return nil
}

// PublishOrderEvent broadcasts a lifecycle event on the order's channel so
// connected boards refresh the affected card.
func (r *RealtimeClient) PublishOrderEvent(orderID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("order:%s", orderID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads the workflow engine publishes.
func StatusChangedPayload(orderID uuid.UUID, status string) map[string]interface{} {
	return map[string]interface{}{
		"order_id": orderID.String(),
		"status":   status,
	}
}

func OrderDeletedPayload(orderID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"order_id": orderID.String(),
	}
}
