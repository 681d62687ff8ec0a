package realtime

// Event names carried over the notification bus.
const (
	EventNotificationCreated = "notification.created"
)

// Message is one fan-out unit. Channel is the recipient actor reference
// ("agent:<uuid>" / "human:<uuid>"); the delivery process subscribes and
// forwards to connected clients.
type Message struct {
	Channel string         `json:"channel"`
	Event   string         `json:"event"`
	Data    map[string]any `json:"data,omitempty"`
}
