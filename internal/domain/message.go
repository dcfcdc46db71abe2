package domain

import "time"

// InboundMessage records a WhatsApp message as received from the webhook.
// Processed flips false -> true exactly once; Response carries the reply
// composed by the pipeline.
type InboundMessage struct {
	ID         int64
	ExternalID string
	Phone      string
	Body       string
	Command    *EventKind
	Processed  bool
	Response   *string
	ReceivedAt time.Time
}
