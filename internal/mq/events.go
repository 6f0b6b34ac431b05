package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Donation event types.
const (
	EventDonationCreated       = "donation.created"
	EventDonationUpdated       = "donation.updated"
	EventDonationStatusChanged = "donation.status_changed"
	EventDonationDeleted       = "donation.deleted"
)

const attrEventType = "event_type"

// DonationEvent describes a change to a donation request.
type DonationEvent struct {
	Type       string    `json:"type"`
	DonationID string    `json:"donationId"`
	Status     string    `json:"status,omitempty"`
	BloodGroup string    `json:"bloodGroup,omitempty"`
	District   string    `json:"district,omitempty"`
	Upazila    string    `json:"upazila,omitempty"`
	DonorEmail string    `json:"donorEmail,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher publishes donation events onto a single channel.
type EventPublisher struct {
	queue   *MQ
	channel string
}

func NewEventPublisher(queue *MQ, channel string) *EventPublisher {
	return &EventPublisher{queue: queue, channel: channel}
}

// PublishDonationEvent encodes event as JSON and publishes it. The event
// type is duplicated into the message attributes for broker-side filtering.
func (p *EventPublisher) PublishDonationEvent(ctx context.Context, event DonationEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode donation event: %w", err)
	}
	_, err = p.queue.Publish(ctx, p.channel, data, map[string]string{attrEventType: event.Type})
	return err
}

// SubscribeDonationEvents decodes every message on the channel and hands it
// to handle. Undecodable messages are rejected.
func (p *EventPublisher) SubscribeDonationEvents(ctx context.Context, handle func(context.Context, DonationEvent) error) error {
	return p.queue.Subscribe(ctx, p.channel, func(ctx context.Context, msg Message) error {
		var event DonationEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return fmt.Errorf("decode donation event %s: %w", msg.ID, err)
		}
		return handle(ctx, event)
	})
}
