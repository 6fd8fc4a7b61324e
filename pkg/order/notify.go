package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// Notifier announces a stored order to whoever fulfils it.
type Notifier interface {
	Notify(ctx context.Context, o *Order) error
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(ctx context.Context, o *Order) error

func (f NotifierFunc) Notify(ctx context.Context, o *Order) error { return f(ctx, o) }

// LogNotifier writes each order to a logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(_ context.Context, o *Order) error {
	n.Logger.Info("new order",
		"id", o.ID,
		"customer", o.Customer.Name,
		"email", o.Customer.Email,
		"material", o.Breakdown.Material,
		"total", fmt.Sprintf("€%.2f", o.Breakdown.Total),
	)
	return nil
}

// RedisNotifier publishes each order as JSON on a pub/sub channel.
type RedisNotifier struct {
	Client  redis.UniversalClient
	Channel string
}

// Message is the payload published by [RedisNotifier].
type Message struct {
	Event string `json:"event"` // always "order.submitted"
	Order *Order `json:"order"`
}

func (n RedisNotifier) Notify(ctx context.Context, o *Order) error {
	payload, err := json.Marshal(Message{Event: "order.submitted", Order: o})
	if err != nil {
		return err
	}
	if err := n.Client.Publish(ctx, n.Channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", n.Channel, err)
	}
	return nil
}

// Multi notifies each notifier in turn and returns the first error after
// trying all of them.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, o *Order) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, o); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var (
	_ Notifier = LogNotifier{}
	_ Notifier = RedisNotifier{}
	_ Notifier = Multi(nil)
	_ Notifier = NotifierFunc(nil)
)
