package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/food-ordering/utils"
)

// Event names shared by the websocket feed and the message broker.
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"
	EventMenuItemCreated    = "menu_item_created"
	EventMenuItemUpdated    = "menu_item_updated"
	EventMenuItemDeleted    = "menu_item_deleted"
)

// Notifier delivers domain events after they are committed.
type Notifier interface {
	Publish(ctx context.Context, event string, data interface{}) error
}

// Notifiers fans an event out to every notifier. Delivery is best effort: a
// failing notifier is logged and never fails the caller.
type Notifiers []Notifier

func (ns Notifiers) Publish(ctx context.Context, event string, data interface{}) error {
	// The request may finish before a slow broker answers.
	ctx = context.WithoutCancel(ctx)
	for _, n := range ns {
		if n == nil {
			continue
		}
		if err := n.Publish(ctx, event, data); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"event": event,
			}).WithError(err).Warn("event delivery failed")
		}
	}
	return nil
}
