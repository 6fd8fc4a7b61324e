// Package order turns a configured wall into a persisted order.
//
// Submission validates the customer's contact details and the wall
// parameters, prices the wall on the server, stores the order, and then
// announces it through a [Notifier] in the background. A failed
// notification never fails the submission; the order is already stored.
//
// Stores: [MemoryStore] (tests, single process), [SQLiteStore] (local CLI
// use) and [MongoStore] (server). Notifiers: [LogNotifier] and
// [RedisNotifier] (pub/sub).
package order

import (
	"strings"
	"time"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// Customer holds the contact details collected with an order. Name, Email
// and Phone are required.
type Customer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Normalize trims surrounding whitespace from every field.
func (c Customer) Normalize() Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
		Notes: strings.TrimSpace(c.Notes),
	}
}

// Validate reports the first missing or malformed contact field with
// ErrCodeInvalidOrder.
func (c Customer) Validate() error {
	if err := errors.ValidateCustomerName(c.Name); err != nil {
		return err
	}
	if err := errors.ValidateEmail(c.Email); err != nil {
		return err
	}
	if err := errors.ValidatePhone(c.Phone); err != nil {
		return err
	}
	if len(c.Notes) > 4000 {
		return errors.New(errors.ErrCodeInvalidOrder, "notes too long (max 4000 characters)")
	}
	return nil
}

// Request is what a client submits.
type Request struct {
	Customer  Customer    `json:"customer"`
	Params    wall.Params `json:"params"`
	HoleCount int         `json:"holeCount"`
}

// Order is a stored submission. Breakdown and Summary are a snapshot taken
// at submission time and never recomputed.
type Order struct {
	ID        string         `json:"id" bson:"_id"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	Customer  Customer       `json:"customer" bson:"customer"`
	Params    wall.Params    `json:"params" bson:"params"`
	HoleCount int            `json:"holeCount" bson:"holeCount"`
	Breakdown cost.Breakdown `json:"breakdown" bson:"breakdown"`
	Summary   []string       `json:"summary" bson:"summary"`
}

// Total returns the quoted price.
func (o *Order) Total() float64 { return o.Breakdown.Total }
