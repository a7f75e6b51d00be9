/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"context"

	"github.com/suparena/notifystore/errors"
	"github.com/suparena/notifystore/notification"
)

// Campaign carries the campaign-level fields threaded into every sender call.
type Campaign struct {
	Name    string
	Message string
}

// Sender delivers notifications of exactly one variant. AppliesTo declares the
// supported variant; Send is only ever invoked with a notification of that
// variant — the Table lookup guarantees it.
type Sender interface {
	AppliesTo() notification.Variant

	Send(ctx context.Context, campaign Campaign, n notification.Notification) error
}

// Table maps each notification variant to the single Sender registered for it.
// A Table is built once by NewTable and never mutated afterwards, so it is safe
// to share across goroutines without locking.
type Table struct {
	senders map[notification.Variant]Sender
}

// NewTable builds a dispatch table from the complete set of senders available
// to the process. Registration order is irrelevant.
//
// It fails with a ConfigurationError if two senders declare the same variant
// (ambiguous routing is never resolved by picking one) or if a sender declares
// a variant outside the known set.
func NewTable(senders ...Sender) (*Table, error) {
	t := &Table{
		senders: make(map[notification.Variant]Sender, len(senders)),
	}
	for _, s := range senders {
		v := s.AppliesTo()
		if !v.Known() {
			return nil, errors.NewConfigurationError(v.String(), "sender declares unknown variant")
		}
		if _, exists := t.senders[v]; exists {
			return nil, errors.NewConfigurationError(v.String(), "variant already has a registered sender")
		}
		t.senders[v] = s
	}
	return t, nil
}

// Lookup returns the sender registered for the given variant.
func (t *Table) Lookup(v notification.Variant) (Sender, bool) {
	s, ok := t.senders[v]
	return s, ok
}

// Variants returns the variants that have a registered sender.
func (t *Table) Variants() []notification.Variant {
	vs := make([]notification.Variant, 0, len(t.senders))
	for v := range t.senders {
		vs = append(vs, v)
	}
	return vs
}

// Dispatch routes each notification in the batch to the sender registered for
// its variant, preserving the order the store returned them in.
//
// Every notification is resolved against the table before any sender runs: a
// notification with no registered sender fails the whole batch with a
// RoutingError identifying it, and no side effect is performed. A dropped
// notification is a user-visible failure, so unroutable records are never
// silently skipped.
//
// A sender failure surfaces as a DeliveryError and aborts the remainder of the
// batch; the core performs no retry. Callers who want continue-past-failure
// semantics can partition the batch and dispatch each part separately.
func (t *Table) Dispatch(ctx context.Context, campaign Campaign, batch []notification.Notification) error {
	resolved := make([]Sender, len(batch))
	for i, n := range batch {
		s, ok := t.senders[n.Variant()]
		if !ok {
			return errors.NewRoutingError(n.NotificationID(), n.Variant().String())
		}
		resolved[i] = s
	}

	for i, n := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := resolved[i].Send(ctx, campaign, n); err != nil {
			if errors.IsDeliveryError(err) {
				return err
			}
			return errors.NewDeliveryError(n.NotificationID(), n.Variant().String(), err)
		}
	}
	return nil
}
