/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/notifystore/errors"
	"github.com/suparena/notifystore/notification"
)

// recordingSender records every notification it is asked to deliver.
type recordingSender struct {
	variant notification.Variant
	sent    []notification.Notification
	fail    error
}

func (s *recordingSender) AppliesTo() notification.Variant { return s.variant }

func (s *recordingSender) Send(ctx context.Context, c Campaign, n notification.Notification) error {
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, n)
	return nil
}

func TestNewTable(t *testing.T) {
	sms := &recordingSender{variant: notification.VariantSMS}
	email := &recordingSender{variant: notification.VariantEmail}

	table, err := NewTable(sms, email)
	require.NoError(t, err)

	got, ok := table.Lookup(notification.VariantSMS)
	require.True(t, ok)
	assert.Same(t, sms, got)

	got, ok = table.Lookup(notification.VariantEmail)
	require.True(t, ok)
	assert.Same(t, email, got)

	assert.Len(t, table.Variants(), 2)
}

func TestNewTableDuplicateVariant(t *testing.T) {
	a := &recordingSender{variant: notification.VariantEmail}
	b := &recordingSender{variant: notification.VariantEmail}

	table, err := NewTable(a, b)
	assert.Nil(t, table)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestNewTableUnknownVariant(t *testing.T) {
	s := &recordingSender{variant: notification.Variant("PIGEON")}

	table, err := NewTable(s)
	assert.Nil(t, table)
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestNewTableIdempotent(t *testing.T) {
	senders := []Sender{
		&recordingSender{variant: notification.VariantSMS},
		&recordingSender{variant: notification.VariantEmail},
	}

	first, err := NewTable(senders...)
	require.NoError(t, err)
	second, err := NewTable(senders...)
	require.NoError(t, err)

	for _, v := range notification.Variants() {
		a, aok := first.Lookup(v)
		b, bok := second.Lookup(v)
		assert.Equal(t, aok, bok)
		assert.Same(t, a, b)
	}
}

func TestDispatchRoutesEachRecordOnce(t *testing.T) {
	sms := &recordingSender{variant: notification.VariantSMS}
	email := &recordingSender{variant: notification.VariantEmail}
	table, err := NewTable(sms, email)
	require.NoError(t, err)

	smsN := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")
	emailN := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")

	campaign := Campaign{Name: "Black Friday", Message: "High-Performance Java Persistence is 40% OFF"}
	err = table.Dispatch(context.Background(), campaign, []notification.Notification{smsN, emailN})
	require.NoError(t, err)

	require.Len(t, sms.sent, 1)
	assert.Same(t, smsN, sms.sent[0])
	require.Len(t, email.sent, 1)
	assert.Same(t, emailN, email.sent[0])
}

func TestDispatchPreservesStoreOrder(t *testing.T) {
	sms := &recordingSender{variant: notification.VariantSMS}
	table, err := NewTable(sms)
	require.NoError(t, err)

	batch := make([]notification.Notification, 5)
	for i := range batch {
		batch[i] = notification.NewSmsNotification("Vlad", "Mihalcea", fmt.Sprintf("012-345-%05d", i))
	}

	require.NoError(t, table.Dispatch(context.Background(), Campaign{}, batch))
	require.Len(t, sms.sent, len(batch))
	for i := range batch {
		assert.Same(t, batch[i], sms.sent[i])
	}
}

func TestDispatchRoutingError(t *testing.T) {
	email := &recordingSender{variant: notification.VariantEmail}
	table, err := NewTable(email)
	require.NoError(t, err)

	emailN := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")
	smsN := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")

	// The routable email record precedes the unroutable SMS record; the batch
	// must still abort before any sender runs.
	err = table.Dispatch(context.Background(), Campaign{}, []notification.Notification{emailN, smsN})
	require.Error(t, err)
	assert.True(t, errors.IsRoutingError(err))

	var re *errors.RoutingError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, smsN.NotificationID(), re.NotificationID)
	assert.Equal(t, notification.VariantSMS.String(), re.Variant)

	assert.Empty(t, email.sent, "no sender may run when the batch aborts on routing")
}

func TestDispatchDeliveryError(t *testing.T) {
	boom := fmt.Errorf("smtp unavailable")
	email := &recordingSender{variant: notification.VariantEmail, fail: boom}
	sms := &recordingSender{variant: notification.VariantSMS}
	table, err := NewTable(email, sms)
	require.NoError(t, err)

	emailN := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")
	smsN := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")

	err = table.Dispatch(context.Background(), Campaign{}, []notification.Notification{emailN, smsN})
	require.Error(t, err)
	assert.True(t, errors.IsDeliveryError(err))
	assert.ErrorIs(t, err, boom)

	var de *errors.DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, emailN.NotificationID(), de.NotificationID)

	assert.Empty(t, sms.sent, "batch aborts on the first delivery failure")
}

func TestDispatchEmptyBatch(t *testing.T) {
	table, err := NewTable()
	require.NoError(t, err)
	assert.NoError(t, table.Dispatch(context.Background(), Campaign{}, nil))
}

func TestDispatchContextCancelled(t *testing.T) {
	sms := &recordingSender{variant: notification.VariantSMS}
	table, err := NewTable(sms)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := []notification.Notification{
		notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890"),
	}
	err = table.Dispatch(ctx, Campaign{}, batch)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sms.sent)
}
