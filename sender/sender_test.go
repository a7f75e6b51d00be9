/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sender

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/notifystore/dispatch"
	"github.com/suparena/notifystore/errors"
	"github.com/suparena/notifystore/notification"
)

func TestSmsSenderSend(t *testing.T) {
	var buf bytes.Buffer
	s := NewSmsSender(zerolog.New(&buf))

	assert.Equal(t, notification.VariantSMS, s.AppliesTo())

	n := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")
	err := s.Send(context.Background(), dispatch.Campaign{Name: "Black Friday"}, n)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "012-345-67890")
	assert.Contains(t, out, "Vlad Mihalcea")
	assert.Contains(t, out, "Black Friday")
}

func TestEmailSenderSend(t *testing.T) {
	var buf bytes.Buffer
	s := NewEmailSender(zerolog.New(&buf))

	assert.Equal(t, notification.VariantEmail, s.AppliesTo())

	n := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")
	err := s.Send(context.Background(), dispatch.Campaign{Name: "Black Friday"}, n)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "vlad@acme.com")
}

func TestSendRejectsWrongVariant(t *testing.T) {
	s := NewSmsSender(zerolog.Nop())

	n := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")
	err := s.Send(context.Background(), dispatch.Campaign{}, n)
	require.Error(t, err)
	assert.True(t, errors.IsDeliveryError(err))
}

func TestSendRejectsInvalidNotification(t *testing.T) {
	s := NewEmailSender(zerolog.Nop())

	n := notification.NewEmailNotification("Vlad", "Mihalcea", "")
	err := s.Send(context.Background(), dispatch.Campaign{}, n)
	require.Error(t, err)
	assert.True(t, errors.IsDeliveryError(err))
	assert.True(t, errors.IsValidationError(err))
}
