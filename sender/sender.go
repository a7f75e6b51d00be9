/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sender

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/suparena/notifystore/dispatch"
	"github.com/suparena/notifystore/errors"
	"github.com/suparena/notifystore/notification"
)

// SmsSender delivers SMS notifications. The delivery side effect is a
// structured log entry standing in for the SMS gateway call.
type SmsSender struct {
	log zerolog.Logger
}

// NewSmsSender creates a sender for the SMS variant.
func NewSmsSender(log zerolog.Logger) *SmsSender {
	return &SmsSender{log: log.With().Str("sender", "sms").Logger()}
}

// AppliesTo returns notification.VariantSMS.
func (s *SmsSender) AppliesTo() notification.Variant { return notification.VariantSMS }

// Send delivers one SMS notification.
func (s *SmsSender) Send(ctx context.Context, c dispatch.Campaign, n notification.Notification) error {
	sms, ok := n.(*notification.SmsNotification)
	if !ok {
		return errors.NewDeliveryError(n.NotificationID(), n.Variant().String(),
			fmt.Errorf("unexpected notification type %T", n))
	}
	if err := sms.Validate(); err != nil {
		return errors.NewDeliveryError(sms.ID, sms.Variant().String(), err)
	}

	s.log.Info().
		Str("campaign", c.Name).
		Str("notification_id", sms.ID).
		Str("recipient", sms.RecipientName()).
		Str("phone_number", sms.PhoneNumber).
		Msgf("Send SMS to %s via phone number: %s", sms.RecipientName(), sms.PhoneNumber)
	return nil
}

// EmailSender delivers email notifications. The delivery side effect is a
// structured log entry standing in for the email provider call.
type EmailSender struct {
	log zerolog.Logger
}

// NewEmailSender creates a sender for the EMAIL variant.
func NewEmailSender(log zerolog.Logger) *EmailSender {
	return &EmailSender{log: log.With().Str("sender", "email").Logger()}
}

// AppliesTo returns notification.VariantEmail.
func (s *EmailSender) AppliesTo() notification.Variant { return notification.VariantEmail }

// Send delivers one email notification.
func (s *EmailSender) Send(ctx context.Context, c dispatch.Campaign, n notification.Notification) error {
	email, ok := n.(*notification.EmailNotification)
	if !ok {
		return errors.NewDeliveryError(n.NotificationID(), n.Variant().String(),
			fmt.Errorf("unexpected notification type %T", n))
	}
	if err := email.Validate(); err != nil {
		return errors.NewDeliveryError(email.ID, email.Variant().String(), err)
	}

	s.log.Info().
		Str("campaign", c.Name).
		Str("notification_id", email.ID).
		Str("recipient", email.RecipientName()).
		Str("email_address", email.EmailAddress).
		Msgf("Send Email to %s via address: %s", email.RecipientName(), email.EmailAddress)
	return nil
}
