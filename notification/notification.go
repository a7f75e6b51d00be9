/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notification

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/notifystore/errors"
)

// Variant identifies one concrete notification shape. The set of variants is
// closed at configuration time: every persisted notification carries exactly
// one of these values as its discriminator.
type Variant string

const (
	// VariantSMS identifies notifications delivered over SMS.
	VariantSMS Variant = "SMS"

	// VariantEmail identifies notifications delivered over email.
	VariantEmail Variant = "EMAIL"
)

// Variants returns the closed set of known notification variants.
func Variants() []Variant {
	return []Variant{VariantSMS, VariantEmail}
}

// Known reports whether v is a member of the closed variant set.
func (v Variant) Known() bool {
	switch v {
	case VariantSMS, VariantEmail:
		return true
	}
	return false
}

func (v Variant) String() string {
	return string(v)
}

// Notification is the common contract shared by every notification variant.
// Base supplies the identity and recipient accessors; each concrete variant
// supplies Variant and Validate.
type Notification interface {
	// NotificationID returns the unique identifier assigned at creation.
	NotificationID() string

	// Variant returns the concrete shape of this notification.
	Variant() Variant

	// RecipientName returns the recipient's full display name.
	RecipientName() string

	// Validate checks that all variant-required fields are present.
	Validate() error
}

// Base holds the fields shared by every notification variant.
type Base struct {

	// Unique identifier for the notification.
	// Required: true
	ID string `json:"Id"`

	// Recipient first name.
	// Required: true
	FirstName string `json:"FirstName"`

	// Recipient last name.
	// Required: true
	LastName string `json:"LastName"`

	// Timestamp when the notification was created. Assigned once, immutable.
	// Required: true
	// Format: date-time
	CreatedOn strfmt.DateTime `json:"CreatedOn"`
}

// NotificationID returns the unique identifier assigned at creation.
func (b *Base) NotificationID() string { return b.ID }

// RecipientName returns "FirstName LastName".
func (b *Base) RecipientName() string { return b.FirstName + " " + b.LastName }

// CreatedAt returns the creation timestamp as a time.Time.
func (b *Base) CreatedAt() time.Time { return time.Time(b.CreatedOn) }

// SmsNotification is a notification delivered to a phone number.
type SmsNotification struct {
	Base

	// Destination phone number. Absence is a data-integrity error.
	// Required: true
	PhoneNumber string `json:"PhoneNumber"`
}

// NewSmsNotification creates an SmsNotification with a fresh identifier and
// creation timestamp.
func NewSmsNotification(firstName, lastName, phoneNumber string) *SmsNotification {
	return &SmsNotification{
		Base:        newBase(firstName, lastName),
		PhoneNumber: phoneNumber,
	}
}

// Variant returns VariantSMS.
func (n *SmsNotification) Variant() Variant { return VariantSMS }

// Validate checks the SMS-required fields.
func (n *SmsNotification) Validate() error {
	if err := n.Base.validate(); err != nil {
		return err
	}
	if n.PhoneNumber == "" {
		return errors.NewValidationError("PhoneNumber", "must not be empty")
	}
	return nil
}

// EmailNotification is a notification delivered to an email address.
type EmailNotification struct {
	Base

	// Destination email address. Absence is a data-integrity error.
	// Required: true
	EmailAddress string `json:"EmailAddress"`
}

// NewEmailNotification creates an EmailNotification with a fresh identifier
// and creation timestamp.
func NewEmailNotification(firstName, lastName, emailAddress string) *EmailNotification {
	return &EmailNotification{
		Base:         newBase(firstName, lastName),
		EmailAddress: emailAddress,
	}
}

// Variant returns VariantEmail.
func (n *EmailNotification) Variant() Variant { return VariantEmail }

// Validate checks the email-required fields.
func (n *EmailNotification) Validate() error {
	if err := n.Base.validate(); err != nil {
		return err
	}
	if n.EmailAddress == "" {
		return errors.NewValidationError("EmailAddress", "must not be empty")
	}
	return nil
}

func newBase(firstName, lastName string) Base {
	// Whole-second creation time: the stored sort key is second-granular, so
	// the entity attribute and the key stay the same instant.
	return Base{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedOn: strfmt.DateTime(time.Now().UTC().Truncate(time.Second)),
	}
}

func (b *Base) validate() error {
	if b.ID == "" {
		return errors.NewValidationError("Id", "must not be empty")
	}
	if b.FirstName == "" {
		return errors.NewValidationError("FirstName", "must not be empty")
	}
	if b.LastName == "" {
		return errors.NewValidationError("LastName", "must not be empty")
	}
	return nil
}
