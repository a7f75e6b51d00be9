/*
Package notification defines the NotifyStore data model.

A Notification is one message to be delivered to one recipient, in exactly one
of a closed set of variant shapes. Every variant shares the Base fields
(identifier, recipient name, creation timestamp) and adds the channel-specific
fields its delivery requires:

	sms := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")
	email := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")

Variant-required fields are mandatory: a missing phone number or email address
is a data-integrity error reported by Validate, never a valid persisted state.

The Variant set is closed at configuration time. Adding a new channel means
adding a concrete type here, registering its unmarshal function and index map
with the registry package, and providing a dispatch.Sender for it — routing
logic is never modified.
*/
package notification
