/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/notifystore/errors"
	"github.com/suparena/notifystore/notification"
)

func toDateTime(t time.Time) strfmt.DateTime { return strfmt.DateTime(t.UTC()) }

func TestDataStorePutGet(t *testing.T) {
	store := New[notification.SmsNotification]()
	ctx := context.Background()

	n := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")
	if err := store.Put(ctx, *n); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.GetOne(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetOne failed: %v", err)
	}
	if got.PhoneNumber != "012-345-67890" {
		t.Errorf("Unexpected phone number: %q", got.PhoneNumber)
	}

	if _, err := store.GetOne(ctx, "missing"); !errors.IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestDataStorePutError(t *testing.T) {
	boom := fmt.Errorf("table offline")
	store := New[notification.SmsNotification]().WithPutError(boom)

	err := store.Put(context.Background(), *notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890"))
	if err != boom {
		t.Errorf("Expected injected error, got %v", err)
	}
}

func TestDataStoreQueryPreservesInsertionOrder(t *testing.T) {
	store := New[notification.SmsNotification]()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		n := notification.NewSmsNotification("Vlad", "Mihalcea", fmt.Sprintf("012-345-%05d", i))
		ids = append(ids, n.ID)
		if err := store.Put(ctx, *n); err != nil {
			t.Fatal(err)
		}
	}

	results, err := store.Query(ctx, nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != len(ids) {
		t.Fatalf("Expected %d results, got %d", len(ids), len(results))
	}
	for i, r := range results {
		n := r.(*notification.SmsNotification)
		if n.ID != ids[i] {
			t.Errorf("Result %d out of order: got %q, want %q", i, n.ID, ids[i])
		}
	}
}

func TestDataStoreStream(t *testing.T) {
	store := New[notification.EmailNotification]()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n := notification.NewEmailNotification("Vlad", "Mihalcea", fmt.Sprintf("vlad+%d@acme.com", i))
		if err := store.Put(ctx, *n); err != nil {
			t.Fatal(err)
		}
	}

	var count int
	for result := range store.Stream(ctx, nil) {
		if result.Error != nil {
			t.Errorf("Unexpected stream error: %v", result.Error)
		}
		count++
	}
	if count != 3 {
		t.Errorf("Expected 3 streamed items, got %d", count)
	}
}

func TestNotificationStoreFindAll(t *testing.T) {
	sms := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")
	email := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")
	store := NewNotificationStore(sms, email)

	all, err := store.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(all))
	}
	if all[0].Variant() != notification.VariantSMS || all[1].Variant() != notification.VariantEmail {
		t.Error("FindAll must preserve insertion order")
	}
}

func TestNotificationStoreFindSince(t *testing.T) {
	old := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")
	old.CreatedOn = toDateTime(time.Now().Add(-48 * time.Hour))
	recent := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")

	store := NewNotificationStore(old, recent)
	since := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)

	got, err := store.FindSince(context.Background(), since)
	if err != nil {
		t.Fatalf("FindSince failed: %v", err)
	}
	if len(got) != 1 || got[0].Variant() != notification.VariantEmail {
		t.Errorf("Expected only the recent notification, got %d", len(got))
	}
}

func TestNotificationStoreFindSinceSecondBoundary(t *testing.T) {
	cutoff := time.Date(2025, 11, 28, 10, 0, 0, 0, time.UTC)

	// Created inside the cutoff second, after the cutoff instant.
	inWindow := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")
	inWindow.CreatedOn = toDateTime(cutoff.Add(500 * time.Millisecond))

	before := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")
	before.CreatedOn = toDateTime(cutoff.Add(-time.Second))

	store := NewNotificationStore(inWindow, before)

	got, err := store.FindSince(context.Background(), cutoff.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("FindSince failed: %v", err)
	}
	if len(got) != 1 || got[0].NotificationID() != inWindow.ID {
		t.Fatalf("Expected the notification created within the cutoff second, got %d result(s)", len(got))
	}
}

func TestNotificationStoreFindAllError(t *testing.T) {
	boom := fmt.Errorf("query throttled")
	store := NewNotificationStore().WithFindAllError(boom)

	if _, err := store.FindAll(context.Background()); err != boom {
		t.Errorf("Expected injected error, got %v", err)
	}
}
