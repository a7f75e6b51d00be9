/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/notifystore/notification"
)

func TestExpandMacros(t *testing.T) {
	n := notification.SmsNotification{
		Base: notification.Base{
			ID:        "abc123",
			FirstName: "Vlad",
			LastName:  "Mihalcea",
			CreatedOn: strfmt.DateTime(time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC)),
		},
		PhoneNumber: "012-345-67890",
	}

	expanded, err := expandMacros(notificationIndexMap, n)
	if err != nil {
		t.Fatalf("expandMacros failed: %v", err)
	}

	if expanded["PK"] != "NOTIFICATION#abc123" {
		t.Errorf("Unexpected PK: %q", expanded["PK"])
	}
	if expanded["SK"] != "NOTIFICATION#abc123" {
		t.Errorf("Unexpected SK: %q", expanded["SK"])
	}
	if expanded["GSI1PK"] != "NOTIFICATION" {
		t.Errorf("Unexpected GSI1PK: %q", expanded["GSI1PK"])
	}
	if expanded["GSI1SK"] != "2025-11-28T09:00:00Z" {
		t.Errorf("Expected whole-second creation timestamp in GSI1SK, got %q", expanded["GSI1SK"])
	}
}

func TestExpandMacrosSortKeyBoundary(t *testing.T) {
	// A notification created a fraction of a second into the cutoff second
	// must not sort before a fraction-less query bound for that same second.
	n := notification.SmsNotification{
		Base: notification.Base{
			ID:        "abc123",
			FirstName: "Vlad",
			LastName:  "Mihalcea",
			CreatedOn: strfmt.DateTime(time.Date(2025, 11, 28, 9, 0, 0, 500_000_000, time.UTC)),
		},
		PhoneNumber: "012-345-67890",
	}

	expanded, err := expandMacros(notificationIndexMap, n)
	if err != nil {
		t.Fatalf("expandMacros failed: %v", err)
	}

	if expanded["GSI1SK"] != "2025-11-28T09:00:00Z" {
		t.Errorf("Expected sub-second precision to be dropped from GSI1SK, got %q", expanded["GSI1SK"])
	}

	bound := time.Date(2025, 11, 28, 9, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if expanded["GSI1SK"] < bound {
		t.Errorf("Sort key %q sorts before the window bound %q", expanded["GSI1SK"], bound)
	}

	// Non-timestamp macro values are left untouched.
	if expanded["PK"] != "NOTIFICATION#abc123" {
		t.Errorf("Unexpected PK: %q", expanded["PK"])
	}
}

func TestExpandStringKey(t *testing.T) {
	expanded, err := expandStringKey(notificationIndexMap, "abc123")
	if err != nil {
		t.Fatalf("expandStringKey failed: %v", err)
	}
	if expanded["PK"] != "NOTIFICATION#abc123" {
		t.Errorf("Unexpected PK: %q", expanded["PK"])
	}
}

func TestBuildKeyFromExpanded(t *testing.T) {
	t.Run("ValidKey", func(t *testing.T) {
		key, err := buildKeyFromExpanded(map[string]string{
			"PK": "NOTIFICATION#1",
			"SK": "NOTIFICATION#1",
		})
		if err != nil {
			t.Fatalf("buildKeyFromExpanded failed: %v", err)
		}
		pk, ok := key["PK"].(*types.AttributeValueMemberS)
		if !ok || pk.Value != "NOTIFICATION#1" {
			t.Errorf("Unexpected PK attribute: %#v", key["PK"])
		}
	})

	t.Run("MissingSortKey", func(t *testing.T) {
		if _, err := buildKeyFromExpanded(map[string]string{"PK": "NOTIFICATION#1"}); err == nil {
			t.Error("Expected error for missing SK")
		}
	})
}

func TestResolveItemsByVariant(t *testing.T) {
	sms := notification.NewSmsNotification("Vlad", "Mihalcea", "012-345-67890")
	email := notification.NewEmailNotification("Vlad", "Mihalcea", "vlad@acme.com")

	smsItem, err := attributevalue.MarshalMap(sms)
	if err != nil {
		t.Fatal(err)
	}
	smsItem[entityTypeAttr] = &types.AttributeValueMemberS{Value: notification.VariantSMS.String()}

	emailItem, err := attributevalue.MarshalMap(email)
	if err != nil {
		t.Fatal(err)
	}
	emailItem[entityTypeAttr] = &types.AttributeValueMemberS{Value: notification.VariantEmail.String()}

	resolved, err := resolveItems([]map[string]types.AttributeValue{smsItem, emailItem})
	if err != nil {
		t.Fatalf("resolveItems failed: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("Expected 2 resolved items, got %d", len(resolved))
	}

	gotSms, ok := resolved[0].(*notification.SmsNotification)
	if !ok {
		t.Fatalf("Expected *SmsNotification, got %T", resolved[0])
	}
	if gotSms.PhoneNumber != "012-345-67890" {
		t.Errorf("Unexpected phone number: %q", gotSms.PhoneNumber)
	}

	gotEmail, ok := resolved[1].(*notification.EmailNotification)
	if !ok {
		t.Fatalf("Expected *EmailNotification, got %T", resolved[1])
	}
	if gotEmail.EmailAddress != "vlad@acme.com" {
		t.Errorf("Unexpected email address: %q", gotEmail.EmailAddress)
	}
}

func TestResolveItemsUnregisteredVariantFallsBack(t *testing.T) {
	item := map[string]types.AttributeValue{
		entityTypeAttr: &types.AttributeValueMemberS{Value: "CARRIER_PIGEON"},
		"Id":           &types.AttributeValueMemberS{Value: "p-1"},
	}

	resolved, err := resolveItems([]map[string]types.AttributeValue{item})
	if err != nil {
		t.Fatalf("resolveItems failed: %v", err)
	}
	if _, ok := resolved[0].(map[string]interface{}); !ok {
		t.Errorf("Expected generic map fallback, got %T", resolved[0])
	}
}

func TestResolveItemsMissingDiscriminator(t *testing.T) {
	item := map[string]types.AttributeValue{
		"Id": &types.AttributeValueMemberS{Value: "x"},
	}
	if _, err := resolveItems([]map[string]types.AttributeValue{item}); err == nil {
		t.Error("Expected error for item without EntityType attribute")
	}
}
