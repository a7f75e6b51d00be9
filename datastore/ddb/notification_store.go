/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/notifystore/notification"
	"github.com/suparena/notifystore/storagemodels"
)

// NotificationStore implements datastore.NotificationStore on DynamoDB.
// All variants live in one table under one GSI1 partition, so a single query
// returns the whole notification population; each item is resolved to its
// concrete variant through the EntityType discriminator.
type NotificationStore struct {
	client    *sdk.Client
	tableName string
}

// NewNotificationStore constructs a polymorphic notification store on an
// existing DynamoDB client.
func NewNotificationStore(client *sdk.Client, tableName string) *NotificationStore {
	return &NotificationStore{client: client, tableName: tableName}
}

// SmsStore returns the typed datastore for the SMS variant, sharing this
// store's client and table.
func (s *NotificationStore) SmsStore() *DynamodbDataStore[notification.SmsNotification] {
	return NewDynamodbDataStoreWithClient[notification.SmsNotification](
		s.client, s.tableName, notification.VariantSMS.String())
}

// EmailStore returns the typed datastore for the email variant, sharing this
// store's client and table.
func (s *NotificationStore) EmailStore() *DynamodbDataStore[notification.EmailNotification] {
	return NewDynamodbDataStoreWithClient[notification.EmailNotification](
		s.client, s.tableName, notification.VariantEmail.String())
}

// FindAll returns every persisted notification across all variants in one
// query, ordered by the whole-second creation timestamp in the GSI1 sort key,
// oldest first.
func (s *NotificationStore) FindAll(ctx context.Context) ([]notification.Notification, error) {
	return s.findByCondition(ctx, "GSI1PK = :pk", map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: notificationPartition},
	})
}

// FindSince returns every notification created at or after the given RFC3339
// timestamp, across all variants. The bound must be fraction-less (as produced
// by time.Time.Format(time.RFC3339)) to match the whole-second sort key.
func (s *NotificationStore) FindSince(ctx context.Context, since string) ([]notification.Notification, error) {
	return s.findByCondition(ctx, "GSI1PK = :pk AND GSI1SK >= :since", map[string]types.AttributeValue{
		":pk":    &types.AttributeValueMemberS{Value: notificationPartition},
		":since": &types.AttributeValueMemberS{Value: since},
	})
}

func (s *NotificationStore) findByCondition(ctx context.Context, keyCond string, exprVals map[string]types.AttributeValue) ([]notification.Notification, error) {
	var notifications []notification.Notification
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Query(ctx, &sdk.QueryInput{
			TableName:                 &s.tableName,
			IndexName:                 aws.String(defaultGSIName),
			KeyConditionExpression:    &keyCond,
			ExpressionAttributeValues: exprVals,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("notification query error: %w", err)
		}

		resolved, err := resolveItems(out.Items)
		if err != nil {
			return nil, err
		}
		for _, obj := range resolved {
			n, ok := obj.(notification.Notification)
			if !ok {
				return nil, fmt.Errorf("resolved item %T does not implement notification.Notification", obj)
			}
			notifications = append(notifications, n)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return notifications, nil
}

// StreamAll streams every notification item in arrival order, for campaign
// batches too large to hold in memory. Results carry raw attributes so callers
// can resolve variants themselves if needed.
func (s *NotificationStore) StreamAll(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[notification.Notification] {
	params := &storagemodels.QueryParams{
		TableName:              s.tableName,
		IndexName:              aws.String(defaultGSIName),
		KeyConditionExpression: "GSI1PK = :pk",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: notificationPartition},
		},
	}
	return streamQuery[notification.Notification](ctx, s.client, params, resolveNotification, opts...)
}

func resolveNotification(item map[string]types.AttributeValue) (notification.Notification, error) {
	resolved, err := resolveItems([]map[string]types.AttributeValue{item})
	if err != nil {
		return nil, err
	}
	n, ok := resolved[0].(notification.Notification)
	if !ok {
		return nil, fmt.Errorf("resolved item %T does not implement notification.Notification", resolved[0])
	}
	return n, nil
}
