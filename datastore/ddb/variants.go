/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/notifystore/notification"
	"github.com/suparena/notifystore/registry"
)

// notificationPartition is the constant GSI1 partition shared by every
// notification item, which is what makes FindAll a single query.
const notificationPartition = "NOTIFICATION"

// notificationIndexMap is the single-table key layout for all variants:
// the primary key addresses one notification, GSI1 orders the whole
// partition by creation time.
var notificationIndexMap = map[string]string{
	"PK":     "NOTIFICATION#{Id}",
	"SK":     "NOTIFICATION#{Id}",
	"GSI1PK": notificationPartition,
	"GSI1SK": "{CreatedOn}",
}

func init() {
	registry.RegisterVariant(notification.VariantSMS.String(),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var n notification.SmsNotification
			if err := attributevalue.UnmarshalMap(item, &n); err != nil {
				return nil, err
			}
			return &n, nil
		})

	registry.RegisterVariant(notification.VariantEmail.String(),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var n notification.EmailNotification
			if err := attributevalue.UnmarshalMap(item, &n); err != nil {
				return nil, err
			}
			return &n, nil
		})

	registry.RegisterIndexMap[notification.SmsNotification](notificationIndexMap)
	registry.RegisterIndexMap[notification.EmailNotification](notificationIndexMap)
}
