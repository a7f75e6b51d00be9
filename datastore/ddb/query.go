/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/notifystore/registry"
	"github.com/suparena/notifystore/storagemodels"
)

// Query performs a query against the DynamoDB table using the provided parameters.
// It uses the EntityType discriminator (injected at persist time) to select the
// correct unmarshal function from the variant registry, so each item is resolved
// to its proper concrete type even when the page spans several variants.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
	input := &dynamodb.QueryInput{
		TableName:                 &params.TableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ScanIndexForward:          params.ScanIndexForward,
	}
	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return resolveItems(out.Items)
}

// resolveItems maps each raw item through the variant registry using its
// EntityType attribute. Items of unregistered variants fall back to a generic
// map so a single unknown row does not poison the whole page.
func resolveItems(items []map[string]types.AttributeValue) ([]interface{}, error) {
	var results []interface{}
	for _, item := range items {
		var entityType string
		if attr, ok := item[entityTypeAttr]; ok {
			if err := attributevalue.Unmarshal(attr, &entityType); err != nil {
				return nil, fmt.Errorf("failed to unmarshal EntityType: %w", err)
			}
		} else {
			return nil, fmt.Errorf("missing EntityType attribute in item")
		}

		unmarshalFn, err := registry.GetUnmarshalFunc(entityType)
		if err != nil {
			var generic map[string]interface{}
			if err := attributevalue.UnmarshalMap(item, &generic); err != nil {
				return nil, fmt.Errorf("failed to unmarshal generic item: %w", err)
			}
			results = append(results, generic)
			continue
		}

		obj, err := unmarshalFn(item)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal item for EntityType %q: %w", entityType, err)
		}
		results = append(results, obj)
	}
	return results, nil
}
