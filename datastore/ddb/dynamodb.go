/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/notifystore/registry"
)

// entityTypeAttr is the discriminator attribute injected into every persisted
// item. Polymorphic reads use it to recover the concrete variant.
const entityTypeAttr = "EntityType"

// DynamodbDataStore implements datastore.DataStore[T] for one notification
// variant, using AWS DynamoDB single-table design as the underlying store.
type DynamodbDataStore[T any] struct {
	client    *sdk.Client
	tableName string
	variant   string
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for one notification
// variant. The variant value is written as the EntityType discriminator on
// every Put.
func NewDynamodbDataStore[T any](awsAccessKey, awsSecretKey, awsRegion, tableName, variant string) (*DynamodbDataStore[T], error) {
	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewDynamodbDataStoreWithClient[T](client, tableName, variant), nil
}

// NewDynamodbDataStoreWithClient constructs a DynamodbDataStore on an existing
// client, so several variant stores can share one connection.
func NewDynamodbDataStoreWithClient[T any](client *sdk.Client, tableName, variant string) *DynamodbDataStore[T] {
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
		variant:   variant,
	}
}

// GetOne retrieves a single item from DynamoDB using a string key.
// It returns a pointer to the item of type T, or nil if no item is found.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, errors.New("no index map found for entity type")
	}

	expanded, err := expandStringKey(indexMap, key)
	if err != nil {
		return nil, fmt.Errorf("failed to expand string key: %w", err)
	}

	keyMap, err := buildKeyFromExpanded(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		// Not found: return nil, nil
		return nil, nil
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores the given entity, expanding the macros in its registered index
// map into partition/sort keys (and GSI keys) and injecting the EntityType
// discriminator used by polymorphic reads.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return errors.New("no index map found for entity type")
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(indexMap, entity)
	if err != nil {
		return err
	}

	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[entityTypeAttr] = &types.AttributeValueMemberS{Value: d.variant}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes an item from DynamoDB using a string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return errors.New("no index map found for entity type")
	}

	expanded, err := expandStringKey(indexMap, key)
	if err != nil {
		return fmt.Errorf("failed to expand string key: %w", err)
	}

	keyMap, err := buildKeyFromExpanded(expanded)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// expandMacros expands the index map's macro templates (e.g. "NOTIFICATION#{Id}")
// against the attribute values of keysInput.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")
			val, ok := av[key]
			if !ok {
				return ""
			}
			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return normalizeKeyTimestamp(tv.Value)
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
		res[fieldName] = expanded
	}
	return res, nil
}

// normalizeKeyTimestamp rewrites marshaled timestamps into whole-second UTC
// RFC3339 before they enter an index key. The marshaler encodes time values
// as RFC3339Nano, whose variable fractional width breaks lexical range
// conditions on the sort key ("...00.5Z" sorts after the fraction-less
// "...00Z"). Non-timestamp values pass through unchanged.
func normalizeKeyTimestamp(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// expandStringKey replaces macro patterns in the indexMap values with the provided key.
func expandStringKey(indexMap map[string]string, key string) (map[string]string, error) {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllString(template, key)
	}
	return expanded, nil
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It assumes that the expanded map has valid non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}
