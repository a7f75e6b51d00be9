/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/notifystore/storagemodels"
)

// GSIQueryBuilder provides a fluent interface for building GSI queries against
// the notification partition.
type GSIQueryBuilder[T any] struct {
	store      *DynamodbDataStore[T]
	indexName  string
	pkValue    string
	skValue    string
	skUpper    string
	skOperator string // "=", "begins_with", ">", "<", ">=", "<=", "BETWEEN"
	filters    []string
	filterVals map[string]types.AttributeValue
	limit      *int32
	ascending  *bool
}

// QueryGSI creates a new GSI query builder on the default index.
func (d *DynamodbDataStore[T]) QueryGSI() *GSIQueryBuilder[T] {
	return &GSIQueryBuilder[T]{
		store:      d,
		indexName:  defaultGSIName,
		filterVals: make(map[string]types.AttributeValue),
	}
}

// WithIndex selects a non-default GSI.
func (q *GSIQueryBuilder[T]) WithIndex(name string) *GSIQueryBuilder[T] {
	q.indexName = name
	return q
}

// WithPartitionKey sets the GSI partition key value.
func (q *GSIQueryBuilder[T]) WithPartitionKey(value string) *GSIQueryBuilder[T] {
	q.pkValue = value
	return q
}

// WithSortKey sets the GSI sort key value with the equals operator.
func (q *GSIQueryBuilder[T]) WithSortKey(value string) *GSIQueryBuilder[T] {
	q.skValue = value
	q.skOperator = "="
	return q
}

// WithSortKeyPrefix matches sort keys beginning with the given prefix.
func (q *GSIQueryBuilder[T]) WithSortKeyPrefix(prefix string) *GSIQueryBuilder[T] {
	q.skValue = prefix
	q.skOperator = "begins_with"
	return q
}

// WithSortKeyGreaterOrEqual matches sort keys at or after the given value.
func (q *GSIQueryBuilder[T]) WithSortKeyGreaterOrEqual(value string) *GSIQueryBuilder[T] {
	q.skValue = value
	q.skOperator = ">="
	return q
}

// WithSortKeyLessThan matches sort keys before the given value.
func (q *GSIQueryBuilder[T]) WithSortKeyLessThan(value string) *GSIQueryBuilder[T] {
	q.skValue = value
	q.skOperator = "<"
	return q
}

// WithSortKeyBetween matches sort keys in the inclusive range [start, end].
func (q *GSIQueryBuilder[T]) WithSortKeyBetween(start, end string) *GSIQueryBuilder[T] {
	q.skValue = start
	q.skUpper = end
	q.skOperator = "BETWEEN"
	return q
}

// WithFilter adds a filter expression and its placeholder values.
func (q *GSIQueryBuilder[T]) WithFilter(expression string, values map[string]types.AttributeValue) *GSIQueryBuilder[T] {
	q.filters = append(q.filters, expression)
	for k, v := range values {
		q.filterVals[k] = v
	}
	return q
}

// WithLimit caps the number of returned items.
func (q *GSIQueryBuilder[T]) WithLimit(limit int32) *GSIQueryBuilder[T] {
	q.limit = aws.Int32(limit)
	return q
}

// WithOrder sets ascending (true) or descending (false) sort-key traversal.
func (q *GSIQueryBuilder[T]) WithOrder(ascending bool) *GSIQueryBuilder[T] {
	q.ascending = aws.Bool(ascending)
	return q
}

// Build constructs the final query parameters.
func (q *GSIQueryBuilder[T]) Build() (*storagemodels.QueryParams, error) {
	if q.pkValue == "" {
		return nil, fmt.Errorf("GSI query requires a partition key value")
	}
	gsi, ok := GetGSIConfig(q.indexName)
	if !ok {
		return nil, fmt.Errorf("unknown GSI %q", q.indexName)
	}

	exprVals := map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: q.pkValue},
	}
	keyConditions := []string{gsi.PartitionKeyName + " = :pk"}

	if q.skOperator != "" {
		exprVals[":sk"] = &types.AttributeValueMemberS{Value: q.skValue}
		switch q.skOperator {
		case "begins_with":
			keyConditions = append(keyConditions, fmt.Sprintf("begins_with(%s, :sk)", gsi.SortKeyName))
		case "BETWEEN":
			exprVals[":sk2"] = &types.AttributeValueMemberS{Value: q.skUpper}
			keyConditions = append(keyConditions, fmt.Sprintf("%s BETWEEN :sk AND :sk2", gsi.SortKeyName))
		default:
			keyConditions = append(keyConditions, fmt.Sprintf("%s %s :sk", gsi.SortKeyName, q.skOperator))
		}
	}

	params := &storagemodels.QueryParams{
		TableName:                 q.store.tableName,
		KeyConditionExpression:    strings.Join(keyConditions, " AND "),
		ExpressionAttributeValues: exprVals,
		IndexName:                 aws.String(gsi.IndexName),
		Limit:                     q.limit,
		ScanIndexForward:          q.ascending,
	}

	if len(q.filters) > 0 {
		params.FilterExpression = aws.String(strings.Join(q.filters, " AND "))
		for k, v := range q.filterVals {
			params.ExpressionAttributeValues[k] = v
		}
	}

	return params, nil
}

// Execute runs the query and returns variant-resolved results narrowed to T.
func (q *GSIQueryBuilder[T]) Execute(ctx context.Context) ([]T, error) {
	params, err := q.Build()
	if err != nil {
		return nil, err
	}

	results, err := q.store.Query(ctx, params)
	if err != nil {
		return nil, err
	}

	typedResults := make([]T, 0, len(results))
	for _, r := range results {
		if typed, ok := r.(T); ok {
			typedResults = append(typedResults, typed)
		} else if typed, ok := r.(*T); ok {
			typedResults = append(typedResults, *typed)
		}
	}
	return typedResults, nil
}

// Stream executes the query as a stream.
func (q *GSIQueryBuilder[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	params, err := q.Build()
	if err != nil {
		ch := make(chan storagemodels.StreamResult[T], 1)
		ch <- storagemodels.StreamResult[T]{Error: fmt.Errorf("failed to build query: %w", err)}
		close(ch)
		return ch
	}
	return q.store.Stream(ctx, params, opts...)
}
