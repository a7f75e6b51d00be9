/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/notifystore/storagemodels"
)

// Stream performs a streaming query against DynamoDB with configurable
// buffering, paging and retry behavior. Items are unmarshaled directly into T;
// use NotificationStore.StreamAll for variant-resolved polymorphic streams.
func (d *DynamodbDataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	return streamQuery[T](ctx, d.client, params, func(item map[string]types.AttributeValue) (T, error) {
		var result T
		if err := attributevalue.UnmarshalMap(item, &result); err != nil {
			return result, fmt.Errorf("failed to unmarshal item to %T: %w", result, err)
		}
		return result, nil
	}, opts...)
}

// streamQuery pages through a query in a background goroutine, pushing each
// resolved item onto the returned channel. The channel closes when the query
// is exhausted, a non-recoverable error is sent, or ctx is cancelled.
func streamQuery[T any](
	ctx context.Context,
	client *dynamodb.Client,
	params *storagemodels.QueryParams,
	resolve func(map[string]types.AttributeValue) (T, error),
	opts ...storagemodels.StreamOption,
) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go func() {
		defer close(resultCh)

		input := &dynamodb.QueryInput{
			TableName:                 &params.TableName,
			KeyConditionExpression:    &params.KeyConditionExpression,
			ExpressionAttributeValues: params.ExpressionAttributeValues,
			FilterExpression:          params.FilterExpression,
			IndexName:                 params.IndexName,
			Limit:                     aws.Int32(options.PageSize),
			ScanIndexForward:          params.ScanIndexForward,
			ExclusiveStartKey:         params.ExclusiveStartKey,
		}

		var (
			itemIndex  int64
			pageNumber int
			pageErrors []error
		)
		startTime := time.Now()

		reportProgress := func(lastKey map[string]types.AttributeValue) {
			if options.ProgressHandler == nil {
				return
			}
			progress := storagemodels.StreamProgress{
				ItemsProcessed: itemIndex,
				PagesProcessed: pageNumber,
				LastKey:        lastKey,
				Errors:         pageErrors,
				StartTime:      startTime,
			}
			if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
				progress.CurrentRate = float64(itemIndex) / elapsed
			}
			options.ProgressHandler(progress)
		}

		for {
			if ctx.Err() != nil {
				return
			}

			out, err := queryWithRetry(ctx, client, input, options)
			if err != nil {
				if options.ErrorHandler != nil && options.ErrorHandler(err) {
					pageErrors = append(pageErrors, err)
					continue
				}
				select {
				case resultCh <- storagemodels.StreamResult[T]{
					Error: fmt.Errorf("query failed: %w", err),
					Meta:  storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()},
				}:
				case <-ctx.Done():
				}
				return
			}

			pageNumber++
			for _, item := range out.Items {
				result := storagemodels.StreamResult[T]{
					Raw:  item,
					Meta: storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()},
				}
				result.Item, result.Error = resolve(item)
				if result.Error != nil {
					pageErrors = append(pageErrors, result.Error)
				}
				itemIndex++

				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}

			reportProgress(out.LastEvaluatedKey)

			if len(out.LastEvaluatedKey) == 0 {
				return
			}
			input.ExclusiveStartKey = out.LastEvaluatedKey
		}
	}()

	return resultCh
}

// queryWithRetry executes a query, retrying transient DynamoDB failures with
// linear backoff.
func queryWithRetry(
	ctx context.Context,
	client *dynamodb.Client,
	input *dynamodb.QueryInput,
	options storagemodels.StreamOptions,
) (*dynamodb.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}
		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is retryable.
func isRetryableError(err error) bool {
	switch err.(type) {
	case *types.ProvisionedThroughputExceededException:
		return true
	case *types.RequestLimitExceeded:
		return true
	case *types.InternalServerError:
		return true
	}
	if awsErr, ok := err.(interface{ IsRetryable() bool }); ok {
		return awsErr.IsRetryable()
	}
	return false
}
