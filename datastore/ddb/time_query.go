/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"time"

	"github.com/suparena/notifystore/storagemodels"
)

// TimeRangeQueryBuilder narrows a GSI query to a campaign time window. The
// GSI1 sort key holds the creation timestamp as fixed-width whole-second UTC
// RFC3339, so string comparison is chronological comparison at second
// granularity. Window bounds are truncated to the same granularity, so a
// fractional bound errs toward inclusion rather than dropping notifications
// created inside its second.
type TimeRangeQueryBuilder[T any] struct {
	*GSIQueryBuilder[T]
}

// QueryByTimeRange creates a time-window query over the notification partition.
func (d *DynamodbDataStore[T]) QueryByTimeRange() *TimeRangeQueryBuilder[T] {
	return &TimeRangeQueryBuilder[T]{
		GSIQueryBuilder: d.QueryGSI().WithPartitionKey(notificationPartition),
	}
}

// Since keeps notifications created at or after the given timestamp.
func (q *TimeRangeQueryBuilder[T]) Since(t time.Time) *TimeRangeQueryBuilder[T] {
	q.WithSortKeyGreaterOrEqual(t.UTC().Format(time.RFC3339))
	return q
}

// Before keeps notifications created before the given timestamp.
func (q *TimeRangeQueryBuilder[T]) Before(t time.Time) *TimeRangeQueryBuilder[T] {
	q.WithSortKeyLessThan(t.UTC().Format(time.RFC3339))
	return q
}

// Between keeps notifications created in the inclusive window [start, end].
func (q *TimeRangeQueryBuilder[T]) Between(start, end time.Time) *TimeRangeQueryBuilder[T] {
	q.WithSortKeyBetween(start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	return q
}

// InLastHours keeps notifications created in the last N hours.
func (q *TimeRangeQueryBuilder[T]) InLastHours(hours int) *TimeRangeQueryBuilder[T] {
	return q.Since(time.Now().Add(-time.Duration(hours) * time.Hour))
}

// Latest returns results newest first.
func (q *TimeRangeQueryBuilder[T]) Latest() *TimeRangeQueryBuilder[T] {
	q.WithOrder(false)
	return q
}

// Oldest returns results oldest first.
func (q *TimeRangeQueryBuilder[T]) Oldest() *TimeRangeQueryBuilder[T] {
	q.WithOrder(true)
	return q
}

// Execute runs the query and returns results narrowed to T.
func (q *TimeRangeQueryBuilder[T]) Execute(ctx context.Context) ([]T, error) {
	return q.GSIQueryBuilder.Execute(ctx)
}

// Stream executes the query as a stream.
func (q *TimeRangeQueryBuilder[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	return q.GSIQueryBuilder.Stream(ctx, opts...)
}
