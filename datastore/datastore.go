/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/notifystore/notification"
	"github.com/suparena/notifystore/storagemodels"
)

// DataStore is the generic persistence contract for one notification variant T.
type DataStore[T any] interface {
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)

	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]

	Delete(ctx context.Context, key string) error
}

// NotificationStore is the polymorphic retrieval contract consumed by the
// campaign service. FindAll returns every persisted notification across all
// variants in a single call, each already resolved to its concrete type so the
// dispatch table can recover the variant. How the store implements that
// (joins, single-table discriminator, ...) is its own concern.
type NotificationStore interface {
	FindAll(ctx context.Context) ([]notification.Notification, error)

	// FindSince returns notifications created at or after the given RFC3339
	// timestamp, across all variants.
	FindSince(ctx context.Context, since string) ([]notification.Notification, error)
}
