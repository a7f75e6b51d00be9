/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides in-memory implementations of the datastore contracts for testing
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/suparena/notifystore/errors"
	"github.com/suparena/notifystore/notification"
	"github.com/suparena/notifystore/storagemodels"
)

// DataStore is a mock implementation of datastore.DataStore[T] for testing
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	order       []string
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)
	getKeyFunc  func(entity T) string
	putError    error
	deleteError error
}

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities
func (m *DataStore[T]) WithGetKeyFunc(f func(T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore[T]) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)) *DataStore[T] {
	m.queryFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// GetOne retrieves an entity by key
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}

	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Put stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.extractKey(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = entity
	return nil
}

// Query runs the configured query function, or returns stored entities in
// insertion order when none is configured
func (m *DataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]interface{}, 0, len(m.order))
	for _, key := range m.order {
		entity := m.data[key]
		results = append(results, &entity)
	}
	return results, nil
}

// Stream emits stored entities in insertion order on a channel
func (m *DataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	ch := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go func() {
		defer close(ch)

		m.mu.RLock()
		entities := make([]T, 0, len(m.order))
		for _, key := range m.order {
			entities = append(entities, m.data[key])
		}
		m.mu.RUnlock()

		for i, entity := range entities {
			select {
			case <-ctx.Done():
				return
			case ch <- storagemodels.StreamResult[T]{
				Item: entity,
				Meta: storagemodels.StreamMeta{Index: int64(i), PageNumber: 1},
			}:
			}
		}
	}()
	return ch
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}
	delete(m.data, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored entities
func (m *DataStore[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *DataStore[T]) extractKey(entity T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}
	if keyed, ok := any(entity).(interface{ NotificationID() string }); ok {
		return keyed.NotificationID()
	}
	if keyed, ok := any(&entity).(interface{ NotificationID() string }); ok {
		return keyed.NotificationID()
	}
	return ""
}

// NotificationStore is a mock implementation of datastore.NotificationStore.
// It preserves insertion order, which defines the dispatch order under test.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications []notification.Notification
	findAllError  error
}

// NewNotificationStore creates an empty mock notification store
func NewNotificationStore(ns ...notification.Notification) *NotificationStore {
	return &NotificationStore{notifications: ns}
}

// WithFindAllError makes FindAll and FindSince return an error
func (m *NotificationStore) WithFindAllError(err error) *NotificationStore {
	m.findAllError = err
	return m
}

// Add appends notifications to the store
func (m *NotificationStore) Add(ns ...notification.Notification) *NotificationStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, ns...)
	return m
}

// FindAll returns every stored notification in insertion order
func (m *NotificationStore) FindAll(ctx context.Context) ([]notification.Notification, error) {
	if m.findAllError != nil {
		return nil, m.findAllError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]notification.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out, nil
}

// FindSince filters stored notifications by creation time. Creation times are
// truncated to whole seconds before comparing, matching the second-granular
// sort key the DynamoDB store queries against.
func (m *NotificationStore) FindSince(ctx context.Context, since string) ([]notification.Notification, error) {
	all, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cutoff, err := time.Parse(time.RFC3339, since)
	if err != nil {
		return nil, errors.NewValidationError("since", "must be an RFC3339 timestamp")
	}

	out := make([]notification.Notification, 0, len(all))
	for _, n := range all {
		if c, ok := n.(interface{ CreatedAt() time.Time }); ok && c.CreatedAt().Truncate(time.Second).Before(cutoff) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
