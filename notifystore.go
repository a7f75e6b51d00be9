/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notifystore

import (
	"fmt"
	"sync"

	"github.com/suparena/notifystore/notification"
)

// Storage is a higher-level interface that manages the DataStore instances
// backing each notification variant. Its methods are not generic; they use the
// empty interface (any) so stores of different variants can live in one map.
type Storage interface {
	// RegisterDataStore registers a DataStore under a notification variant.
	RegisterDataStore(v notification.Variant, ds any) error
	// GetDataStore retrieves the registered DataStore for a variant.
	// The caller must type-assert the returned value to the appropriate DataStore type.
	GetDataStore(v notification.Variant) (any, error)
}

// storageManager is a thread-safe implementation of the Storage interface.
type storageManager struct {
	mu     sync.RWMutex
	stores map[notification.Variant]any
}

// NewStorageManager creates and returns a new Storage implementation.
func NewStorageManager() Storage {
	return &storageManager{
		stores: make(map[notification.Variant]any),
	}
}

// RegisterDataStore stores the provided DataStore under the given variant.
func (sm *storageManager) RegisterDataStore(v notification.Variant, ds any) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.stores[v]; exists {
		return fmt.Errorf("datastore for variant %q already registered", v)
	}
	sm.stores[v] = ds
	return nil
}

// GetDataStore retrieves the DataStore associated with the given variant.
func (sm *storageManager) GetDataStore(v notification.Variant) (any, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ds, exists := sm.stores[v]
	if !exists {
		return nil, fmt.Errorf("datastore for variant %q not found", v)
	}
	return ds, nil
}
