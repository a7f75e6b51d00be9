/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// IndexMapRegistry is a registry for Go types and their DynamoDB index maps.

var (
	indexMapRegistry = make(map[reflect.Type]map[string]string)
	mu               sync.RWMutex
)

// RegisterIndexMap associates a Go type T with a given DynamoDB index map (PK, SK, GSIs).
// Pointer and value forms of T share one registration.
func RegisterIndexMap[T any](idxMap map[string]string) {
	mu.Lock()
	defer mu.Unlock()
	indexMapRegistry[indexMapKey[T]()] = idxMap
}

// GetIndexMap retrieves the index map for type T, if any.
func GetIndexMap[T any]() (map[string]string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMapRegistry[indexMapKey[T]()]
	return m, ok
}

func indexMapKey[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
