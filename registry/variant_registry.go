/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UnmarshalFunc defines a function that takes a raw DynamoDB item and returns the unmarshaled notification.
type UnmarshalFunc func(item map[string]types.AttributeValue) (interface{}, error)

// variantRegistry holds the mapping from a variant discriminator (like "SMS" or "EMAIL") to its unmarshal function.
var variantRegistry = make(map[string]UnmarshalFunc)

// RegisterVariant registers an unmarshal function for a given variant discriminator.
// If a function is already registered for the discriminator, it panics to prevent accidental overrides.
func RegisterVariant(variant string, fn UnmarshalFunc) {
	if _, exists := variantRegistry[variant]; exists {
		panic(fmt.Sprintf("variant registry: variant %q already registered", variant))
	}
	variantRegistry[variant] = fn
}

// GetUnmarshalFunc returns the registered unmarshal function for the given variant discriminator.
// If no function is registered, it returns an error.
func GetUnmarshalFunc(variant string) (UnmarshalFunc, error) {
	fn, ok := variantRegistry[variant]
	if !ok {
		return nil, fmt.Errorf("variant registry: no variant registered for %q", variant)
	}
	return fn, nil
}
