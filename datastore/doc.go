/*
Package datastore defines the core interfaces for NotifyStore's persistence layer.

DataStore[T] provides generic CRUD operations for one notification variant T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]interface{}, error)
	    Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	    Delete(ctx context.Context, key string) error
	}

NotificationStore is the polymorphic contract the campaign service consumes:
one FindAll call returns every persisted notification regardless of variant,
each resolved to its concrete type through the variant registry.

Implementations:
  - ddb: DynamoDB implementation with single-table design and an EntityType discriminator
  - mock: In-memory mock implementation for testing
*/
package datastore
