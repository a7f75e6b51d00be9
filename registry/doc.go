/*
Package registry manages variant registration and index mapping for NotifyStore.

The registry system enables:
  - Polymorphic notification storage in a single DynamoDB table
  - Dynamic variant resolution based on the EntityType discriminator attribute
  - Flexible key patterns through index maps

Variant Registry:
Maps variant discriminators to unmarshal functions:

	registry.RegisterVariant("SMS", func(item map[string]types.AttributeValue) (interface{}, error) {
	    var n notification.SmsNotification
	    if err := attributevalue.UnmarshalMap(item, &n); err != nil {
	        return nil, err
	    }
	    return &n, nil
	})

Index Map Registry:
Associates Go types with DynamoDB key patterns:

	indexMap := map[string]string{
	    "PK": "NOTIFICATION#{Id}",
	    "SK": "NOTIFICATION#{Id}",
	    "GSI1PK": "NOTIFICATION",
	    "GSI1SK": "{CreatedOn}",
	}
	registry.RegisterIndexMap[notification.SmsNotification](indexMap)

The registry is thread-safe and should be populated during initialization,
typically in init() functions.
*/
package registry
