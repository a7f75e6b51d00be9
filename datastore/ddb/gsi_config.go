/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

// defaultGSIName is the secondary index carrying the shared notification
// partition and the creation-time sort key.
const defaultGSIName = "GSI1"

// GSIConfig holds the configuration for GSI key mappings
type GSIConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the partition key attribute name in the GSI
	PartitionKeyName string
	// SortKeyName is the sort key attribute name in the GSI
	SortKeyName string
}

// DefaultGSIConfigs holds the default GSI configurations
var DefaultGSIConfigs = map[string]GSIConfig{
	defaultGSIName: {
		IndexName:        defaultGSIName,
		PartitionKeyName: "GSI1PK",
		SortKeyName:      "GSI1SK",
	},
}

// GetGSIConfig returns the GSI configuration for a given index name
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	config, ok := DefaultGSIConfigs[indexName]
	return config, ok
}
