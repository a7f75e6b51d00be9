/*
Package ddb implements NotifyStore's persistence layer on AWS DynamoDB.

All notification variants share one table. Each item carries the keys expanded
from its registered index map plus an EntityType discriminator attribute:

	PK      NOTIFICATION#<id>
	SK      NOTIFICATION#<id>
	GSI1PK  NOTIFICATION
	GSI1SK  <RFC3339 creation time>

The constant GSI1 partition is what makes polymorphic retrieval a single query:
NotificationStore.FindAll queries GSI1 once and resolves each returned item to
its concrete variant through the variant registry, so SMS and email
notifications come back in one call as their real types.

DynamodbDataStore[T] provides the per-variant typed CRUD surface; query
builders (QueryGSI, QueryByTimeRange) cover campaign-window reads; Stream and
NotificationStore.StreamAll page large result sets through a channel with
retry and progress reporting.
*/
package ddb
