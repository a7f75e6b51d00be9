/*
Package notifystore provides polymorphic notification storage and
variant-keyed delivery dispatch for Go applications.

Notifications of different shapes (SMS, email) share one storage partition and
come back from a single polymorphic read as their concrete types. A dispatch
table, built once at startup from an explicit list of senders, routes each
retrieved notification to the sender registered for its variant.

Basic Usage:

	client, _ := ddb.NewDynamoDBClient(accessKey, secretKey, region)
	store := ddb.NewNotificationStore(client, tableName)

	svc, err := notifystore.NewCampaignService(store, []dispatch.Sender{
	    sender.NewSmsSender(logger),
	    sender.NewEmailSender(logger),
	}, logger)
	if err != nil {
	    // ambiguous sender registration is a startup failure
	    log.Fatal(err)
	}

	err = svc.SendCampaign(ctx, "Black Friday",
	    "High-Performance Java Persistence is 40% OFF")

Key Features:
  - Type-safe per-variant datastores using Go generics
  - Single-query polymorphic retrieval via an EntityType discriminator
  - Explicit sender registration with ambiguity detection at startup
  - Routing failures identify the offending notification, never drop it
  - Streaming reads with retry logic and progress tracking
  - Semantic error types for better error handling
  - Comprehensive mock implementations for testing

For more information, see the documentation at https://github.com/suparena/notifystore
*/
package notifystore
