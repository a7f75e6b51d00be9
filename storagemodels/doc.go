/*
Package storagemodels holds the query and streaming parameter types shared by
NotifyStore datastore implementations.

QueryParams describes one DynamoDB Query; the Stream* types configure and carry
the results of streaming reads used for large campaign batches.
*/
package storagemodels
