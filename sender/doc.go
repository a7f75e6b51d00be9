/*
Package sender provides the built-in dispatch.Sender implementations.

Each sender declares exactly one notification variant and performs the delivery
side effect for it. The implementations here log a structured delivery record
in place of a real gateway call; production deployments substitute their own
Sender implementations at table-construction time.
*/
package sender
