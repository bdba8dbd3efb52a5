// Package messaging provides a broker-agnostic publish/consume client.
//
// The concrete broker (NSQ, NATS, Kafka or Google Pub/Sub) is selected by a
// config driver name through NewFromDriver, so application modules depend only
// on the Messaging interface.
package messaging
