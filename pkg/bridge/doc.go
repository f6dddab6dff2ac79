// Package bridge publishes the hat status and accepts control frames over
// MQTT, and streams the status to WebSocket clients.
//
// Topics are relative to the prefix in the broker URL:
//
//	<id>/status  HatStatus, published when the status changes
//	<id>/frames  FrameBatch, forwarded to the hat in order
package bridge
