// Package server manages the lifecycle of the inbound HTTP transport.
// It starts the listener, waits for termination signals, and performs a
// graceful shutdown so in-flight requests are allowed to finish.
package server
