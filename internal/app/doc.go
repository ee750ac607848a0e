// Package app wires the dashboard service together: configuration,
// logging, metrics, the dataset and health services, the websocket hub,
// the chi router with its middleware stack, and the HTTP server with
// graceful shutdown on SIGINT/SIGTERM.
//
// All components are constructed in NewApplication and injected through
// constructors, so every piece can be exercised in isolation by tests.
package app
