// Package timeouts defines the timeout constants shared by the site binaries
// so server and client limits are discoverable in one place.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// EmailSend caps one outbound email provider call, connection included.
const EmailSend = 10 * time.Second

// ContentDebounce groups bursts of content file events into one re-check.
const ContentDebounce = 250 * time.Millisecond
