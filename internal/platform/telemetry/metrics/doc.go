// Package metrics collects the site's operational metrics and exposes them
// in Prometheus format.
//
// # Metric Categories
//
//   - Latency: request duration histograms by method and status code
//   - Content: problems found while listing posts, by problem kind
//   - Contact: contact form sends, by outcome
//
// # Integration
//
// HTTP handlers are instrumented through Metrics.Middleware and the
// collectors are served on /metrics from Metrics.Handler. Each Metrics value
// owns its registry, so tests can build as many as they need.
package metrics
