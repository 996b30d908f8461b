// Package metrics provides [sim.Metric] implementations that summarise a
// trajectory as it is recorded.
package metrics
