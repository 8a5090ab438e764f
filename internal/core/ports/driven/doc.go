// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The pipeline service depends only on
// these contracts, never on a concrete adapter type.
package driven
