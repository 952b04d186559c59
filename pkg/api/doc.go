// Package api defines the wire-level types shared with the Siteflow
// external API
//
// The payload shapes and enum values in this package are dictated by the
// Siteflow REST contract and must be preserved as-is, not redesigned
package api
