// Package evidence holds the cache backends and provider lookups behind
// service.EvidenceService.
package evidence
