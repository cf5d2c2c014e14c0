// Package core defines the shared language of folio.
//
// This package contains:
//   - Domain entities (ContentCard, RepoSummary, StatDistribution, TimelineEntry, TranscriptEntry)
//   - Carousel pagination state and its invariants
//   - Provenance labels for the data pipeline tiers
//   - The error taxonomy shared by every widget
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
