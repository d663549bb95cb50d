package metadata

import "time"

/*
MetadataSink is the single observational seam every component writes
through. It is implemented by internal/stats.Recorder (the Run Recorder,
component K).

Allowed inputs:
  - Primitive values, timestamps, URLs as strings, hashes, status codes,
    durations, identifiers.

MetadataSink MUST NOT be consulted to decide retries, continuation, or
termination — those decisions are made exclusively from
pkg/failure.ClassifiedError / Severity. A component that finds itself
branching on anything returned by a MetadataSink method has violated this
boundary.
*/
type MetadataSink interface {
	// RecordFetch records one completed (successful or failed) fetch attempt.
	RecordFetch(event FetchEvent)

	// RecordArtifact records one persisted artifact.
	RecordArtifact(record ArtifactRecord)

	// RecordError records one classified failure, tagged with the package
	// and action that produced it.
	RecordError(observedAt time.Time, pkg, action string, cause ErrorCause, errorString string, attrs []Attribute)

	// RecordFinalCrawlStats is called exactly once, at crawl termination,
	// to hand off final counters for summary emission.
	RecordFinalCrawlStats()
}
