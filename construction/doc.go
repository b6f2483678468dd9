// Package construction implements the construction space: the store of
// identified points, lines and circles built with straightedge and compass,
// together with the append-only history of how they were made.
//
// Lines and circles refer to points by identifier only. Every geometric
// query resolves those identifiers through the owning [Space], so a space can
// be serialized as a [Snapshot] and rebuilt with [Replay] without dangling
// references.
//
// A Space is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package construction
