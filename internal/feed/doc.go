// Package feed implements the windowing and boundary-pagination core for timelines.
//
// A feed is a logically infinite, ID-ordered sequence of items. This package keeps the
// loaded part of it in memory and exposes a small sliding window over it:
//   - Store: deduplicated items, strictly descending by ID (index 0 is newest)
//   - BoundaryOf: exclusive since_id/max_id bounds for the next newer/older fetch
//   - Window: cursor, size and focus over a Store, with navigation that reports
//     exactly when the window has run off the loaded data
//
// Nothing here performs I/O. Callers decide how to fetch when a navigation
// operation invokes its fetch callback.
package feed
