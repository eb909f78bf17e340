// Package cache keeps older timeline pages on disk.
//
// A page of items older than a given max_id never changes once it has been
// published, so it can be served from a local file instead of the network:
//   - File-based storage under ~/.feedline/cache/, one JSON file per page
//   - Configurable TTL (default 1 hour) after which a page is fetched again
//   - SHA256 keys derived from the column namespace and max_id
//
// Newer pages are never cached; they are by definition the part of a feed
// that is still changing.
package cache
