// Package demo serves a synthetic, deterministic feed for offline use.
//
// Every Feed generates the same items for the same name: IDs start above
// 2^63 so they overflow int64 and exercise exact decimal bounds, and
// consecutive IDs are at least two apart. Pages follow the upstream API's
// bound rules: since_id selects ids strictly greater, max_id selects ids
// less than or equal. A Feed also implements timeline.Actions so favorites,
// reposts and deletes can be tried without an account.
package demo
