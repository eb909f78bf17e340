// Package snowflake provides exact arithmetic on decimal item identifiers.
//
// Feed providers hand out 64-bit identifiers encoded as decimal strings. Those values
// exceed the 53-bit precision of float64, so every increment, decrement and comparison
// goes through math/big. Key operations:
//   - Increment/Decrement: compute exclusive since_id/max_id fetch bounds
//   - Compare: order two identifiers by recency
//   - Valid: reject identifiers that are not non-negative decimal strings
//   - Canonical: strip leading zeros so "007" and "7" name the same item
package snowflake
