package feed

import "github.com/rshade/feedline/internal/snowflake"

// Boundary holds the exclusive ID bounds for the next fetch in each direction.
type Boundary struct {
	// SinceID requests items strictly newer than the newest loaded item.
	SinceID string `json:"since_id"`
	// MaxID requests items strictly older than the oldest loaded item.
	MaxID string `json:"max_id"`
}

// BoundaryOf computes the fetch bounds from the extremes of s.
// An empty store yields "0" for both bounds.
func BoundaryOf(s *Store) Boundary {
	first, ok := s.First()
	if !ok {
		return Boundary{SinceID: snowflake.Zero, MaxID: snowflake.Zero}
	}
	last, _ := s.Last()

	// Store only admits valid ids, so the Must variants cannot panic here.
	return Boundary{
		SinceID: snowflake.MustIncrement(first.ID),
		MaxID:   snowflake.MustDecrement(last.ID),
	}
}
