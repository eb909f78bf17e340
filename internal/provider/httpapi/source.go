package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/snowflake"
	"github.com/rshade/feedline/internal/timeline"
)

// Source is the paginator for one column.
type Source struct {
	client   *Client
	endpoint string
	// wrapped is the JSON path holding the statuses, "" for a bare array.
	wrapped string
	params  url.Values
}

var _ timeline.Paginator = (*Source)(nil)

// Source returns the paginator for a column of the given kind. listID is
// required for lists and query for searches.
func (c *Client) Source(kind timeline.Kind, listID, query string) (*Source, error) {
	s := &Source{client: c, params: url.Values{}}
	s.params.Set("tweet_mode", "extended")
	s.params.Set("include_entities", "true")

	switch kind {
	case timeline.KindHome:
		s.endpoint = "statuses/home_timeline"
	case timeline.KindMentions:
		s.endpoint = "statuses/mentions_timeline"
	case timeline.KindList:
		if listID == "" {
			return nil, errors.New("list column needs a list_id")
		}
		s.endpoint = "lists/statuses"
		s.params.Set("list_id", listID)
	case timeline.KindSearch:
		if query == "" {
			return nil, errors.New("search column needs a query")
		}
		s.endpoint = "search/tweets"
		s.wrapped = "statuses"
		s.params.Set("q", query)
		s.params.Set("result_type", "recent")
	default:
		return nil, errors.New("unsupported column kind " + kind.String())
	}
	return s, nil
}

// Endpoint returns the endpoint path the source reads.
func (s *Source) Endpoint() string { return s.endpoint }

// FetchNewer requests items with ids above sinceID.
func (s *Source) FetchNewer(ctx context.Context, sinceID string) ([]feed.Item, error) {
	return s.fetch(ctx, "since_id", sinceID)
}

// FetchOlder requests items with ids at or below maxID.
func (s *Source) FetchOlder(ctx context.Context, maxID string) ([]feed.Item, error) {
	return s.fetch(ctx, "max_id", maxID)
}

func (s *Source) fetch(ctx context.Context, boundParam, bound string) ([]feed.Item, error) {
	params := url.Values{}
	for k, v := range s.params {
		params[k] = v
	}
	params.Set("count", s.client.countParam())
	if bound != "" && bound != snowflake.Zero {
		params.Set(boundParam, bound)
	}

	body, err := s.client.do(ctx, http.MethodGet, s.endpoint, params)
	if err != nil {
		return nil, err
	}
	items, err := decodeStatuses(body, s.wrapped)
	if err != nil {
		return nil, &APIError{Method: http.MethodGet, Endpoint: s.endpoint, StatusCode: http.StatusOK, Message: err.Error()}
	}
	return items, nil
}
