package httpapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/timeline"
)

var _ timeline.Actions = (*Client)(nil)

// Favorite likes id.
func (c *Client) Favorite(ctx context.Context, id string) (feed.Item, error) {
	return c.toggle(ctx, "favorites/create", id, true, func(it *feed.Item) { it.Favorited = true })
}

// Unfavorite removes the like on id.
func (c *Client) Unfavorite(ctx context.Context, id string) (feed.Item, error) {
	return c.toggle(ctx, "favorites/destroy", id, true, func(it *feed.Item) { it.Favorited = false })
}

// Retweet reposts id.
func (c *Client) Retweet(ctx context.Context, id string) (feed.Item, error) {
	return c.toggle(ctx, "statuses/retweet/"+url.PathEscape(id), id, false, func(it *feed.Item) { it.Retweeted = true })
}

// Unretweet removes the repost of id.
func (c *Client) Unretweet(ctx context.Context, id string) (feed.Item, error) {
	return c.toggle(ctx, "statuses/unretweet/"+url.PathEscape(id), id, false, func(it *feed.Item) { it.Retweeted = false })
}

// Delete removes one of the account's own items.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "statuses/destroy/"+url.PathEscape(id), url.Values{})
	return err
}

// Post creates a new status with text.
func (c *Client) Post(ctx context.Context, text string) (feed.Item, error) {
	const endpoint = "statuses/update"
	params := url.Values{}
	params.Set("status", text)
	params.Set("tweet_mode", "extended")

	body, err := c.do(ctx, http.MethodPost, endpoint, params)
	if err != nil {
		return feed.Item{}, err
	}
	it, err := decodeStatus(gjson.ParseBytes(body))
	if err != nil {
		return feed.Item{}, &APIError{Method: http.MethodPost, Endpoint: endpoint, StatusCode: http.StatusOK, Message: err.Error()}
	}
	return it, nil
}

// toggle posts to endpoint and forces the flag the action sets.
func (c *Client) toggle(ctx context.Context, endpoint, id string, idParam bool, set func(*feed.Item)) (feed.Item, error) {
	it, err := c.post(ctx, endpoint, id, idParam)
	if err != nil {
		return feed.Item{}, err
	}
	set(&it)
	return it, nil
}

// post calls an action endpoint and decodes the status it returns. The
// returned item always carries id: the API answers a repost with the new
// status wrapping the original, and the caller's store only knows id.
func (c *Client) post(ctx context.Context, endpoint, id string, idParam bool) (feed.Item, error) {
	params := url.Values{}
	params.Set("tweet_mode", "extended")
	if idParam {
		params.Set("id", id)
	}

	body, err := c.do(ctx, http.MethodPost, endpoint, params)
	if err != nil {
		return feed.Item{}, err
	}

	v := gjson.ParseBytes(body)
	if statusID(v) != id {
		if rs := v.Get("retweeted_status"); rs.IsObject() && statusID(rs) == id {
			v = rs
		}
	}
	it, err := decodeStatus(v)
	if err != nil {
		return feed.Item{}, &APIError{Method: http.MethodPost, Endpoint: endpoint, StatusCode: http.StatusOK, Message: err.Error()}
	}
	it.ID = id
	return it, nil
}
