package httpapi

import (
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/snowflake"
)

// createdAtLayout is the v1.1 timestamp format.
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

var errMalformed = errors.New("malformed response")

// decodeStatuses reads a JSON array of statuses, or an object holding one
// under path (search wraps results in "statuses").
func decodeStatuses(body []byte, path string) ([]feed.Item, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", errMalformed)
	}
	list := gjson.ParseBytes(body)
	if path != "" {
		list = list.Get(path)
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of statuses", errMalformed)
	}

	var (
		items []feed.Item
		err   error
	)
	list.ForEach(func(_, v gjson.Result) bool {
		var it feed.Item
		if it, err = decodeStatus(v); err != nil {
			return false
		}
		items = append(items, it)
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// decodeStatus maps one status object to an Item. A repost keeps its own id
// (that is what pagination sees) but shows the original's author, text and
// counts, with the reposting account in RetweetedBy.
func decodeStatus(v gjson.Result) (feed.Item, error) {
	id := statusID(v)
	if !snowflake.Valid(id) || id == snowflake.Zero {
		return feed.Item{}, fmt.Errorf("%w: status without a valid id", errMalformed)
	}

	src := v
	var by *feed.Author
	if rs := v.Get("retweeted_status"); rs.IsObject() {
		reposter := decodeAuthor(v.Get("user"))
		by = &reposter
		src = rs
	}

	text := src.Get("full_text").String()
	if text == "" {
		text = src.Get("text").String()
	}

	it := feed.Item{
		ID:            id,
		Author:        decodeAuthor(src.Get("user")),
		Text:          html.UnescapeString(text),
		Favorited:     src.Get("favorited").Bool(),
		Retweeted:     src.Get("retweeted").Bool(),
		FavoriteCount: int(src.Get("favorite_count").Int()),
		RetweetCount:  int(src.Get("retweet_count").Int()),
		HasMedia:      v.Get("entities.media.#").Int() > 0 || src.Get("entities.media.#").Int() > 0,
		RetweetedBy:   by,
	}
	if ts, err := time.Parse(createdAtLayout, src.Get("created_at").String()); err == nil {
		it.CreatedAt = ts
	}
	return it, nil
}

func decodeAuthor(u gjson.Result) feed.Author {
	return feed.Author{
		ID:         statusID(u),
		Name:       u.Get("name").String(),
		ScreenName: u.Get("screen_name").String(),
		Protected:  u.Get("protected").Bool(),
	}
}

// statusID prefers id_str and falls back to the raw digits of id, which gjson
// keeps verbatim.
func statusID(v gjson.Result) string {
	if s := v.Get("id_str").String(); s != "" {
		return s
	}
	return v.Get("id").Raw
}

// decodeErrorMessage pulls the first API error out of an error body.
func decodeErrorMessage(body []byte) (string, int) {
	if !gjson.ValidBytes(body) {
		return "", 0
	}
	res := gjson.ParseBytes(body)
	if e := res.Get("errors.0"); e.Exists() {
		return e.Get("message").String(), int(e.Get("code").Int())
	}
	return res.Get("error").String(), 0
}
