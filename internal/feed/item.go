package feed

import "time"

// Author identifies the account that posted an item.
type Author struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
	Protected  bool   `json:"protected"`
}

// Item is a single feed entry. Items are treated as immutable values; an
// updated copy replaces the old one through Store.Replace.
type Item struct {
	// ID is a decimal identifier; higher means newer.
	ID string `json:"id"`

	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	Favorited     bool `json:"favorited"`
	Retweeted     bool `json:"retweeted"`
	FavoriteCount int  `json:"favorite_count"`
	RetweetCount  int  `json:"retweet_count"`
	HasMedia      bool `json:"has_media"`

	// RetweetedBy is set when the item was reposted into the feed by another account.
	// Author is then the original poster.
	RetweetedBy *Author `json:"retweeted_by,omitempty"`
}

// IsRetweet reports whether the item reached the feed through a repost.
func (i Item) IsRetweet() bool {
	return i.RetweetedBy != nil
}
