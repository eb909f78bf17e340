package demo

import (
	"math/big"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rshade/feedline/internal/feed"
)

var authors = []feed.Author{
	{ID: "1001", Name: "Ada Byte", ScreenName: "adabyte"},
	{ID: "1002", Name: "Gopher Weekly", ScreenName: "gopherweekly"},
	{ID: "1003", Name: "ミナ", ScreenName: "mina_dev"},
	{ID: "1004", Name: "Linus Terminal", ScreenName: "tty_linus", Protected: true},
	{ID: "1005", Name: "Ops Pager", ScreenName: "pagerduty_bot"},
	{ID: "1006", Name: "Rosa 🌤", ScreenName: "rosa_clouds"},
}

var own = feed.Author{ID: "1000", Name: "You", ScreenName: OwnScreenName}

var words = strings.Fields(`
	the build is green again after a long night of flaky tests
	shipping a tiny CLI today that pages through a timeline five items at a time
	reminder that snowflake ids do not fit in a float64
	coffee first then refactor the cursor math
	terminal UIs are back and honestly they never left
	rate limits hit at the worst moment
	new blog post on exclusive pagination bounds
	🧊 cold deploys are the best deploys
	今日は良い天気ですね
	who else reads the changelog before upgrading
`)

// generate builds total items, newest first, for the named feed.
func generate(name string, total int, newest time.Time) []feed.Item {
	s := seed(name)
	rng := rand.New(rand.NewPCG(s, s>>1|1))

	id := new(big.Int).Add(baseID, big.NewInt(int64(s%1000)*1_000_000))
	gap := new(big.Int)

	items := make([]feed.Item, total)
	// Fill from the oldest so ids only ever grow.
	for i := total - 1; i >= 0; i-- {
		gap.SetInt64(int64(2 + rng.IntN(maxGap)))
		id.Add(id, gap)
		items[i] = feed.Item{
			ID:            id.String(),
			Text:          sentence(rng),
			FavoriteCount: rng.IntN(40),
			RetweetCount:  rng.IntN(15),
			HasMedia:      i%5 == 3,
		}
	}

	at := newest
	for i := range items {
		it := &items[i]
		it.CreatedAt = at
		at = at.Add(-time.Duration(1+rng.IntN(10)) * time.Minute)

		switch {
		case i%ownEvery == 0:
			it.Author = own
		case i%7 == 4:
			it.Author = authors[rng.IntN(len(authors))]
			by := authors[(i/7)%len(authors)]
			it.RetweetedBy = &by
		default:
			it.Author = authors[rng.IntN(len(authors))]
		}
	}
	return items
}

func sentence(rng *rand.Rand) string {
	n := 4 + rng.IntN(14)
	start := rng.IntN(len(words))
	out := make([]string, 0, n)
	for i := range n {
		out = append(out, words[(start+i)%len(words)])
	}
	return strings.Join(out, " ")
}
