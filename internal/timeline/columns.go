package timeline

import "fmt"

// Columns is an ordered set of independent timelines with one selected.
// It is not safe for concurrent use.
type Columns struct {
	items   []*Timeline
	current int
}

// NewColumns creates a column set. The first timeline is selected.
func NewColumns(timelines ...*Timeline) *Columns {
	c := &Columns{}
	for _, t := range timelines {
		_ = c.Add(t)
	}
	return c
}

// Add appends a timeline. Names must be unique.
func (c *Columns) Add(t *Timeline) error {
	if c.Get(t.Name()) != nil {
		return fmt.Errorf("column %q already exists", t.Name())
	}
	c.items = append(c.items, t)
	return nil
}

// Close removes the named column, discarding its items.
func (c *Columns) Close(name string) bool {
	for i, t := range c.items {
		if t.Name() != name {
			continue
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
		if i < c.current {
			c.current--
		}
		if c.current >= len(c.items) {
			c.current = max(len(c.items)-1, 0)
		}
		return true
	}
	return false
}

// Len returns the number of columns.
func (c *Columns) Len() int { return len(c.items) }

// All returns the timelines in display order.
func (c *Columns) All() []*Timeline {
	out := make([]*Timeline, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the named timeline, or nil.
func (c *Columns) Get(name string) *Timeline {
	for _, t := range c.items {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// Current returns the selected timeline, or nil when there are no columns.
func (c *Columns) Current() *Timeline {
	if len(c.items) == 0 {
		return nil
	}
	return c.items[c.current]
}

// CurrentIndex returns the index of the selected column.
func (c *Columns) CurrentIndex() int { return c.current }

// Select selects the named column.
func (c *Columns) Select(name string) bool {
	for i, t := range c.items {
		if t.Name() == name {
			c.current = i
			return true
		}
	}
	return false
}

// Next selects the following column, wrapping around.
func (c *Columns) Next() *Timeline {
	if len(c.items) == 0 {
		return nil
	}
	c.current = (c.current + 1) % len(c.items)
	return c.Current()
}

// Prev selects the preceding column, wrapping around.
func (c *Columns) Prev() *Timeline {
	if len(c.items) == 0 {
		return nil
	}
	c.current = (c.current - 1 + len(c.items)) % len(c.items)
	return c.Current()
}
