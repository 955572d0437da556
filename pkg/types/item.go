package types

// Display prefixes for an item's rendered form.
const (
	DisplayDone    = "[x] "
	DisplayPending = "[ ] "
)

// Item is a single todo entry. Only Text and Done are persisted; the
// display string is always derived.
type Item struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// NewItem returns a pending item holding text verbatim. No validation is
// performed here; the store trims and rejects empty input.
func NewItem(text string) Item {
	return Item{Text: text}
}

// Toggle flips the completion flag.
func (i *Item) Toggle() {
	i.Done = !i.Done
}

// Display returns "[x] text" for done items and "[ ] text" otherwise.
func (i Item) Display() string {
	if i.Done {
		return DisplayDone + i.Text
	}
	return DisplayPending + i.Text
}
