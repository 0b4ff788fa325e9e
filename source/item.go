package source

// Item is a normalized content entry of a listing.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image"`
	Badge    string `json:"badge"`
	// Extra is a secondary badge such as the latest episode.
	Extra string `json:"extra,omitempty"`
	// Source is the id of the adapter that produced the item.
	Source string `json:"source"`
}

func (i *Item) String() string {
	return i.Title
}
