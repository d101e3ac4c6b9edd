package domain

// CharacterSummary is a lightweight search hit returned by the proxy
type CharacterSummary struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"` // "" when the upstream has no usable image
}

// HasThumbnail reports whether the summary carries an image URL
func (c CharacterSummary) HasThumbnail() bool {
	return c.ThumbnailURL != ""
}

// CharacterDetail is the full record shown after a character is picked
type CharacterDetail struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ThumbnailURL     string `json:"thumbnailUrl,omitempty"`
	ComicsAvailable  int    `json:"comicsAvailable"`
	SeriesAvailable  int    `json:"seriesAvailable"`
	StoriesAvailable int    `json:"storiesAvailable"`
}

// Summary projects the detail down to its search-list form
func (d CharacterDetail) Summary() CharacterSummary {
	return CharacterSummary{ID: d.ID, Name: d.Name, ThumbnailURL: d.ThumbnailURL}
}

// Health is the proxy's self-report
type Health struct {
	OK            bool `json:"ok"`
	PublicLoaded  bool `json:"publicLoaded"`
	PrivateLoaded bool `json:"privateLoaded"`
}
