package marvel

import "strings"

// unavailableMarker identifies the upstream's placeholder image
const unavailableMarker = "image_not_available"

type envelope struct {
	Code int `json:"code"`
	Data struct {
		Results []character `json:"results"`
	} `json:"data"`
}

type character struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Thumbnail   *thumbnail `json:"thumbnail"`
	Comics      listCount  `json:"comics"`
	Series      listCount  `json:"series"`
	Stories     listCount  `json:"stories"`
}

type listCount struct {
	Available int `json:"available"`
}

type thumbnail struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
}

// URL is the normalized image URL, or "" when there is no usable image
func (t *thumbnail) URL() string {
	if t == nil {
		return ""
	}
	return NormalizeThumbnail(t.Path, t.Extension)
}

// NormalizeThumbnail builds path.extension, upgrades http:// to https:// and
// suppresses the upstream's "image not available" placeholder.
func NormalizeThumbnail(path, extension string) string {
	if path == "" {
		return ""
	}
	u := path + "." + extension
	if strings.HasPrefix(u, "http://") {
		u = "https://" + strings.TrimPrefix(u, "http://")
	}
	if strings.Contains(u, unavailableMarker) {
		return ""
	}
	return u
}
