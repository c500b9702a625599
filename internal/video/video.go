// Package video turns reference video links from the workout plan into
// embeddable player references. Only a handful of known YouTube URL shapes
// are supported; anything else degrades to a no-preview placeholder that
// keeps the raw outbound link.
package video

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Embed is the parse result handed to presentation surfaces. When Playable
// is false the surface shows a placeholder and the raw link only.
type Embed struct {
	ID           string `json:"id,omitempty"`
	EmbedURL     string `json:"embed_url,omitempty"`
	StartSeconds int    `json:"start_seconds,omitempty"`
	WatchURL     string `json:"watch_url"`
	Playable     bool   `json:"playable"`
}

// YouTube video IDs are 11 URL-safe base64 characters.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Parse recognizes watch?v=, youtu.be/, shorts/ and embed/ URL shapes,
// with an optional start offset (t= or start=). Parse never fails: unknown
// shapes come back as a non-playable placeholder.
func Parse(raw string) Embed {
	placeholder := Embed{WatchURL: raw}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return placeholder
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	q := u.Query()

	var id string
	var start int
	switch host {
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = q.Get("v")
			start = offsetSeconds(q.Get("t"))
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.Trim(strings.TrimPrefix(u.Path, "/shorts/"), "/")
			start = offsetSeconds(q.Get("t"))
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.Trim(strings.TrimPrefix(u.Path, "/embed/"), "/")
			start = offsetSeconds(q.Get("start"))
			if start == 0 {
				start = offsetSeconds(q.Get("t"))
			}
		}
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
		start = offsetSeconds(q.Get("t"))
	}

	if !idPattern.MatchString(id) {
		return placeholder
	}

	embedURL := "https://www.youtube.com/embed/" + id
	if start > 0 {
		embedURL += "?start=" + strconv.Itoa(start)
	}
	return Embed{
		ID:           id,
		EmbedURL:     embedURL,
		StartSeconds: start,
		WatchURL:     raw,
		Playable:     true,
	}
}

// offsetSeconds parses the offset forms YouTube links carry: bare seconds
// ("90") or a duration ("1m30s", "90s"). Malformed or negative offsets
// read as zero rather than failing the parse.
func offsetSeconds(raw string) int {
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0
	}
	return int(d.Seconds())
}
