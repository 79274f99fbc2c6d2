package tmdb

import "strings"

const (
	PosterSize   = "w500"
	BackdropSize = "w1280"

	youtubeWatchURL = "https://www.youtube.com/watch?v="
)

// ImageURL joins an image path fragment with the CDN base and a size token.
// An empty path means there is no image and yields "".
func (c *Client) ImageURL(path, size string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBase + "/" + size + path
}

func (c *Client) PosterURL(path string) string   { return c.ImageURL(path, PosterSize) }
func (c *Client) BackdropURL(path string) string { return c.ImageURL(path, BackdropSize) }

// FindTrailer returns the first YouTube trailer in videos.
func FindTrailer(videos []Video) (Video, bool) {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v, true
		}
	}
	return Video{}, false
}

func TrailerURL(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return youtubeWatchURL + key
}

// Year returns the leading year of an ISO release date, or "" when the date
// is missing or too short.
func Year(date string) string {
	if len(date) < 4 {
		return ""
	}
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return date[:4]
}
