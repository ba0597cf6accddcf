package media

import (
	"net/url"
	"path"
	"strings"
)

// imageExts lists the file extensions of image formats chat clients render
// inline.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageExt returns the file extension to store a thumbnail under, derived
// from the URL path. Unknown or missing extensions default to .jpg.
func ImageExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if imageExts[ext] {
		return ext
	}
	return ".jpg"
}
