// Package media holds the resolved metadata model and the pure decision
// logic that chooses how a post is downloaded and delivered.
package media

import "strings"

// Thumbnail is a single candidate image URL reported by the extraction
// service. For carousel posts each slide surfaces as its own thumbnail.
type Thumbnail struct {
	URL string
}

// Info is the metadata for one post, resolved without downloading media.
// Immutable once produced.
type Info struct {
	ID       string
	Title    string
	Duration float64 // seconds; zero when the service reports none
	Thumbs   []Thumbnail
}

// Kind is what shape of content a link points to.
type Kind int

const (
	// KindSingleVideo is a continuous video with at most one representative
	// thumbnail.
	KindSingleVideo Kind = iota
	// KindCarousel is a set of still images sharing one audio track.
	KindCarousel
)

func (k Kind) String() string {
	if k == KindCarousel {
		return "carousel"
	}
	return "video"
}

// ClassifyPolicy holds the tunable thresholds of the carousel heuristic.
// The thresholds are a policy choice, not a guaranteed-correct classifier:
// carousel posts report near-zero duration and one thumbnail per slide,
// real videos report their play length and a single thumbnail.
type ClassifyPolicy struct {
	// MinThumbnails is the minimum candidate count for a carousel.
	MinThumbnails int
	// MaxDuration is the exclusive duration bound in seconds; a zero
	// reported duration always passes.
	MaxDuration float64
	// HighResMarkers are URL substrings marking full-resolution images.
	HighResMarkers []string
	// MaxImages caps how many carousel images are selected.
	MaxImages int
}

// DefaultPolicy matches the thresholds the bot ships with.
func DefaultPolicy() ClassifyPolicy {
	return ClassifyPolicy{
		MinThumbnails:  2,
		MaxDuration:    5,
		HighResMarkers: []string{"1080", "origin", "q=hq"},
		MaxImages:      10,
	}
}

// Classify decides the content kind for resolved metadata. Pure: same Info
// always yields the same Kind.
func (p ClassifyPolicy) Classify(info *Info) Kind {
	if len(info.Thumbs) >= p.MinThumbnails &&
		(info.Duration == 0 || info.Duration < p.MaxDuration) {
		return KindCarousel
	}
	return KindSingleVideo
}

// SelectImages picks the carousel image URLs to download, in candidate
// order. Candidates whose URL contains a high-resolution marker are
// preferred; when none match, all candidates are taken. The result is
// capped at MaxImages.
func (p ClassifyPolicy) SelectImages(info *Info) []string {
	var urls []string
	for _, t := range info.Thumbs {
		if containsAny(t.URL, p.HighResMarkers) {
			urls = append(urls, t.URL)
		}
	}
	if len(urls) == 0 {
		for _, t := range info.Thumbs {
			urls = append(urls, t.URL)
		}
	}
	if len(urls) > p.MaxImages {
		urls = urls[:p.MaxImages]
	}
	return urls
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
