package domain

import "time"

// Photo is one feed entry. Records are immutable; the feed replaces a
// record wholesale when its liked state changes.
type Photo struct {
	ID          string
	Width       int
	Height      int
	CreatedAt   *time.Time
	Description string
	ThumbURL    string
	RegularURL  string
	FullURL     string
	Liked       bool
}

// AspectRatio returns width/height, or 0 when the height is unknown.
func (p Photo) AspectRatio() float64 {
	if p.Height <= 0 {
		return 0
	}
	return float64(p.Width) / float64(p.Height)
}
