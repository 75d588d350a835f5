package feed

import (
	"time"

	"photofeed/internal/domain"
)

// defaultDescription substitutes for photos the server returns without an
// alt description.
const defaultDescription = "No description"

// photoResult is one raw photo record as the API returns it.
type photoResult struct {
	ID          string     `json:"id"`
	CreatedAt   *string    `json:"created_at"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Description *string    `json:"alt_description"`
	LikedByUser bool       `json:"liked_by_user"`
	URLs        urlsResult `json:"urls"`
}

type urlsResult struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

type likeResult struct {
	Photo likePhoto `json:"photo"`
}

type likePhoto struct {
	ID          string `json:"id"`
	LikedByUser bool   `json:"liked_by_user"`
}

func (r photoResult) toDomain() domain.Photo {
	p := domain.Photo{
		ID:          r.ID,
		Width:       r.Width,
		Height:      r.Height,
		Description: defaultDescription,
		ThumbURL:    r.URLs.Thumb,
		RegularURL:  r.URLs.Regular,
		FullURL:     r.URLs.Full,
		Liked:       r.LikedByUser,
	}
	if r.Description != nil && *r.Description != "" {
		p.Description = *r.Description
	}
	if r.CreatedAt != nil {
		if t, err := time.Parse(time.RFC3339, *r.CreatedAt); err == nil {
			p.CreatedAt = &t
		}
	}
	return p
}
