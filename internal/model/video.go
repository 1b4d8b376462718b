package model

import "time"

// Video is a stored video record. Mood, Category and DurationCategory are
// empty when the classifier left the slot unset.
type Video struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"ownerId"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Duration         float64   `json:"duration"`
	ViewCount        int64     `json:"viewCount"`
	IsPublished      bool      `json:"isPublished"`
	Tags             []string  `json:"tags"`
	Mood             string    `json:"mood,omitempty"`
	Category         string    `json:"category,omitempty"`
	DurationCategory string    `json:"durationCategory,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Discovery holds the classifier-derived metadata persisted onto a video.
type Discovery struct {
	Tags             []string
	Mood             string
	Category         string
	DurationCategory string
}

// VideoFilter narrows a bulk video read. Zero-valued fields do not filter.
type VideoFilter struct {
	OwnerID   string
	Published *bool
	Search    string
}

// VideoSummary is the listing/detail read projection. LikeCount,
// CommentCount and EngagementScore are computed on every read.
type VideoSummary struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"ownerId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Duration        float64   `json:"duration"`
	ViewCount       int64     `json:"viewCount"`
	LikeCount       int64     `json:"likeCount"`
	CommentCount    int64     `json:"commentCount"`
	EngagementScore int64     `json:"engagementScore"`
	IsPublished     bool      `json:"isPublished"`
	Tags            []string  `json:"tags"`
	Mood            string    `json:"mood,omitempty"`
	Category        string    `json:"category,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CreateVideoRequest is the API request body for registering video metadata.
type CreateVideoRequest struct {
	OwnerID     string  `json:"ownerId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	IsPublished bool    `json:"isPublished"`
}
