package model

import (
	"math"
	"strconv"
)

// Percent is a percentage rounded to two decimals. It marshals with exactly
// two fractional digits ("5.00").
type Percent float64

func (p Percent) MarshalJSON() ([]byte, error) {
	v := float64(p)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return []byte(strconv.FormatFloat(v, 'f', 2, 64)), nil
}

// GrowthRates are period-over-period growth figures. No historical snapshot
// store exists, so every field is always zero.
type GrowthRates struct {
	Subscribers float64 `json:"subscribers"`
	Views       float64 `json:"views"`
	Videos      float64 `json:"videos"`
}

// ChannelStats is the per-owner dashboard rollup, recomputed on every call.
type ChannelStats struct {
	TotalVideos          int         `json:"totalVideos"`
	TotalViews           int64       `json:"totalViews"`
	TotalVideoDuration   float64     `json:"totalVideoDuration"`
	TotalSubscribers     int64       `json:"totalSubscribers"`
	TotalSubscriptions   int64       `json:"totalSubscriptions"`
	TotalLikesReceived   int64       `json:"totalLikesReceived"`
	TotalLikesGiven      int64       `json:"totalLikesGiven"`
	AverageViewsPerVideo int64       `json:"averageViewsPerVideo"`
	EngagementRate       Percent     `json:"engagementRate"`
	VideosThisMonth      int         `json:"videosThisMonth"`
	VideosThisWeek       int         `json:"videosThisWeek"`
	Growth               GrowthRates `json:"growth"`
}
