package models

import (
	"strings"
	"time"
)

// PopularHashtag is one ranked entry in an aggregation summary.
type PopularHashtag struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}

// PopularHashtagSummary holds the ranked hashtags for one aggregation
// window. There is exactly one row per period; each run overwrites it
// wholesale.
type PopularHashtagSummary struct {
	ID           uint             `gorm:"primaryKey" json:"-"`
	PeriodDays   int              `gorm:"not null;uniqueIndex" json:"period_days"`
	Hashtags     []PopularHashtag `gorm:"serializer:json" json:"hashtags"`
	AggregatedAt time.Time        `gorm:"not null" json:"aggregated_at"`
}

// NormalizeHashtag trims whitespace and ensures a leading '#', so that
// "foo" and "#foo" are equivalent filter values. Returns "" for blank input.
func NormalizeHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "#" {
		return ""
	}
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}
