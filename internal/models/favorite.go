package models

import (
	"fmt"
	"time"
)

// Favorite links a user id to the moment it was starred. UserID is a plain
// reference to User.ID; nothing enforces that the user exists.
type Favorite struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// NewFavorite builds a favorite record with the composite id fav_<userId>_<unixMillis>.
func NewFavorite(userID string, now time.Time) Favorite {
	return Favorite{
		ID:        fmt.Sprintf("fav_%s_%d", userID, now.UnixMilli()),
		UserID:    userID,
		CreatedAt: now,
	}
}

// CacheMetadata records when a page was last fetched and how many results the
// API reported at that time.
type CacheMetadata struct {
	ID           string
	Page         int
	LastFetched  time.Time
	TotalResults int
}

// NewCacheMetadata returns the metadata record for page, keyed page_<page>.
func NewCacheMetadata(page, totalResults int, fetched time.Time) CacheMetadata {
	return CacheMetadata{
		ID:           CachePageID(page),
		Page:         page,
		LastFetched:  fetched,
		TotalResults: totalResults,
	}
}

func CachePageID(page int) string {
	return fmt.Sprintf("page_%d", page)
}
