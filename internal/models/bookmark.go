package models

type (
	Bookmark struct {
		ID          uint64  `json:"id"`
		Title       string  `json:"title"`
		URL         string  `json:"url"`
		Description string  `json:"description"`
		Rating      float64 `json:"rating"`
	}

	// NewBookmark is a validated create payload. It has no id, the store assigns one.
	NewBookmark struct {
		Title       string
		URL         string
		Description string
		Rating      float64
	}

	// BookmarkPatch holds the fields present in an update payload.
	BookmarkPatch struct {
		Title       *string
		URL         *string
		Description *string
		Rating      *float64
	}
)
