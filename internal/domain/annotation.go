package domain

import "time"

// Review is a user's rated write-up of a single catalog item.
// Owned by exactly one subject; owner and item reference never change
// after creation.
type Review struct {
	ID         int64
	UserID     string
	TmdbID     int64
	MediaType  MediaType
	Rating     int
	ReviewText string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Comment is a reply attached to a review.
type Comment struct {
	ID          int64
	ReviewID    int64
	UserID      string
	CommentText string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Like marks that a subject liked a review. The (review, user) pair is
// the whole identity; there is no surrogate id.
type Like struct {
	ReviewID  int64
	UserID    string
	CreatedAt time.Time
}

// LikeStatus is the aggregate view over a review's likes for one subject.
type LikeStatus struct {
	Count int64
	Liked bool
}

// Favorite bookmarks a catalog item for a subject.
type Favorite struct {
	ID        int64
	UserID    string
	TmdbID    int64
	MediaType MediaType
	AddedAt   time.Time
}

// WatchlistEntry tracks a catalog item a subject intends to watch.
// Status is the only mutable field.
type WatchlistEntry struct {
	ID        int64
	UserID    string
	TmdbID    int64
	MediaType MediaType
	Status    WatchStatus
	AddedAt   time.Time
	UpdatedAt time.Time
}
