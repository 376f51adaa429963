package item

import (
	"net/http"
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "item not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "only the owner can edit the item")
	ErrNeverUsed        = apperror.New(http.StatusBadRequest, "user never used this item")
	ErrBlankComment     = apperror.New(http.StatusBadRequest, "comment text cannot be empty")
)

// Item is a listing offered for rental. RequestID links back to the item
// request this listing fulfills, when there is one.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Comment is feedback left by a user who rented the item. AuthorName is
// denormalized from the user store for presentation.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// BookingRef is the neighbour-booking slice of an item view.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentView is a comment shaped for presentation.
type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemView is an item decorated with its nearest bookings and comments.
// LastBooking and NextBooking are only present for the item's owner.
type ItemView struct {
	Item        *Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []CommentView
}
