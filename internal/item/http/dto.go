package http

import (
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/item"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest defines fields allowed in PATCH /items/:id.
// Use pointers to distinguish between "field not sent" and "field sent as false/empty".
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
	}
}

// ItemViewResponse is an item decorated with neighbour bookings and comments.
// LastBooking and NextBooking are null for everyone but the owner.
type ItemViewResponse struct {
	ItemResponse
	LastBooking *item.BookingRef   `json:"lastBooking"`
	NextBooking *item.BookingRef   `json:"nextBooking"`
	Comments    []item.CommentView `json:"comments"`
}

func NewItemViewResponse(v *item.ItemView) ItemViewResponse {
	return ItemViewResponse{
		ItemResponse: NewItemResponse(v.Item),
		LastBooking:  v.LastBooking,
		NextBooking:  v.NextBooking,
		Comments:     v.Comments,
	}
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.Created,
	}
}
