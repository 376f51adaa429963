package http

import (
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/booking"
	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
)

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// ListBookingsRequest defines query parameters for the booking listings.
// State is validated by the service so unknown values fail uniformly.
type ListBookingsRequest struct {
	State string `form:"state"`
	request.PageParams
}

// ItemTag is a brief representation of the booked item.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookerTag is a brief representation of the booking user.
type BookerTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID      int64     `json:"id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Status  string    `json:"status"`
	Item    ItemTag   `json:"item"`
	Booker  BookerTag `json:"booker"`
	Created time.Time `json:"created"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:      b.ID,
		Start:   b.Start,
		End:     b.End,
		Status:  string(b.Status),
		Item:    ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:  BookerTag{ID: b.BookerID, Name: b.BookerName},
		Created: b.Created,
	}
}

func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, NewBookingResponse(b))
	}
	return resp
}
