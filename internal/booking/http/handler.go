package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kuros85Ya/shareit-go/internal/booking"
	"github.com/Kuros85Ya/shareit-go/internal/identity"
	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
	"github.com/Kuros85Ya/shareit-go/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		BookerID: identity.UserID(c),
		ItemID:   req.ItemID,
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// SetApproval handles the owner's decision: PATCH /bookings/:id?approved=true|false.
func (h *Handler) SetApproval(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}

	b, err := h.service.SetApproval(c.Request.Context(), identity.UserID(c), id, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), identity.UserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), identity.UserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) listWith(c *gin.Context, list func(int64, booking.State, request.PageParams) ([]*booking.Booking, error)) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	state, err := booking.ParseState(req.State)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := list(identity.UserID(c), state, req.PageParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}

// ListOwn returns the caller's bookings as booker.
func (h *Handler) ListOwn(c *gin.Context) {
	h.listWith(c, func(userID int64, state booking.State, page request.PageParams) ([]*booking.Booking, error) {
		return h.service.ListByBooker(c.Request.Context(), userID, state, page)
	})
}

// ListOwnerItems returns bookings across every item the caller owns.
func (h *Handler) ListOwnerItems(c *gin.Context) {
	h.listWith(c, func(userID int64, state booking.State, page request.PageParams) ([]*booking.Booking, error) {
		return h.service.ListByOwnerItems(c.Request.Context(), userID, state, page)
	})
}
