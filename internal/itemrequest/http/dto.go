package http

import (
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/itemrequest"
)

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func NewRequestResponse(req *itemrequest.Request) RequestResponse {
	return RequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
	}
}

// RequestedItemResponse is the brief shape of a catalog item created against
// the request.
type RequestedItemResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

// RequestViewResponse is a request decorated with the items fulfilling it.
type RequestViewResponse struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	Created     time.Time               `json:"created"`
	Items       []RequestedItemResponse `json:"items"`
}

func NewRequestViewResponse(v *itemrequest.View) RequestViewResponse {
	items := make([]RequestedItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, RequestedItemResponse{
			ID:      it.ID,
			Name:    it.Name,
			OwnerID: it.OwnerID,
		})
	}
	return RequestViewResponse{
		ID:          v.ID,
		Description: v.Description,
		Created:     v.Created,
		Items:       items,
	}
}

func NewViewResponses(views []*itemrequest.View) []RequestViewResponse {
	resp := make([]RequestViewResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, NewRequestViewResponse(v))
	}
	return resp
}
