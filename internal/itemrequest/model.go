package itemrequest

import (
	"net/http"
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "item request not found")

// Request is a user's ask for an item that does not exist in the catalog yet.
// It is immutable once created; other users fulfill it by listing items that
// reference it.
type Request struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}

// RequestedItem is the brief shape of a catalog item created against a request.
type RequestedItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

// View is a request decorated with the items created to satisfy it.
type View struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Created     time.Time       `json:"created"`
	Items       []RequestedItem `json:"items"`
}
