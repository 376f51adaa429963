package request

import (
	"net/http"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/apperror"
)

var ErrInvalidPage = apperror.New(http.StatusBadRequest, "invalid pagination parameters")

// PageParams is the offset/limit window shared by every paginated endpoint.
// From counts records to skip, Size is the page length.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

// Validate rejects negative offsets and non-positive page sizes.
func (p PageParams) Validate() error {
	if p.From < 0 || p.Size < 1 {
		return ErrInvalidPage
	}
	return nil
}

func (p PageParams) Offset() uint64 {
	return uint64(p.From)
}

func (p PageParams) Limit() uint64 {
	return uint64(p.Size)
}

// Window returns the [start, end) slice bounds for applying the page to an
// in-memory list of n elements.
func (p PageParams) Window(n int) (int, int) {
	start := p.From
	if start > n {
		start = n
	}
	end := start + p.Size
	if end > n {
		end = n
	}
	return start, end
}
