package user

import (
	"net/http"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, "email already used")
)

// User is a registered participant. The same account both lists items and
// books items listed by others.
type User struct {
	ID    int64
	Name  string
	Email string
}
