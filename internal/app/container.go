package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kuros85Ya/shareit-go/internal/api"
	"github.com/Kuros85Ya/shareit-go/internal/booking"
	"github.com/Kuros85Ya/shareit-go/internal/item"
	"github.com/Kuros85Ya/shareit-go/internal/itemrequest"
	"github.com/Kuros85Ya/shareit-go/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// catalogAdapter exposes the item module to the booking engine through the
// narrow view it needs.
type catalogAdapter struct {
	items item.Service
}

func (a catalogAdapter) ItemSummary(ctx context.Context, itemID int64) (*booking.ItemSummary, error) {
	it, err := a.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &booking.ItemSummary{
		ID:        it.ID,
		Name:      it.Name,
		OwnerID:   it.OwnerID,
		Available: it.Available,
	}, nil
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Item request module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService)

	// Booking repository is shared with the item module for enrichment and
	// comment gating.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, bookingRepo, userService, requestService)

	// Booking module
	bookingService := booking.NewService(bookingRepo, userService, catalogAdapter{items: itemService})

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{Router: router}
}
