package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Kuros85Ya/shareit-go/internal/booking"
	bookingHttp "github.com/Kuros85Ya/shareit-go/internal/booking/http"
	"github.com/Kuros85Ya/shareit-go/internal/identity"
	"github.com/Kuros85Ya/shareit-go/internal/item"
	itemHttp "github.com/Kuros85Ya/shareit-go/internal/item/http"
	"github.com/Kuros85Ya/shareit-go/internal/itemrequest"
	requestHttp "github.com/Kuros85Ya/shareit-go/internal/itemrequest/http"
	"github.com/Kuros85Ya/shareit-go/internal/user"
	userHttp "github.com/Kuros85Ya/shareit-go/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, identity) and
// registering routes for the modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery(), identity.RequestID())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	// identityMiddleware: resolves the acting user from the X-Sharer-User-Id
	// header. User endpoints stay open; everything else needs a caller.
	identityMiddleware := identity.Require()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("/")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, identityMiddleware)
		requestHttp.RegisterRoutes(root, requestHandler, identityMiddleware)
	}

	return r
}
