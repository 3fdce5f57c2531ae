package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/friskytrails/api/internal/application/auth"
	"github.com/friskytrails/api/internal/application/blog"
	"github.com/friskytrails/api/internal/application/booking"
	"github.com/friskytrails/api/internal/application/catalog"
	"github.com/friskytrails/api/internal/application/contact"
	"github.com/friskytrails/api/internal/application/location"
	"github.com/friskytrails/api/internal/application/user"
	"github.com/friskytrails/api/internal/config"
	"github.com/friskytrails/api/internal/domain"
	"github.com/friskytrails/api/internal/infrastructure/dynamo"
	googleinfra "github.com/friskytrails/api/internal/infrastructure/google"
	jwtinfra "github.com/friskytrails/api/internal/infrastructure/jwt"
	s3infra "github.com/friskytrails/api/internal/infrastructure/s3"
	"github.com/friskytrails/api/internal/infrastructure/smtp"
	"github.com/friskytrails/api/internal/infrastructure/sns"
	"github.com/friskytrails/api/internal/transport/http/handler"
	appmiddleware "github.com/friskytrails/api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Conn        *dynamo.Conn
	UserRepo    *dynamo.UserRepo
	ProductRepo *dynamo.ProductRepo
	BlogRepo    *dynamo.BlogRepo
	CountryRepo *dynamo.CountryRepo
	StateRepo   *dynamo.StateRepo
	CityRepo    *dynamo.CityRepo
	BookingRepo *dynamo.BookingRepo
	ContactRepo *dynamo.ContactRepo

	S3Store        *s3infra.Store
	Mailer         smtp.Mailer
	SMSSender      sns.SMSSender           // nil disables SMS notifications
	Sheet          *googleinfra.SheetClient // nil disables the sheet mirror
	GoogleVerifier *googleinfra.Verifier    // nil disables Google sign-in
	JWTProvider    *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvcDeps := auth.ServiceDeps{
		UserRepo:    deps.UserRepo,
		Mailer:      deps.Mailer,
		JWTProvider: deps.JWTProvider,
	}
	// Typed-nil pointers must not become non-nil interfaces.
	if deps.Sheet != nil {
		authSvcDeps.Sheet = deps.Sheet
	}
	if deps.GoogleVerifier != nil {
		authSvcDeps.GoogleVerifier = deps.GoogleVerifier
	}
	authSvc := auth.NewService(authSvcDeps)
	userSvc := user.NewService(deps.UserRepo)
	catalogSvc := catalog.NewService(deps.ProductRepo)
	blogSvc := blog.NewService(deps.BlogRepo)
	locationSvc := location.NewService(location.ServiceDeps{
		Countries: deps.CountryRepo,
		States:    deps.StateRepo,
		Cities:    deps.CityRepo,
		Blogs:     deps.BlogRepo,
	})
	bookingSvc := booking.NewService(booking.ServiceDeps{
		Bookings: deps.BookingRepo,
		Products: deps.ProductRepo,
		Mailer:   deps.Mailer,
		SMS:      deps.SMSSender,
	})
	var sheetMirror googleinfra.RowAppender
	if deps.Sheet != nil {
		sheetMirror = deps.Sheet
	}
	contactSvc := contact.NewService(deps.ContactRepo, sheetMirror)

	healthH := handler.NewHealthHandler(deps.Conn)
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	productH := handler.NewProductHandler(catalogSvc)
	blogH := handler.NewBlogHandler(blogSvc)
	locationH := handler.NewLocationHandler(locationSvc)
	bookingH := handler.NewBookingHandler(bookingSvc)
	contactH := handler.NewContactHandler(contactSvc)
	uploadH := handler.NewUploadHandler(deps.S3Store)

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.UserRepo)
	dbReady := appmiddleware.DBReady(func(ctx context.Context) error {
		_, err := deps.Conn.Ensure(ctx)
		return err
	})

	r.Get("/health-check", healthH.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Use(dbReady)

		// ── Public routes (no auth) ──────────────────────────────────────────
		r.With(sensitiveRL.Limit).Post("/auth/send-otp", authH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
		r.Post("/auth/signup", authH.Signup)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.Post("/auth/google", authH.GoogleLogin)

		r.Get("/products", productH.List)
		r.Get("/products/{slug}", productH.GetBySlug)
		r.Get("/blogs", blogH.List)
		r.Get("/blogs/{slug}", blogH.GetBySlug)
		r.Get("/countries", locationH.ListCountries)
		r.Get("/states", locationH.ListStates)
		r.Get("/states/{slug}", locationH.GetState)
		r.Get("/states/{stateID}/cities", locationH.ListCities)
		r.With(sensitiveRL.Limit).Post("/contact", contactH.Submit)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/auth/logout", authH.Logout)

			r.Get("/users/me", userH.Me)
			r.Put("/users/me", userH.UpdateMe)

			r.Post("/bookings", bookingH.Create)
			r.Get("/bookings", bookingH.List)
			r.Get("/bookings/{id}", bookingH.Get)
			r.Put("/bookings/{id}/cancel", bookingH.Cancel)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/admin/products", productH.Create)
				r.Put("/admin/products/{id}", productH.Update)
				r.Delete("/admin/products/{id}", productH.Delete)

				r.Post("/admin/blogs", blogH.Create)
				r.Put("/admin/blogs/{id}", blogH.Update)
				r.Delete("/admin/blogs/{id}", blogH.Delete)

				r.Post("/admin/countries", locationH.CreateCountry)
				r.Post("/admin/states", locationH.CreateState)
				r.Post("/admin/cities", locationH.CreateCity)

				r.Post("/admin/uploads", uploadH.Upload)
				r.Get("/admin/uploads/*", uploadH.GetURL)
				r.Delete("/admin/uploads/*", uploadH.Delete)
			})
		})
	})

	return r
}
