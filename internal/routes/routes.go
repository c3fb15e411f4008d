package routes

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"

	"VIAJAPLUS_BACK-END/internal/config"
	"VIAJAPLUS_BACK-END/internal/handlers"
	"VIAJAPLUS_BACK-END/internal/middleware"
	"VIAJAPLUS_BACK-END/internal/utils"
)

// Handlers groups every HTTP handler the router wires up
type Handlers struct {
	Auth           *handlers.AuthHandler
	GoogleAuth     *handlers.GoogleAuthHandler
	ForgotPassword *handlers.ForgotPasswordHandler
	Profile        *handlers.ProfileHandler
	Health         *handlers.HealthHandler
	Trips          *handlers.TripsHandler
	Invitations    *handlers.InvitationsHandler
	Members        *handlers.MembersHandler
	Expenses       *handlers.ExpensesHandler
	Itinerary      *handlers.ItineraryHandler
	Bookings       *handlers.BookingsHandler
	Places         *handlers.PlacesHandler
	Notifications  *handlers.NotificationsHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, cfg *config.Config) {
	auth := func(fn http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(fn, &cfg.JWT)
	}

	// Health check routes
	http.HandleFunc("/healthz", h.Health.HealthCheck)
	http.HandleFunc("/livez", h.Health.LivenessCheck)
	http.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", h.Auth.Register)
	http.HandleFunc("/api/auth/login", h.Auth.Login)
	http.HandleFunc("/api/auth/me", auth(h.Auth.Me))
	http.HandleFunc("/api/auth/profile", auth(h.Auth.Me))
	http.HandleFunc("/api/auth/change-password", auth(h.Auth.ChangePassword))
	http.HandleFunc("/api/auth/forgot-password", h.ForgotPassword.ForgotPassword)
	http.HandleFunc("/api/auth/verify-otp", h.ForgotPassword.VerifyOTP)
	http.HandleFunc("/api/auth/reset-password", h.ForgotPassword.ResetPassword)
	http.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
	http.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)

	// Profile routes
	http.HandleFunc("/api/profile", auth(h.Profile.Profile))
	http.HandleFunc("/api/profile/update", auth(h.Profile.UpdateProfile))

	// Trip routes; the trailing-slash pattern also covers trip subresources
	http.HandleFunc("/api/trips", auth(h.Trips.Trips))
	http.HandleFunc("/api/trips/", auth(tripSubrouter(h)))

	// Invitation routes
	http.HandleFunc("/api/invitations", auth(h.Invitations.Invitations))
	http.HandleFunc("/api/invitations/", auth(h.Invitations.InvitationAction))

	// Notification routes
	http.HandleFunc("/api/notifications", auth(h.Notifications.Notifications))
	http.HandleFunc("/api/notifications/", auth(h.Notifications.Notifications))

	// Swagger documentation
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

// tripSubrouter routes /api/trips/{id} and its subresources
func tripSubrouter(h Handlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/trips/")
		parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)

		if len(parts) == 1 || parts[1] == "" {
			// /api/trips/{id}
			h.Trips.Trips(w, r)
			return
		}

		tripID, err := uuid.Parse(parts[0])
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid trip id")
			return
		}

		resource, tail, _ := strings.Cut(parts[1], "/")
		switch resource {
		case "members":
			h.Members.Members(w, r, tripID, tail)
		case "expenses":
			h.Expenses.Expenses(w, r, tripID)
		case "itinerary":
			h.Itinerary.Itinerary(w, r, tripID)
		case "bookings":
			h.Bookings.Bookings(w, r, tripID)
		case "places":
			h.Places.Places(w, r, tripID)
		default:
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Unknown trip resource")
		}
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Viaja+ backend is running."))
}
