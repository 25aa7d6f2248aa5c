package http

import (
	"net/http"

	"colpoview/internal/delivery/http/handler"
	"colpoview/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	authHandler     *handler.AuthHandler
	patientHandler  *handler.PatientHandler
	analysisHandler *handler.AnalysisHandler
	settingsHandler *handler.SettingsHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	analysisHandler *handler.AnalysisHandler,
	settingsHandler *handler.SettingsHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		authHandler:     authHandler,
		patientHandler:  patientHandler,
		analysisHandler: analysisHandler,
		settingsHandler: settingsHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

// Setup builds the route table. The three pages of the client map onto the
// patients, analysis and settings route groups; everything behind the auth
// gate requires a valid access token.
func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Patients page
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.HandleFunc("", r.patientHandler.List).Methods(http.MethodGet)
	patients.HandleFunc("", r.patientHandler.Create).Methods(http.MethodPost)
	patients.HandleFunc("/{id:[0-9]+}", r.patientHandler.Details).Methods(http.MethodGet)
	patients.HandleFunc("/{id:[0-9]+}", r.patientHandler.Update).Methods(http.MethodPut)

	// Analysis page
	analysis := api.PathPrefix("/analysis").Subrouter()
	analysis.Use(r.authMiddleware.Authenticate)
	analysis.HandleFunc("/sessions", r.analysisHandler.StartSession).Methods(http.MethodPost)
	analysis.HandleFunc("/sessions/{id}", r.analysisHandler.GetSession).Methods(http.MethodGet)
	analysis.HandleFunc("/sessions/{id}/patient", r.analysisHandler.SelectPatient).Methods(http.MethodPut)
	analysis.HandleFunc("/sessions/{id}/image", r.analysisHandler.AttachImage).Methods(http.MethodPost)
	analysis.HandleFunc("/sessions/{id}/image", r.analysisHandler.ClearImage).Methods(http.MethodDelete)
	analysis.HandleFunc("/sessions/{id}/symptoms", r.analysisHandler.AttachSymptoms).Methods(http.MethodPut)
	analysis.HandleFunc("/sessions/{id}/analyze", r.analysisHandler.Analyze).Methods(http.MethodPost)

	// Settings page
	settings := api.PathPrefix("/settings").Subrouter()
	settings.Use(r.authMiddleware.Authenticate)
	settings.HandleFunc("/profile", r.settingsHandler.UpdateProfile).Methods(http.MethodPatch)
	settings.HandleFunc("/password", r.settingsHandler.ChangePassword).Methods(http.MethodPost)
	settings.HandleFunc("/theme", r.settingsHandler.GetTheme).Methods(http.MethodGet)
	settings.HandleFunc("/theme", r.settingsHandler.ToggleTheme).Methods(http.MethodPost)

	// User management (admin only)
	admin := api.PathPrefix("/settings").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.settingsHandler.ListUserManagement).Methods(http.MethodGet)
	admin.HandleFunc("/invites", r.settingsHandler.CreateInvite).Methods(http.MethodPost)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
