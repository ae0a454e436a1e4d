package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Properties
	mux.HandleFunc("/api/properties", s.handlePropertiesRoute)  // GET (list), POST (create)
	mux.HandleFunc("/api/properties/", s.handlePropertyRoutes)  // GET /{id}, POST /{id}/news, POST /{id}/reviews

	// API routes - Analysis
	mux.HandleFunc("/api/analysis/requests", s.handleAnalysisRequestsRoute) // POST (submit), GET (list)
	mux.HandleFunc("/api/analysis/requests/", s.handleAnalysisRequestRoutes) // GET /{id}, /{id}/reports, /{id}/export

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/status", s.app.APIHandler.StatusHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handlePropertiesRoute routes the property collection endpoint by method
func (s *Server) handlePropertiesRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.app.PropertyHandler.ListPropertiesHandler(w, r)
	case "POST":
		s.app.PropertyHandler.CreatePropertyHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePropertyRoutes routes /api/properties/{id} and its subpaths
func (s *Server) handlePropertyRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/properties/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	propertyID := parts[0]

	switch {
	case len(parts) == 1:
		s.app.PropertyHandler.GetPropertyHandler(w, r, propertyID)
	case len(parts) == 2 && parts[1] == "news":
		if r.Method == "GET" {
			s.app.PropertyHandler.GetNewsHandler(w, r, propertyID)
		} else {
			s.app.PropertyHandler.AddNewsHandler(w, r, propertyID)
		}
	case len(parts) == 2 && parts[1] == "reviews":
		if r.Method == "GET" {
			s.app.PropertyHandler.GetReviewsHandler(w, r, propertyID)
		} else {
			s.app.PropertyHandler.AddReviewHandler(w, r, propertyID)
		}
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// handleAnalysisRequestsRoute routes the analysis request collection endpoint by method
func (s *Server) handleAnalysisRequestsRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.app.AnalysisHandler.ListRequestsHandler(w, r)
	case "POST":
		s.app.AnalysisHandler.SubmitHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleAnalysisRequestRoutes routes /api/analysis/requests/{id} and its subpaths
func (s *Server) handleAnalysisRequestRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/analysis/requests/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	requestID := parts[0]

	switch {
	case len(parts) == 1:
		s.app.AnalysisHandler.GetRequestHandler(w, r, requestID)
	case len(parts) == 2 && parts[1] == "reports":
		s.app.AnalysisHandler.GetReportsHandler(w, r, requestID)
	case len(parts) == 2 && parts[1] == "export":
		s.app.AnalysisHandler.ExportPDFHandler(w, r, requestID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}
