package server

import (
	"net/http"
	"strings"

	"github.com/agentstation/coursemap/internal/server/handlers"
	"github.com/agentstation/coursemap/internal/server/middleware"
	"github.com/agentstation/coursemap/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.app,
		s.cache,
		s.wsHub,
		s.upgrader,
		s.logger,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// route binds a path to a handler and the methods it accepts.
type route struct {
	path    string
	methods []string
	handler http.HandlerFunc
}

var (
	get      = []string{http.MethodGet}
	getPatch = []string{http.MethodGet, http.MethodPatch}
	patch    = []string{http.MethodPatch}
)

func catalogRoutes(h *handlers.Handlers) []route {
	return []route{
		{"/retrieveDept", get, h.HandleRetrieveDepartment},
		{"/retrieveCourse", get, h.HandleRetrieveCourse},
		{"/isCourseFull", get, h.HandleIsCourseFull},
		{"/getMajorCountFromDept", get, h.HandleMajorCount},
		{"/idDeptChair", get, h.HandleDepartmentChair},
		{"/findCourseLocation", get, h.HandleCourseLocation},
		{"/findCourseInstructor", get, h.HandleCourseInstructor},
		{"/findCourseTime", get, h.HandleCourseTime},
		{"/addMajorToDept", getPatch, h.HandleAddMajor},
		{"/removeMajorFromDept", getPatch, h.HandleRemoveMajor},
		{"/enrollStudentInCourse", getPatch, h.HandleEnroll},
		{"/dropStudentFromCourse", getPatch, h.HandleDrop},
		{"/setEnrollmentCount", patch, h.HandleSetEnrollmentCount},
		{"/changeCourseLocation", patch, h.HandleChangeLocation},
		{"/changeCourseTeacher", patch, h.HandleChangeInstructor},
		{"/changeCourseTime", patch, h.HandleChangeTime},
	}
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// "/" is the catch-all pattern; only the exact root is the index.
	index := allow(get, h.HandleIndex)
	mux.HandleFunc("/index", index)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		index(w, r)
	})

	for _, rt := range catalogRoutes(h) {
		mux.HandleFunc(rt.path, allow(rt.methods, h.RequireReady(rt.handler)))
	}

	// Operational endpoints
	mux.HandleFunc("/health", allow(get, h.HandleHealth))
	mux.HandleFunc("/ready", allow(get, h.HandleReady))

	// Real-time endpoints
	mux.HandleFunc("/updates/ws", h.HandleWebSocket)
}

// allow rejects methods outside the list with 405. HEAD is accepted only on
// GET-only routes.
func allow(methods []string, next http.HandlerFunc) http.HandlerFunc {
	header := strings.Join(methods, ", ")
	head := len(methods) == 1 && methods[0] == http.MethodGet
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead && head {
			next(w, r)
			return
		}
		for _, m := range methods {
			if r.Method == m {
				next(w, r)
				return
			}
		}
		response.MethodNotAllowed(w, header)
	}
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logger(s.logger),
	)(handler)
}
