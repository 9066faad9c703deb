package http

import (
	"net/http"

	"clinic-schedule-service/internal/delivery/http/handler"
	"clinic-schedule-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	scheduleHandler *handler.ScheduleHandler
	doctorHandler   *handler.DoctorHandler
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	scheduleHandler *handler.ScheduleHandler,
	doctorHandler *handler.DoctorHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		scheduleHandler: scheduleHandler,
		doctorHandler:   doctorHandler,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Schedule resolution and availability
	schedule := api.PathPrefix("/schedule").Subrouter()
	schedule.HandleFunc("/assignment", r.scheduleHandler.GetAssignment).Methods(http.MethodGet)
	schedule.HandleFunc("/slots", r.scheduleHandler.GetAvailableSlots).Methods(http.MethodGet)
	schedule.HandleFunc("/overrides", r.scheduleHandler.GetOverrides).Methods(http.MethodGet)
	schedule.HandleFunc("/overrides", r.scheduleHandler.ApplyOverride).Methods(http.MethodPut)

	// Doctor roster (read-only feed projection)
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
