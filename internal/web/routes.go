package web

import (
	"github.com/kozaktomas/face-attendance/internal/web/handlers"
	"github.com/kozaktomas/face-attendance/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.deps.Profiles, s.logger)
	registerHandler := handlers.NewRegisterHandler(s.deps.Profiles, s.logger)
	recognizeHandler := handlers.NewRecognizeHandler(s.deps.Engine, s.logger)
	attendanceHandler := handlers.NewAttendanceHandler(s.deps.Recorder, s.logger)
	statsHandler := handlers.NewStatsHandler(s.deps.Cooldown, s.deps.Recorder)

	s.router.Get("/health", healthHandler.Get)
	s.router.Get("/stats", statsHandler.Get)
	s.router.Post("/register", registerHandler.Register)
	s.router.Post("/attendance", attendanceHandler.Record)

	// Each recognition scans every profile, so it is the endpoint worth throttling.
	s.router.With(middleware.RateLimit(s.config.Server.RecognizeRate, s.config.Server.RecognizeBurst)).
		Post("/recognize", recognizeHandler.Recognize)
}
