// Package server wires the stores, workflow services and handlers into a
// single HTTP router.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/parltrack/parltrack/internal/activity"
	"github.com/parltrack/parltrack/internal/auth"
	"github.com/parltrack/parltrack/internal/handler"
	"github.com/parltrack/parltrack/internal/middleware"
	"github.com/parltrack/parltrack/internal/notify"
	"github.com/parltrack/parltrack/internal/store"
	"github.com/parltrack/parltrack/internal/task"
	ws "github.com/parltrack/parltrack/internal/websocket"
)

type Config struct {
	AdminLogin    string
	AdminPassword string
	SessionTTL    time.Duration
}

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	memberH       *handler.MemberHandler
	activityH     *handler.ActivityHandler
	taskH         *handler.TaskHandler
	notificationH *handler.NotificationHandler
	sessionStore  *store.SessionStore
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	memberStore := store.NewMemberStore(db)
	taskStore := store.NewTaskStore(db)
	sessionStore := store.NewSessionStore(db)

	feed := notify.NewFeed()
	dispatcher := notify.NewDispatcher(feed, hub)

	gate := auth.NewGate(
		auth.Credentials{Login: cfg.AdminLogin, Password: cfg.AdminPassword},
		memberStore,
		auth.PlainVerifier{},
	)

	activitySvc := activity.NewService(memberStore, dispatcher, logger.With("component", "activity"))
	taskSvc := task.NewService(taskStore, memberStore, dispatcher, logger.With("component", "task"))

	return &Server{
		db:            db,
		hub:           hub,
		authH:         handler.NewAuthHandler(gate, sessionStore, cfg.SessionTTL, logger.With("component", "auth")),
		memberH:       handler.NewMemberHandler(memberStore, taskSvc, logger.With("component", "member")),
		activityH:     handler.NewActivityHandler(activitySvc, logger.With("component", "activity_handler")),
		taskH:         handler.NewTaskHandler(taskStore, taskSvc, logger.With("component", "task_handler")),
		notificationH: handler.NewNotificationHandler(feed),
		sessionStore:  sessionStore,
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes behind the session cookie
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Members
	mux.HandleFunc("GET /api/members", s.memberH.List)
	mux.Handle("POST /api/members", middleware.RequireAdmin(http.HandlerFunc(s.memberH.Create)))
	mux.Handle("POST /api/members/{id}/award", middleware.RequireAdmin(http.HandlerFunc(s.memberH.Award)))
	mux.Handle("POST /api/members/{id}/penalty", middleware.RequireAdmin(http.HandlerFunc(s.memberH.Penalty)))

	// Activity reports
	mux.HandleFunc("POST /api/activities", s.activityH.Submit)
	mux.Handle("POST /api/members/{id}/activities/{activity_id}/verify",
		middleware.RequireAdmin(http.HandlerFunc(s.activityH.Verify)))

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.Handle("POST /api/tasks", middleware.RequireAdmin(http.HandlerFunc(s.taskH.Create)))
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.taskH.Complete)
	mux.Handle("POST /api/tasks/{id}/award", middleware.RequireAdmin(http.HandlerFunc(s.taskH.Award)))

	// Notifications
	mux.HandleFunc("GET /api/notifications", s.notificationH.List)
	mux.HandleFunc("POST /api/notifications/{id}/read", s.notificationH.MarkRead)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
