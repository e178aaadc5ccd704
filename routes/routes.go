package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/tournament-manager/docs"
	"github.com/Dosada05/tournament-manager/handlers"
	"github.com/Dosada05/tournament-manager/middleware"
	"github.com/Dosada05/tournament-manager/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Tournament  *handlers.TournamentHandler
	Match       *handlers.MatchHandler
	Admin       *handlers.AdminHandler
	Chat        *handlers.ChatHandler
	Leaderboard *handlers.LeaderboardHandler
	Dashboard   *handlers.DashboardHandler
	WebSocket   *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(docs.SwaggerJSON)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(authenticate).Get("/me", h.Auth.Me)
	})

	router.Get("/leaderboard", h.Leaderboard.GetHandler)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListHandler)
		r.With(authenticate).Post("/", h.Tournament.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.GetByIDHandler)
			r.Get("/standings", h.Tournament.StandingsHandler)
			r.Get("/chat", h.Chat.ListHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(chiMiddleware.Timeout(15 * time.Second))

				r.Delete("/", h.Tournament.DeleteHandler)
				r.Patch("/matches/{matchID}", h.Match.UpdateMatchHandler)
				r.Put("/matches/{matchID}/score", h.Match.SetScoreHandler)
				r.Post("/players/{playerID}/disqualify", h.Admin.DisqualifyHandler)
				r.Post("/reschedule", h.Admin.RescheduleHandler)
				r.Post("/auto-schedule", h.Admin.AutoScheduleHandler)
				r.Post("/advance", h.Admin.AdvanceHandler)
				r.Post("/notes", h.Admin.AddNoteHandler)
				r.Post("/chat", h.Chat.PostHandler)
			})
		})
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.Authorize(string(models.RoleAdmin)))
		r.Get("/stats", h.Dashboard.GetStats)
	})

	router.Route("/ws", func(r chi.Router) {
		r.Get("/tournaments/{tournamentID}", h.WebSocket.ServeTournament)
		r.Get("/notifications", h.WebSocket.ServeNotifications)
	})
}
