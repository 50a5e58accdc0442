package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/user"
	"github.com/teamops/teamops-backend-go/internal/handler/http/middleware"
	"github.com/teamops/teamops-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	UserHandler       UserHandler
	AttendanceHandler AttendanceHandler
	SettingsHandler   SettingsHandler
	LeaveHandler      LeaveHandler
	TaskHandler       TaskHandler
	NoteHandler       NoteHandler
	RoomHandler       RoomHandler
	CalendarHandler   CalendarHandler

	FrontendURL string
	Env         string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "teamops-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.Register)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", deps.AuthHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", deps.AuthHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", deps.AuthHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", deps.UserHandler.GetMe)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(
						user.PermissionUsersViewTeam,
						user.PermissionUsersViewAll,
					))
					r.Get("/", deps.UserHandler.ListUsers)
					r.Get("/{userID}", deps.UserHandler.GetUser)
				})

				// Self profile edits pass too; the service rejects
				// anything beyond the caller's reach
				r.Put("/{userID}", deps.UserHandler.UpdateUser)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUsersManageAll))
					r.Put("/{userID}/role", deps.UserHandler.ChangeRole)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceRecordSelf))
					r.Post("/check-in", deps.AttendanceHandler.CheckIn)
					r.Post("/check-out", deps.AttendanceHandler.CheckOut)
				})

				r.Route("/reports", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionReportsViewSelf)).
						Get("/me", deps.AttendanceHandler.MyReport)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAnyPermission(
							user.PermissionReportsViewSelf,
							user.PermissionReportsViewTeam,
							user.PermissionReportsViewAll,
						))
						r.Get("/users/{userID}", deps.AttendanceHandler.UserReport)
					})

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAnyPermission(
							user.PermissionReportsViewTeam,
							user.PermissionReportsViewAll,
						))
						r.Get("/teams/{teamID}", deps.AttendanceHandler.TeamReport)
					})
				})
			})

			r.Route("/settings/attendance", func(r chi.Router) {
				r.Get("/effective", deps.SettingsHandler.GetEffective)

				r.With(middleware.RequirePermission(user.PermissionSettingsViewAll)).
					Get("/", deps.SettingsHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSettingsManageAll))
					r.Put("/", deps.SettingsHandler.Upsert)
					r.Delete("/teams/{teamID}", deps.SettingsHandler.DeleteTeamOverride)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewSelf))
					r.Post("/", deps.LeaveHandler.RequestLeave)
					r.Get("/me", deps.LeaveHandler.MyRequests)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(
						user.PermissionLeaveViewTeam,
						user.PermissionLeaveManageAll,
					))
					r.Get("/pending", deps.LeaveHandler.PendingRequests)
					r.Put("/{requestID}/review", deps.LeaveHandler.Review)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(
						user.PermissionTasksViewSelf,
						user.PermissionTasksViewTeam,
						user.PermissionTasksViewAll,
					))
					r.Get("/board", deps.TaskHandler.Board)
					r.Get("/{taskID}", deps.TaskHandler.GetTask)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(
						user.PermissionTasksManageSelf,
						user.PermissionTasksManageTeam,
						user.PermissionTasksManageAll,
					))
					r.Post("/", deps.TaskHandler.CreateTask)
					r.Put("/{taskID}", deps.TaskHandler.UpdateTask)
					r.Put("/{taskID}/move", deps.TaskHandler.MoveTask)
					r.Delete("/{taskID}", deps.TaskHandler.DeleteTask)
				})
			})

			r.Route("/notes", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionNotesManageSelf))
					r.Post("/", deps.NoteHandler.CreateNote)
					r.Put("/{noteID}", deps.NoteHandler.UpdateNote)
					r.Delete("/{noteID}", deps.NoteHandler.DeleteNote)
				})

				r.With(middleware.RequirePermission(user.PermissionNotesViewSelf)).
					Get("/me", deps.NoteHandler.MyNotes)
				r.With(middleware.RequirePermission(user.PermissionNotesViewTeam)).
					Get("/team", deps.NoteHandler.TeamNotes)
			})

			r.Route("/rooms", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRoomsViewAll)).
					Get("/", deps.RoomHandler.ListRooms)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRoomsManageAll))
					r.Post("/", deps.RoomHandler.CreateRoom)
					r.Put("/{roomID}", deps.RoomHandler.UpdateRoom)
					r.Delete("/{roomID}", deps.RoomHandler.DeleteRoom)
				})
			})

			r.Route("/calendar/events", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(
						user.PermissionCalendarViewTeam,
						user.PermissionCalendarViewAll,
					))
					r.Get("/", deps.CalendarHandler.ListEvents)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(
						user.PermissionCalendarManageTeam,
						user.PermissionCalendarManageAll,
					))
					r.Post("/", deps.CalendarHandler.CreateEvent)
					r.Put("/{eventID}", deps.CalendarHandler.UpdateEvent)
					r.Delete("/{eventID}", deps.CalendarHandler.DeleteEvent)
				})
			})
		})
	})
	return r
}
