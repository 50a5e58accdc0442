package main

import (
	"fmt"
	"net/http"

	"github.com/teamops/teamops-backend-go/internal/config"
	appHTTP "github.com/teamops/teamops-backend-go/internal/handler/http"
	"github.com/teamops/teamops-backend-go/internal/pkg/cron"
	"github.com/teamops/teamops-backend-go/internal/pkg/database"
	"github.com/teamops/teamops-backend-go/internal/pkg/jwt"
	"github.com/teamops/teamops-backend-go/internal/pkg/oauth"
	"github.com/teamops/teamops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/teamops/teamops-backend-go/internal/service/attendance"
	authService "github.com/teamops/teamops-backend-go/internal/service/auth"
	calendarService "github.com/teamops/teamops-backend-go/internal/service/calendar"
	leaveService "github.com/teamops/teamops-backend-go/internal/service/leave"
	noteService "github.com/teamops/teamops-backend-go/internal/service/note"
	roomService "github.com/teamops/teamops-backend-go/internal/service/room"
	settingsService "github.com/teamops/teamops-backend-go/internal/service/settings"
	taskService "github.com/teamops/teamops-backend-go/internal/service/task"
	userService "github.com/teamops/teamops-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	attendanceEventRepo := postgresql.NewAttendanceEventRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	noteRepo := postgresql.NewNoteRepository(db)
	roomRepo := postgresql.NewRoomRepository(db)
	calendarEventRepo := postgresql.NewCalendarEventRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(userRepo, refreshTokenRepo, JWTService, GoogleService)
	userSvc := userService.NewUserService(userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceEventRepo, settingsRepo, leaveRepo, userRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, userRepo)
	taskSvc := taskService.NewTaskService(taskRepo)
	noteSvc := noteService.NewNoteService(noteRepo)
	roomSvc := roomService.NewRoomService(roomRepo)
	calendarSvc := calendarService.NewCalendarService(calendarEventRepo, roomRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	userHandler := appHTTP.NewUserHandler(userSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	noteHandler := appHTTP.NewNoteHandler(noteSvc)
	roomHandler := appHTTP.NewRoomHandler(roomSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceEventRepo, settingsRepo, userRepo)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:        JWTService,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		AttendanceHandler: attendanceHandler,
		SettingsHandler:   settingsHandler,
		LeaveHandler:      leaveHandler,
		TaskHandler:       taskHandler,
		NoteHandler:       noteHandler,
		RoomHandler:       roomHandler,
		CalendarHandler:   calendarHandler,
		FrontendURL:       cfg.App.FrontendURL,
		Env:               cfg.App.Env,
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
