package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/settings"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	GetEffective(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	DeleteTeamOverride(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// GetEffective implements SettingsHandler.
func (h *settingsHandlerImpl) GetEffective(w http.ResponseWriter, r *http.Request) {
	var teamID *string
	if v := r.URL.Query().Get("team_id"); v != "" {
		teamID = &v
	}

	result, err := h.settingsService.GetEffective(r.Context(), teamID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements SettingsHandler.
func (h *settingsHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Upsert implements SettingsHandler.
func (h *settingsHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req settings.UpsertSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.settingsService.Upsert(r.Context(), req)
	if err != nil {
		slog.Error("Upsert settings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance settings saved", "team_id", req.TeamID)
	response.SuccessWithMessage(w, "Settings saved successfully", result)
}

// DeleteTeamOverride implements SettingsHandler.
func (h *settingsHandlerImpl) DeleteTeamOverride(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	if err := h.settingsService.DeleteTeamOverride(r.Context(), teamID); err != nil {
		slog.Error("DeleteTeamOverride service error", "error", err, "team_id", teamID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Team settings override removed", "team_id", teamID)
	response.SuccessWithMessage(w, "Team override removed successfully", nil)
}
