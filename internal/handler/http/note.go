package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/note"
	"github.com/teamops/teamops-backend-go/internal/handler/http/middleware"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

type NoteHandler interface {
	CreateNote(w http.ResponseWriter, r *http.Request)
	MyNotes(w http.ResponseWriter, r *http.Request)
	TeamNotes(w http.ResponseWriter, r *http.Request)
	UpdateNote(w http.ResponseWriter, r *http.Request)
	DeleteNote(w http.ResponseWriter, r *http.Request)
}

type noteHandlerImpl struct {
	noteService note.NoteService
}

func NewNoteHandler(noteService note.NoteService) NoteHandler {
	return &noteHandlerImpl{
		noteService: noteService,
	}
}

// CreateNote implements NoteHandler.
func (h *noteHandlerImpl) CreateNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req note.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateNote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.noteService.CreateNote(r.Context(), caller.UserID, caller.TeamID, &req)
	if err != nil {
		slog.Error("CreateNote service error", "error", err, "owner_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Note created successfully", result)
}

// MyNotes implements NoteHandler.
func (h *noteHandlerImpl) MyNotes(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	result, err := h.noteService.MyNotes(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TeamNotes implements NoteHandler.
func (h *noteHandlerImpl) TeamNotes(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}
	if caller.TeamID == nil {
		response.Success(w, []note.NoteResponse{})
		return
	}

	result, err := h.noteService.TeamNotes(r.Context(), *caller.TeamID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateNote implements NoteHandler.
func (h *noteHandlerImpl) UpdateNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req note.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateNote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	noteID := chi.URLParam(r, "noteID")
	result, err := h.noteService.UpdateNote(r.Context(), caller.UserID, noteID, &req)
	if err != nil {
		slog.Error("UpdateNote service error", "error", err, "note_id", noteID, "owner_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Note updated successfully", result)
}

// DeleteNote implements NoteHandler.
func (h *noteHandlerImpl) DeleteNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	noteID := chi.URLParam(r, "noteID")
	if err := h.noteService.DeleteNote(r.Context(), caller.UserID, noteID); err != nil {
		slog.Error("DeleteNote service error", "error", err, "note_id", noteID, "owner_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Note deleted successfully", nil)
}
