package project

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/api/middleware"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/mkondratev/housing-assistant/internal/pkg/logger"
	"github.com/mkondratev/housing-assistant/internal/pkg/response"
	"github.com/mkondratev/housing-assistant/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	projects ProjectUsecase
	setup    SetupUsecase
	reports  ReportUsecase
}

func NewHandler(projects ProjectUsecase, setup SetupUsecase, reports ReportUsecase) *Handler {
	return &Handler{
		projects: projects,
		setup:    setup,
		reports:  reports,
	}
}

// CreateProject handles POST /projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateProject")

	var req entity.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.projects.CreateProject(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		ctxzap.Warn(ctx, "project creation failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	response.Created(w, project)
}

// ListProjects handles GET /projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListProjects")

	projects, err := h.projects.ListProjects(ctx, middleware.UserID(ctx))
	if err != nil {
		ctxzap.Error(ctx, "project listing failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	response.Success(w, toProjectList(projects))
}

// GetProject handles GET /projects/{project_id}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetProject")

	view, err := h.projects.GetSetupView(ctx, middleware.UserID(ctx), chi.URLParam(r, "project_id"))
	if err != nil {
		response.Problem(w, err)
		return
	}

	response.Success(w, view)
}

// DeleteProject handles DELETE /projects/{project_id}
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteProject")

	if err := h.projects.DeleteProject(ctx, middleware.UserID(ctx), chi.URLParam(r, "project_id")); err != nil {
		ctxzap.Error(ctx, "project deletion failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	response.Success(w, map[string]string{"success": "project deleted"})
}

// SetupChat handles POST /projects/{project_id}/setup-chat
func (h *Handler) SetupChat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SetupChat")

	var req entity.ChatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.setup.ChatTurn(ctx, middleware.UserID(ctx), chi.URLParam(r, "project_id"), &req)
	if err != nil {
		ctxzap.Warn(ctx, "setup chat turn failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	response.Success(w, resp)
}

// ConfirmRooms handles POST /projects/{project_id}/confirm-rooms
func (h *Handler) ConfirmRooms(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ConfirmRooms")

	var req entity.ChatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.setup.ConfirmRooms(ctx, middleware.UserID(ctx), chi.URLParam(r, "project_id"), &req)
	if err != nil {
		ctxzap.Warn(ctx, "room confirmation turn failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	response.Success(w, resp)
}

// Report handles GET /projects/{project_id}/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Report")

	format, err := validator.ParseReportFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.Problem(w, err)
		return
	}

	file, err := h.reports.GenerateReport(ctx, middleware.UserID(ctx), chi.URLParam(r, "project_id"), format)
	if err != nil {
		ctxzap.Error(ctx, "report generation failed", zap.Error(err))
		response.Problem(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}
