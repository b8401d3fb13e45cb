package handler

import (
	"net/http"

	"github.com/Baaaki/portfolio/internal/service"
	"github.com/Baaaki/portfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// List returns every project.
// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// Create adds a project (admin only).
// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.ProjectInput

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Create project request parsing failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	logger.Log.Info("Admin creating project",
		zap.String("admin_id", c.GetString("user_id")),
		zap.String("title", req.Title),
	)

	project, err := h.projectService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Update merges the allow-listed fields into a project (admin only).
// PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req service.ProjectPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Update project request parsing failed",
			zap.String("project_id", id.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	logger.Log.Info("Admin updating project",
		zap.String("admin_id", c.GetString("user_id")),
		zap.String("project_id", id.String()),
	)

	project, err := h.projectService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete removes a project permanently (admin only).
// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	logger.Log.Info("Admin deleting project",
		zap.String("admin", c.GetString("username")),
		zap.String("project_id", id.String()),
	)

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted",
	})
}

// projectID parses :id. An id that cannot exist is reported like any other
// unknown project.
func projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, service.ErrProjectNotFound)
		return uuid.Nil, false
	}
	return id, true
}
