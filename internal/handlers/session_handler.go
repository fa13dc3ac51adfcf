package handlers

import (
	"net/http"

	"clinica-api/internal/models"
	"clinica-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler exposes administrative permission-edit sessions: open
// a working copy of a user's grants, toggle methods, track the dirty
// flag, and bulk-save or discard.
type SessionHandler struct {
	editor *services.EditorService
}

func NewSessionHandler(editor *services.EditorService) *SessionHandler {
	return &SessionHandler{editor: editor}
}

func (h *SessionHandler) Open(c *gin.Context) {
	var req models.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	state, err := h.editor.Open(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, state)
}

func (h *SessionHandler) State(c *gin.Context) {
	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	state, err := h.editor.State(targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) Toggle(c *gin.Context) {
	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	var req models.ToggleMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	state, err := h.editor.Toggle(targetID, req.Modelo, req.Metodo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) Clear(c *gin.Context) {
	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	// An empty body clears every known model.
	var req models.ClearRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err.Error())
			return
		}
	}

	state, err := h.editor.Clear(targetID, req.Modelo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) Save(c *gin.Context) {
	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	state, err := h.editor.Save(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) Discard(c *gin.Context) {
	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	if err := h.editor.Discard(targetID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) targetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respondValidation(c, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}
