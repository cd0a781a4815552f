// Package api exposes the HTTP surface: auth flows, folder/note CRUD, the
// rendered note view, and the kanban board view.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/markbase/markbase/core/audit"
	"github.com/markbase/markbase/core/auth"
	"github.com/markbase/markbase/core/kanban"
	"github.com/markbase/markbase/core/notes"
)

type Handler struct {
	auth   *auth.Authenticator
	notes  *notes.Service
	events audit.EventLister
}

func NewHandler(a *auth.Authenticator, n *notes.Service, events audit.EventLister) *Handler {
	return &Handler{auth: a, notes: n, events: events}
}

// RegisterRoutes mounts all handlers on the /api group. Route protection is
// the gate middleware's job; these handlers assume it already ran.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/register", h.HandleRegister)
	g.POST("/auth/login", h.HandleLogin)
	g.DELETE("/auth/logout", h.HandleLogout)
	g.GET("/auth/whoami", h.HandleWhoAmI)

	g.POST("/folders", h.HandleCreateFolder)
	g.GET("/folders", h.HandleListFolders)
	g.PUT("/folders/:id", h.HandleRenameFolder)
	g.DELETE("/folders/:id", h.HandleDeleteFolder)

	g.POST("/notes", h.HandleCreateNote)
	g.GET("/notes", h.HandleListNotes)
	g.GET("/notes/:id", h.HandleGetNote)
	g.PUT("/notes/:id", h.HandleUpdateNote)
	g.DELETE("/notes/:id", h.HandleDeleteNote)
	g.GET("/notes/:id/html", h.HandleRenderNote)
	g.GET("/notes/:id/board", h.HandleNoteBoard)

	g.GET("/audit/events", h.HandleAuditEvents)
}

func (h *Handler) HandleRegister(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", err)
	}

	user, err := h.auth.Register(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return h.Error(c, http.StatusConflict, "Email already registered", nil)
		}
		return h.Error(c, http.StatusBadRequest, "Registration failed", err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) HandleLogin(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", err)
	}

	token, user, err := h.auth.Login(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return h.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
		}
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) HandleLogout(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return h.Error(c, http.StatusBadRequest, "Missing or invalid authorization header", nil)
	}

	revoked, err := h.auth.Logout(c.Request().Context(), token)
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"revoked": revoked})
}

func (h *Handler) HandleWhoAmI(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	return c.JSON(http.StatusOK, principal)
}

func (h *Handler) HandleCreateFolder(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", err)
	}

	folder, err := h.notes.CreateFolder(c.Request().Context(), principal.ID, body.Name)
	if err != nil {
		return h.notesError(c, err)
	}
	return c.JSON(http.StatusCreated, folder)
}

func (h *Handler) HandleListFolders(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}

	folders, err := h.notes.ListFolders(c.Request().Context(), principal.ID)
	if err != nil {
		return h.notesError(c, err)
	}
	return c.JSON(http.StatusOK, folders)
}

func (h *Handler) HandleRenameFolder(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid folder id", err)
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", err)
	}

	folder, err := h.notes.RenameFolder(c.Request().Context(), principal.ID, id, body.Name)
	if err != nil {
		return h.notesError(c, err)
	}
	return c.JSON(http.StatusOK, folder)
}

func (h *Handler) HandleDeleteFolder(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid folder id", err)
	}

	if err := h.notes.DeleteFolder(c.Request().Context(), principal.ID, id); err != nil {
		return h.notesError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) HandleCreateNote(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}

	var body struct {
		FolderID uuid.UUID `json:"folder_id"`
		Title    string    `json:"title"`
		Content  string    `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", err)
	}

	note, err := h.notes.CreateNote(c.Request().Context(), principal.ID, body.FolderID, body.Title, body.Content)
	if err != nil {
		return h.notesError(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}

func (h *Handler) HandleListNotes(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}

	var folderID *uuid.UUID
	if raw := c.QueryParam("folder_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return h.Error(c, http.StatusBadRequest, "Invalid folder id", err)
		}
		folderID = &id
	}

	list, err := h.notes.ListNotes(c.Request().Context(), principal.ID, folderID)
	if err != nil {
		return h.notesError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) HandleGetNote(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid note id", err)
	}

	note, err := h.notes.GetNote(c.Request().Context(), principal.ID, id)
	if err != nil {
		return h.notesError(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *Handler) HandleUpdateNote(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid note id", err)
	}

	var body struct {
		Title    string     `json:"title"`
		Content  string     `json:"content"`
		FolderID *uuid.UUID `json:"folder_id"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", err)
	}

	note, err := h.notes.UpdateNote(c.Request().Context(), principal.ID, id, body.Title, body.Content, body.FolderID)
	if err != nil {
		return h.notesError(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

func (h *Handler) HandleDeleteNote(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid note id", err)
	}

	if err := h.notes.DeleteNote(c.Request().Context(), principal.ID, id); err != nil {
		return h.notesError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) HandleRenderNote(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid note id", err)
	}

	note, err := h.notes.GetNote(c.Request().Context(), principal.ID, id)
	if err != nil {
		return h.notesError(c, err)
	}

	html, err := notes.RenderHTML(note.Content)
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Failed to render note", err)
	}
	return c.HTML(http.StatusOK, html)
}

func (h *Handler) HandleNoteBoard(c echo.Context) error {
	principal, ok := auth.PrincipalFrom(c)
	if !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid note id", err)
	}

	note, err := h.notes.GetNote(c.Request().Context(), principal.ID, id)
	if err != nil {
		return h.notesError(c, err)
	}

	board, err := kanban.ParseBoard([]byte(note.Content))
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Failed to parse board", err)
	}
	if board.Title == "" {
		board.Title = note.Title
	}
	return c.JSON(http.StatusOK, board)
}

func (h *Handler) HandleAuditEvents(c echo.Context) error {
	if _, ok := auth.PrincipalFrom(c); !ok {
		return h.Error(c, http.StatusUnauthorized, "User not found", nil)
	}
	if h.events == nil {
		return c.JSON(http.StatusOK, []struct{}{})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	events, err := h.events.RecentEvents(c.Request().Context(), limit)
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *Handler) notesError(c echo.Context, err error) error {
	if errors.Is(err, notes.ErrNotFound) {
		return h.Error(c, http.StatusNotFound, "Not found", nil)
	}
	return h.Error(c, http.StatusBadRequest, "Request failed", err)
}

// Error renders a consistent error payload.
func (h *Handler) Error(c echo.Context, code int, message string, err error) error {
	resp := map[string]interface{}{
		"status": message,
		"code":   code,
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	return c.JSON(code, resp)
}
