package api

import (
	"net/http"
	"strconv"

	"pbihub/domain/session"
	"pbihub/internal/errors"
	"pbihub/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionRequest creates or updates a session. Empty fields are left alone.
type SessionRequest struct {
	Username string `json:"username"`
	Accent   string `json:"accent"`
	Tab      string `json:"tab"`
}

// SessionView is a session with its derived fields spelled out.
type SessionView struct {
	session.Session
	TabSlug             string `json:"tab_slug"`
	AccentHex           string `json:"accent_hex"`
	CertificateEligible bool   `json:"certificate_eligible"`
}

func viewOf(s session.Session) SessionView {
	return SessionView{
		Session:             s,
		TabSlug:             s.Tab.Slug(),
		AccentHex:           s.Accent.Hex(),
		CertificateEligible: s.CertificateEligible(),
	}
}

// apply folds req into s, validating accent and tab names.
func apply(s session.Session, req SessionRequest) (session.Session, error) {
	s = s.WithUsername(req.Username)
	if req.Accent != "" {
		accent, err := session.ParseAccent(req.Accent)
		if err != nil {
			return s, err
		}
		s = s.WithAccent(accent)
	}
	if req.Tab != "" {
		tab, err := session.ParseTab(req.Tab)
		if err != nil {
			return s, errors.InvalidInputf("unknown tab %q", req.Tab)
		}
		s = s.WithTab(tab)
	}
	return s, nil
}

func (h *Handler) sessionsConfigured() error {
	if h.deps.Sessions == nil {
		return errors.Unavailable("record store is not configured")
	}
	return nil
}

func sessionID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.InvalidInputf("session id %q is not a UUID", c.Param("id"))
	}
	return id, nil
}

// loadSession resolves the :id parameter into a stored session.
func (h *Handler) loadSession(c *gin.Context) (session.Session, bool) {
	if err := h.sessionsConfigured(); err != nil {
		respondError(c, err)
		return session.Session{}, false
	}
	id, err := sessionID(c)
	if err != nil {
		respondError(c, err)
		return session.Session{}, false
	}
	s, err := h.deps.Sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return session.Session{}, false
	}
	return s, true
}

func (h *Handler) handleCreateSession(c *gin.Context) {
	if err := h.sessionsConfigured(); err != nil {
		respondError(c, err)
		return
	}
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	s, err := apply(session.New(req.Username, session.AccentAurora), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.deps.Sessions.Save(c.Request.Context(), s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(s))
}

func (h *Handler) handleGetSession(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

func (h *Handler) handleUpdateSession(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	s, err := apply(s, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.deps.Sessions.Save(c.Request.Context(), s); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

// handleProgress returns the quiz history of a session.
func (h *Handler) handleProgress(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	if h.deps.Progress == nil {
		respondError(c, errors.Unavailable("record store is not configured"))
		return
	}
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, errors.InvalidInputf("limit %q is not an integer", raw))
			return
		}
		limit = v
	}

	ctx := c.Request.Context()
	summary, err := h.deps.Progress.Summary(ctx, s.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	results, err := h.deps.Progress.ListResults(ctx, s.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "results": results})
}

// NoteRequest is the body of POST /api/sessions/:id/notes.
type NoteRequest struct {
	Tab  string `json:"tab"`
	Body string `json:"body" binding:"required"`
}

func (h *Handler) handleListNotes(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	if h.deps.Notes == nil {
		respondError(c, errors.Unavailable("record store is not configured"))
		return
	}
	notes, err := h.deps.Notes.ListNotes(c.Request.Context(), s.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *Handler) handleCreateNote(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	if h.deps.Notes == nil {
		respondError(c, errors.Unavailable("record store is not configured"))
		return
	}
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	tab := s.Tab
	if req.Tab != "" {
		parsed, err := session.ParseTab(req.Tab)
		if err != nil {
			respondError(c, errors.InvalidInputf("unknown tab %q", req.Tab))
			return
		}
		tab = parsed
	}

	note := &models.Note{LearnerID: s.ID, Tab: tab.Slug(), Body: req.Body}
	if err := h.deps.Notes.SaveNote(c.Request.Context(), note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *Handler) handleDeleteNote(c *gin.Context) {
	s, ok := h.loadSession(c)
	if !ok {
		return
	}
	if h.deps.Notes == nil {
		respondError(c, errors.Unavailable("record store is not configured"))
		return
	}
	noteID, err := uuid.Parse(c.Param("noteID"))
	if err != nil {
		respondError(c, errors.InvalidInputf("note id %q is not a UUID", c.Param("noteID")))
		return
	}
	if err := h.deps.Notes.DeleteNote(c.Request.Context(), s.ID, noteID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
