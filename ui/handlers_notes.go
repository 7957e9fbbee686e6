package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pbihub/domain/session"
	"pbihub/internal/errors"
	"pbihub/models"
)

type notesPage struct {
	Enabled bool
	Notes   []models.Note
	Tabs    []session.Tab
}

func (a *App) handleNotes(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	page := notesPage{Enabled: a.deps.Notes != nil, Tabs: session.Tabs()}
	if page.Enabled {
		notes, err := a.deps.Notes.ListNotes(r.Context(), s.ID)
		if err != nil {
			a.renderError(w, s, err)
			return
		}
		page.Notes = notes
	}
	a.renderTemplate(w, http.StatusOK, "notes.html", a.newPage(s, "Notes", page))
}

func (a *App) handleNoteCreate(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	if a.deps.Notes == nil {
		a.renderError(w, s, errors.Unavailable("notes need a record store"))
		return
	}
	if err := r.ParseForm(); err != nil {
		a.renderError(w, s, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	tab := s.Tab
	if slug := r.PostForm.Get("tab"); slug != "" {
		parsed, err := session.ParseTab(slug)
		if err != nil {
			a.renderError(w, s, errors.InvalidInputf("unknown tab %q", slug))
			return
		}
		tab = parsed
	}
	note := &models.Note{LearnerID: s.ID, Tab: tab.Slug(), Body: r.PostForm.Get("body")}
	if err := a.deps.Notes.SaveNote(r.Context(), note); err != nil {
		a.renderError(w, s, err)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

func (a *App) handleNoteDelete(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	if a.deps.Notes == nil {
		a.renderError(w, s, errors.Unavailable("notes need a record store"))
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		a.renderError(w, s, errors.InvalidInputf("note id %q is not a UUID", chi.URLParam(r, "id")))
		return
	}
	if err := a.deps.Notes.DeleteNote(r.Context(), s.ID, id); err != nil {
		a.renderError(w, s, err)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}
