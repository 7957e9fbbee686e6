package ui

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"pbihub/domain/content"
	"pbihub/domain/session"
	"pbihub/internal/analysis"
	"pbihub/internal/dataset"
	"pbihub/internal/errors"
	"pbihub/models"
	hubmw "pbihub/ui/middleware"
)

type homePage struct {
	Lesson   content.Lesson
	Summary  analysis.Summary
	Dataset  dataset.Info
	Roadmap  []string
	Progress *models.ProgressSummary
}

type lessonPage struct {
	Lesson   content.Lesson
	ByMonth  []analysis.PivotCell
	ByRegion []analysis.PivotCell
}

type certificatePage struct {
	Eligible  bool
	Threshold float64
	HasBest   bool
	Best      float64
}

// current returns the session EnsureSession attached to r.
func current(r *http.Request) session.Session {
	s, _ := hubmw.SessionFrom(r.Context())
	return s
}

// visit moves the session to tab and stores it. A failed save only costs the
// remembered tab, so it is logged rather than surfaced.
func (a *App) visit(r *http.Request, s session.Session, tab session.Tab) session.Session {
	if s.Tab == tab {
		return s
	}
	s = s.WithTab(tab)
	if err := a.deps.Sessions.Save(r.Context(), s); err != nil {
		log.Printf("[UI] failed to remember tab for %s: %v", s.ID, err)
	}
	return s
}

func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	s := a.visit(r, current(r), session.TabHome)
	records, info := a.deps.Data.Snapshot()
	summary, err := analysis.Summarize(records)
	if err != nil {
		a.renderError(w, s, err)
		return
	}

	page := homePage{
		Lesson:  content.LessonFor(session.TabHome, s.Username),
		Summary: summary,
		Dataset: info,
		Roadmap: content.Roadmap,
	}
	if a.deps.Progress != nil {
		if progress, err := a.deps.Progress.Summary(r.Context(), s.ID); err == nil {
			page.Progress = progress
		} else {
			log.Printf("[UI] failed to load progress for %s: %v", s.ID, err)
		}
	}
	a.renderTemplate(w, http.StatusOK, "home.html", a.newPage(s, "Home", page))
}

// handleLesson renders a lesson tab. Tabs with their own page redirect there.
func (a *App) handleLesson(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	tab, err := session.ParseTab(chi.URLParam(r, "tab"))
	if err != nil {
		a.renderError(w, s, err)
		return
	}
	if href := hrefFor(tab); !strings.HasPrefix(href, "/lessons/") {
		http.Redirect(w, r, href, http.StatusSeeOther)
		return
	}
	s = a.visit(r, s, tab)
	page := lessonPage{Lesson: content.LessonFor(tab, s.Username)}
	if tab == session.TabChartsGallery {
		records := a.deps.Data.Records()
		page.ByMonth = analysis.Pivot(records, analysis.ByMonth)
		page.ByRegion = analysis.Pivot(records, analysis.ByRegion)
	}
	a.renderTemplate(w, http.StatusOK, "lesson.html", a.newPage(s, tab.String(), page))
}

// handleCertificate shows whether the learner has unlocked the certificate.
// Rendering a certificate document is out of scope.
func (a *App) handleCertificate(w http.ResponseWriter, r *http.Request) {
	s := a.visit(r, current(r), session.TabCertificate)
	page := certificatePage{Eligible: s.CertificateEligible(), Threshold: a.deps.PassThreshold}

	// The session only keeps the latest attempt per quiz; the record store
	// knows the best one.
	if a.deps.Progress != nil {
		best, err := a.deps.Progress.BestResult(r.Context(), s.ID, quizKey)
		switch {
		case err == nil:
			page.HasBest, page.Best = true, best.Percentage
		case errors.GetCode(err) != errors.CodeNotFound:
			log.Printf("[UI] failed to load best result for %s: %v", s.ID, err)
		}
	} else if entry, ok := s.Scores[quizKey]; ok {
		page.HasBest, page.Best = true, entry.Percentage
	}
	a.renderTemplate(w, http.StatusOK, "certificate.html", a.newPage(s, "Certificate", page))
}

// handleAccent updates the learner's name and theme, then returns to the
// referring page on this site.
func (a *App) handleAccent(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	if err := r.ParseForm(); err != nil {
		a.renderError(w, s, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	if name := r.PostForm.Get("accent"); name != "" {
		accent, err := session.ParseAccent(name)
		if err != nil {
			a.renderError(w, s, err)
			return
		}
		s = s.WithAccent(accent)
	}
	s = s.WithUsername(r.PostForm.Get("username"))
	if err := a.deps.Sessions.Save(r.Context(), s); err != nil {
		a.renderError(w, s, err)
		return
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

func backTo(r *http.Request) string {
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" && (ref.Host == "" || ref.Host == r.Host) {
		return ref.Path
	}
	return "/"
}
