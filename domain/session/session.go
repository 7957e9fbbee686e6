package session

import (
	"strings"
	"time"

	"pbihub/domain/quiz"
	"pbihub/internal/errors"

	"github.com/google/uuid"
)

// Tab is the page of the learning hub a session is looking at.
type Tab int

const (
	TabHome Tab = iota
	TabExcelBasics
	TabExcelFunctions
	TabPowerQuery
	TabPowerBIBasics
	TabDAXLab
	TabChartsGallery
	TabDatasets
	TabMiniProjects
	TabQuiz
	TabShortcuts
	TabCheatSheets
	TabCertificate
)

var tabInfo = []struct {
	slug  string
	title string
}{
	{"home", "Home"},
	{"excel-basics", "Excel Basics"},
	{"excel-functions", "Excel Functions"},
	{"power-query", "Power Query"},
	{"power-bi-basics", "Power BI Basics"},
	{"dax-lab", "DAX Lab"},
	{"charts", "Charts Gallery"},
	{"datasets", "Datasets"},
	{"projects", "Mini Projects"},
	{"quiz", "Quiz"},
	{"shortcuts", "Shortcuts"},
	{"cheat-sheets", "Cheat Sheets"},
	{"certificate", "Certificate"},
}

// Tabs lists every tab in display order.
func Tabs() []Tab {
	out := make([]Tab, len(tabInfo))
	for i := range out {
		out[i] = Tab(i)
	}
	return out
}

func (t Tab) valid() bool { return t >= 0 && int(t) < len(tabInfo) }

func (t Tab) Slug() string {
	if !t.valid() {
		return tabInfo[TabHome].slug
	}
	return tabInfo[t].slug
}

func (t Tab) String() string {
	if !t.valid() {
		return tabInfo[TabHome].title
	}
	return tabInfo[t].title
}

// ParseTab resolves a tab slug.
func ParseTab(slug string) (Tab, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for i, info := range tabInfo {
		if info.slug == slug {
			return Tab(i), nil
		}
	}
	return TabHome, errors.NotFound("tab " + slug)
}

// Accent is one of the named colour themes.
type Accent string

const (
	AccentAurora Accent = "Aurora"
	AccentMango  Accent = "Mango"
	AccentLagoon Accent = "Lagoon"
	AccentRose   Accent = "Rose"
	AccentLime   Accent = "Lime"
	AccentOcean  Accent = "Ocean"
	AccentSunset Accent = "Sunset"
)

var accentHex = map[Accent]string{
	AccentAurora: "#8A2BE2",
	AccentMango:  "#FF8C00",
	AccentLagoon: "#00B3B3",
	AccentRose:   "#FF3B7F",
	AccentLime:   "#39D353",
	AccentOcean:  "#1E90FF",
	AccentSunset: "#FF6B6B",
}

// Accents lists the themes in menu order.
func Accents() []Accent {
	return []Accent{AccentAurora, AccentMango, AccentLagoon, AccentRose, AccentLime, AccentOcean, AccentSunset}
}

// Hex returns the theme colour; unknown accents fall back to Aurora.
func (a Accent) Hex() string {
	if hex, ok := accentHex[a]; ok {
		return hex
	}
	return accentHex[AccentAurora]
}

// ParseAccent resolves a theme name case-insensitively.
func ParseAccent(name string) (Accent, error) {
	for _, a := range Accents() {
		if strings.EqualFold(string(a), strings.TrimSpace(name)) {
			return a, nil
		}
	}
	return AccentAurora, errors.InvalidInputf("unknown accent %q", name)
}

// ScoreEntry is the retained part of a finalized quiz attempt.
type ScoreEntry struct {
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	Passed     bool      `json:"passed"`
	TakenAt    time.Time `json:"taken_at"`
}

// Session is the per-learner UI state. Operations return an updated copy; the
// caller decides where it lives.
type Session struct {
	ID         uuid.UUID             `json:"id"`
	Username   string                `json:"username"`
	Accent     Accent                `json:"accent"`
	Tab        Tab                   `json:"tab"`
	PassedQuiz bool                  `json:"passed_quiz"`
	Scores     map[string]ScoreEntry `json:"scores"`
}

// New starts a session for username.
func New(username string, accent Accent) Session {
	if strings.TrimSpace(username) == "" {
		username = "Learner"
	}
	return Session{
		ID:       uuid.New(),
		Username: strings.TrimSpace(username),
		Accent:   accent,
		Tab:      TabHome,
		Scores:   map[string]ScoreEntry{},
	}
}

func (s Session) clone() Session {
	scores := make(map[string]ScoreEntry, len(s.Scores))
	for k, v := range s.Scores {
		scores[k] = v
	}
	s.Scores = scores
	return s
}

func (s Session) WithTab(t Tab) Session {
	out := s.clone()
	if t.valid() {
		out.Tab = t
	}
	return out
}

func (s Session) WithAccent(a Accent) Session {
	out := s.clone()
	out.Accent = a
	return out
}

func (s Session) WithUsername(name string) Session {
	out := s.clone()
	if name = strings.TrimSpace(name); name != "" {
		out.Username = name
	}
	return out
}

// RecordOutcome stores a finalized quiz under quizKey. PassedQuiz latches: a
// later failing attempt does not revoke it.
func (s Session) RecordOutcome(quizKey string, outcome quiz.Outcome, at time.Time) Session {
	out := s.clone()
	out.Scores[quizKey] = ScoreEntry{
		Score:      outcome.Score,
		Total:      outcome.Total,
		Percentage: outcome.Percentage,
		Passed:     outcome.Passed,
		TakenAt:    at,
	}
	if outcome.Passed {
		out.PassedQuiz = true
	}
	return out
}

// CertificateEligible reports whether the certificate tab should unlock.
func (s Session) CertificateEligible() bool {
	return s.PassedQuiz
}
