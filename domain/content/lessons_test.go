package content

import (
	"strings"
	"testing"

	"pbihub/domain/session"

	"github.com/stretchr/testify/assert"
)

func TestEveryTabRenders(t *testing.T) {
	for _, tab := range session.Tabs() {
		lesson := LessonFor(tab, "Isha")
		assert.Equal(t, tab.String(), lesson.Title)
		assert.NotEmpty(t, strings.TrimSpace(string(lesson.Body)), "tab %s", tab.Slug())
	}
}

func TestHomeGreetsLearner(t *testing.T) {
	lesson := LessonFor(session.TabHome, "Isha")
	assert.Contains(t, string(lesson.Body), "Welcome, Isha")
	assert.Contains(t, string(lesson.Body), "<ol>")
}

func TestShortcutsRenderAsTable(t *testing.T) {
	lesson := LessonFor(session.TabShortcuts, "x")
	assert.Contains(t, string(lesson.Body), "<table>")
	assert.Contains(t, string(lesson.Body), "Toggle filters")
}

func TestResourceLinksOpenInNewTab(t *testing.T) {
	lesson := LessonFor(session.TabCheatSheets, "x")
	assert.Contains(t, string(lesson.Body), `target="_blank"`)
	assert.Contains(t, string(lesson.Body), "https://dax.guide")
}
