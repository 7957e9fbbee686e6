package content

import (
	"fmt"
	"html/template"
	"strings"

	"pbihub/domain/session"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Lesson is the rendered teaching text of one tab.
type Lesson struct {
	Tab   session.Tab
	Title string
	Body  template.HTML
}

// RenderMarkdown converts lesson markdown to HTML. A parser cannot be reused
// across documents, so each call builds its own.
func RenderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}

// LessonFor renders the static lesson text of tab. Tabs that only show live
// data (datasets, quiz) get a short introduction.
func LessonFor(tab session.Tab, username string) Lesson {
	return Lesson{
		Tab:   tab,
		Title: tab.String(),
		Body:  RenderMarkdown(lessonMarkdown(tab, username)),
	}
}

func bullets(items []string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return b.String()
}

func numbered(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}

func lessonMarkdown(tab session.Tab, username string) string {
	var b strings.Builder
	switch tab {
	case session.TabHome:
		fmt.Fprintf(&b, "## Welcome, %s\n\n", username)
		b.WriteString("Switch the accent theme to restyle the hub, try the DAX lab, and pass the quiz to unlock your certificate.\n\n")
		b.WriteString("### Learning Roadmap\n\n")
		b.WriteString(numbered(Roadmap))
	case session.TabExcelBasics:
		b.WriteString("## Excel Basics: Tables, Formatting, Lookups\n\n### Top Tips\n\n")
		b.WriteString(bullets(ExcelTips))
	case session.TabExcelFunctions:
		b.WriteString("## Common Functions\n\n")
		for _, f := range ExcelFunctions {
			fmt.Fprintf(&b, "- **%s**: `%s`\n", f.Name, f.Code)
		}
	case session.TabPowerQuery:
		b.WriteString("## Power Query Steps\n\n")
		b.WriteString(numbered(PowerQuerySteps))
	case session.TabPowerBIBasics:
		b.WriteString("## Power BI Basics\n\n")
		b.WriteString(bullets(PowerBITips))
	case session.TabDAXLab:
		b.WriteString("## DAX Lab\n\n")
		for _, s := range DAXSnippets {
			fmt.Fprintf(&b, "### %s\n\n```\n%s\n```\n\n", s.Name, s.Code)
		}
	case session.TabMiniProjects:
		b.WriteString("## Mini Projects\n\n")
		for _, p := range ProjectIdeas {
			fmt.Fprintf(&b, "- **%s**: %s\n", p.Title, p.Description)
		}
	case session.TabShortcuts:
		for _, g := range Shortcuts {
			fmt.Fprintf(&b, "## %s\n\n| Keys | Action |\n|---|---|\n", g.Product)
			for _, s := range g.Shortcuts {
				fmt.Fprintf(&b, "| `%s` | %s |\n", s.Keys, s.Action)
			}
			b.WriteString("\n")
		}
	case session.TabCheatSheets:
		b.WriteString("## Cheat Sheets\n\nDownload the sample datasets as CSV or Excel from the Datasets tab.\n\n### Resources\n\n")
		for _, l := range Resources {
			fmt.Fprintf(&b, "- [%s](%s)\n", l.Title, l.URL)
		}
	case session.TabDatasets:
		b.WriteString("## Datasets\n\nFilter the sample sales table, pivot it, or upload your own CSV/XLSX to replace it.\n")
	case session.TabQuiz:
		b.WriteString("## Quiz\n\nAnswer the questions and submit to see your score.\n")
	case session.TabChartsGallery:
		b.WriteString("## Charts Gallery\n\nRevenue by month and by region, computed from the sample dataset.\n")
	case session.TabCertificate:
		b.WriteString("## Certificate\n\nPass the quiz to unlock a certificate of completion.\n")
	}
	return b.String()
}
