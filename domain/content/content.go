// Package content holds the static teaching material of the learning hub.
package content

var ExcelTips = []string{
	"Use Ctrl+; for today's date and Ctrl+Shift+; for current time.",
	"Ctrl+T converts a range to a Table and unlocks structured refs & quick slicers.",
	"F4 toggles absolute references ($A$1).",
	"Use TEXTJOIN to merge strings and skip blanks.",
	"XLOOKUP replaces VLOOKUP with more flexibility.",
	"LET improves readability and performance in complex formulas.",
	"LAMBDA allows custom reusable functions (Excel 365).",
	"Use conditional formatting to highlight trends quickly.",
	"Use INDEX/MATCH as a robust lookup alternative.",
	"FILTER + UNIQUE build dynamic arrays without helper columns.",
}

var PowerBITips = []string{
	"Model star schemas; avoid unnecessary many-to-many relationships.",
	"Use a dedicated Date table for time intelligence.",
	"Prefer measures for dynamic aggregations over calculated columns where possible.",
	"Use incremental refresh for large datasets.",
	"Use Performance Analyzer to spot slow visuals.",
	"Keep visuals minimal; highlight a single insight per visual.",
}

type Snippet struct {
	Name string
	Code string
}

var DAXSnippets = []Snippet{
	{"Total Revenue", "Total Revenue = SUM(FactSales[Revenue])"},
	{"YoY Revenue", "YoY Revenue = CALCULATE([Total Revenue], DATEADD('Date'[Date], -1, YEAR))"},
	{"Running Total", "Running Total = CALCULATE([Total Revenue], FILTER(ALL('Date'), 'Date'[Date] <= MAX('Date'[Date])))"},
	{"Top Customers (TopN)", "Top Customers = TOPN(5, VALUES(Customers[Name]), [Total Revenue], DESC)"},
	{"Conversion Rate", "Conversion Rate = DIVIDE([Leads Won], [Leads Total])"},
}

var ExcelFunctions = []Snippet{
	{"XLOOKUP", "=XLOOKUP(lookup_value, lookup_array, return_array, [if_not_found])"},
	{"FILTER", "=FILTER(array, include, [if_empty])"},
	{"UNIQUE", "=UNIQUE(array)"},
	{"SUMIFS", "=SUMIFS(sum_range, criteria_range1, criteria1, ...)"},
}

var PowerQuerySteps = []string{
	"Source → choose file/folder/database",
	"Promote Headers → use first row as headers",
	"Change Types → set correct data types",
	"Split Column → by delimiter or number of chars",
	"Merge Queries → join tables",
	"Append Queries → stack tables vertically",
	"Group By → aggregate (sum/count/avg)",
	"Pivot / Unpivot → reshape data",
	"Fill Down / Up → fill missing values",
	"Remove Errors / Remove Duplicates → clean data",
}

type Shortcut struct {
	Keys   string
	Action string
}

type ShortcutGroup struct {
	Product   string
	Shortcuts []Shortcut
}

var Shortcuts = []ShortcutGroup{
	{"Excel", []Shortcut{
		{"Ctrl + Arrow", "Jump to data edges"},
		{"Ctrl + Shift + L", "Toggle filters"},
		{"Alt + =", "AutoSum"},
		{"Ctrl + 1", "Format Cells"},
		{"Ctrl + Shift + %", "Percent format"},
		{"Ctrl + '", "Copy value from cell above"},
		{"Ctrl + Enter", "Fill selected range with entry"},
	}},
	{"Power BI Desktop", []Shortcut{
		{"Ctrl + Shift + S", "Save As"},
		{"Ctrl + Shift + C", "Copy visual formatting"},
		{"F11", "Full screen focus"},
		{"Alt + Shift + Arrow", "Move visual small nudge"},
		{"Ctrl + .", "Selection pane"},
	}},
}

type Project struct {
	Title       string
	Description string
}

var ProjectIdeas = []Project{
	{"Retail Sales Dashboard", "Sales by product, region, month with cohort analysis and RFM"},
	{"HR Attrition Insights", "Headcount trend, attrition risk scoring, hiring funnel"},
	{"Financial Statement Analyzer", "Vertical/horizontal analysis, KPI cards, DuPont analysis"},
	{"Marketing Funnel", "Impressions→Clicks→Leads→Wins with conversion DAX"},
	{"Inventory Health", "Stock turns, slow-moving SKUs, reorder points"},
}

type Link struct {
	Title string
	URL   string
}

var Resources = []Link{
	{"Official Excel Blog", "https://techcommunity.microsoft.com/t5/excel-blog/bg-p/ExcelBlog"},
	{"Power BI Blog", "https://powerbi.microsoft.com/en-us/blog/"},
	{"DAX Guide", "https://dax.guide"},
	{"Power Query M Reference", "https://learn.microsoft.com/powerquery-m/"},
}

var Roadmap = []string{
	"Excel Fundamentals → Tables, Formatting, Lookups",
	"Power Query → Clean & shape data",
	"Power BI → Model, Relationships, Visual best practices",
	"DAX → Measures, Time Intelligence",
	"Projects → Build end-to-end dashboards",
}
