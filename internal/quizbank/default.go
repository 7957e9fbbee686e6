package quizbank

import "pbihub/domain/quiz"

// Default returns the bundled Excel / Power BI question bank.
func Default() *quiz.Bank {
	return quiz.NewBank([]quiz.Question{
		// Excel
		quiz.MustQuestion("Which function replaces VLOOKUP with more flexibility?",
			[]string{"MATCH", "XLOOKUP", "INDEX", "FILTER"}, 1, "XLOOKUP handles vertical/horizontal lookups with more options."),
		quiz.MustQuestion("Which function returns unique values from a range in Excel 365?",
			[]string{"UNIQUE", "DISTINCT", "REMOVE.DUPES", "VALUES"}, 0, "UNIQUE spills distinct values."),
		quiz.MustQuestion("How do you freeze top row in Excel?",
			[]string{"View > Freeze Panes", "Data > Freeze", "Home > Freeze", "Insert > Freeze"}, 0, "Freeze Panes under View allows freezing top rows/columns."),
		quiz.MustQuestion("Which Excel function safely handles division by zero with an alternate result?",
			[]string{"IFERROR", "ERROR.TYPE", "DIVIDE", "IF"}, 0, "IFERROR(value, value_if_error) returns the alternate result when the division fails."),
		quiz.MustQuestion("Which of these is a dynamic array function?",
			[]string{"VLOOKUP", "SEQUENCE", "INDEX", "SUMIFS"}, 1, "SEQUENCE is a dynamic array function introduced in Excel 365."),
		// Power Query
		quiz.MustQuestion("Power Query step to stack two tables vertically is called?",
			[]string{"Merge Queries", "Append Queries", "Join Queries", "Combine Rows"}, 1, "Append stacks tables (vertical)."),
		quiz.MustQuestion("Which step converts first row to headers in Power Query?",
			[]string{"Promote Headers", "Use First Row As Headers", "Headerify", "Promote"}, 0, "Promote Headers uses the first row as column headers."),
		// Power BI modelling
		quiz.MustQuestion("In Power BI, date intelligence typically requires:",
			[]string{"No Date Table", "A dedicated Date table", "Only fact table", "Only DAX"}, 1, "A dedicated Date table enables time-intelligence calculations."),
		quiz.MustQuestion("Which storage mode keeps data in the source and queries live?",
			[]string{"Import", "DirectQuery", "Dual", "CloudQuery"}, 1, "DirectQuery queries the source live."),
		// DAX
		quiz.MustQuestion("Which DAX function calculates Year-over-Year using shifted dates?",
			[]string{"DATEADD", "DATESYTD", "SAMEPERIODLASTYEAR", "PARALLELPERIOD"}, 0, "DATEADD shifts dates by intervals (e.g., -1 year)."),
		quiz.MustQuestion("Which DAX function divides safely handling division by zero?",
			[]string{"/", "DIVIDE", "QUOTIENT", "IFERROR"}, 1, "DIVIDE handles division by zero with optional alternate result."),
		// Mixed
		quiz.MustQuestion("Which Excel shortcut toggles filters?",
			[]string{"Ctrl+T", "Ctrl+Shift+L", "Alt+F4", "Ctrl+F"}, 1, ""),
		quiz.MustQuestion("What does 'Remove Duplicates' do?",
			[]string{"Deletes rows", "Deletes columns", "Removes duplicate rows based on selected columns", "Sorts data"}, 2, ""),
		quiz.MustQuestion("What is a star schema?",
			[]string{"Normalized schema", "Denormalized fact-dimension schema", "Only dimension tables", "No relationships"}, 1, ""),
		quiz.MustQuestion("TopN function in DAX returns",
			[]string{"Top rows based on measure", "All rows", "Only bottom rows", "Unique values"}, 0, ""),
		quiz.MustQuestion("Power Query 'Unpivot' converts",
			[]string{"Rows to columns", "Columns to rows", "Merges tables", "Splits columns"}, 1, ""),
		quiz.MustQuestion("Which Excel formula would you use to combine text from multiple cells with delimiter?",
			[]string{"CONCAT", "TEXTJOIN", "JOIN", "MERGE"}, 1, ""),
		quiz.MustQuestion("In Power BI, what is an aggregation table used for?",
			[]string{"Visuals only", "Summarized queries for performance", "Security", "Formatting"}, 1, ""),
		quiz.MustQuestion("Which DAX function removes filter context?",
			[]string{"FILTER", "ALL", "CALCULATE", "KEEPFILTERS"}, 1, ""),
		quiz.MustQuestion("Which Excel view shows gridlines off for presentations?",
			[]string{"Normal", "Page Layout", "Page Break Preview", "Page Layout with grid off"}, 1, ""),
		quiz.MustQuestion("Which of these is NOT a recommended visual practice?",
			[]string{"One insight per visual", "Too many colors", "Use consistent colors", "Sort bars by value"}, 1, ""),
		// Function definitions
		functionQuestion("SUM", "Returns the sum of numbers."),
		functionQuestion("AVERAGE", "Returns the mean."),
		functionQuestion("COUNT", "Counts numeric entries."),
		functionQuestion("COUNTIF", "Counts based on condition."),
		functionQuestion("SUMIFS", "Sums based on multiple criteria."),
		functionQuestion("INDEX", "Returns value by row/column index."),
		functionQuestion("MATCH", "Finds position of a value."),
		functionQuestion("VLOOKUP", "Vertical lookup (less flexible than XLOOKUP)."),
		functionQuestion("HLOOKUP", "Horizontal lookup."),
		functionQuestion("OFFSET", "Returns a range offset from reference."),
		functionQuestion("INDIRECT", "Returns reference from text."),
	})
}

func functionQuestion(name, desc string) quiz.Question {
	return quiz.MustQuestion("What does the Excel function "+name+" do?",
		[]string{"Aggregation", "Lookup", desc, "Text operation"}, 2, "")
}
