package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"heropick/internal/domain"
)

// ResultsRenderer renders the search result list
type ResultsRenderer struct {
	styles *Styles
}

// NewResultsRenderer creates a new results renderer
func NewResultsRenderer(styles *Styles) *ResultsRenderer {
	return &ResultsRenderer{styles: styles}
}

// RenderList renders results with the cursor row marked and the query
// highlighted in each name. maxRows <= 0 means no limit.
func (r *ResultsRenderer) RenderList(results []domain.CharacterSummary, cursor int, query string, maxRows int) string {
	start, end := window(len(results), cursor, maxRows)

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(r.renderRow(results[i], i == cursor, query))
	}
	if end < len(results) {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("  … %d more", len(results)-end)))
	}
	return b.String()
}

func (r *ResultsRenderer) renderRow(c domain.CharacterSummary, isCursor bool, query string) string {
	marker := "  "
	if isCursor {
		marker = r.styles.Cursor.Render("› ")
	}

	name := highlightMatch(c.Name, query, r.styles.Highlight, lipgloss.NewStyle())
	thumb := ""
	if c.HasThumbnail() {
		thumb = " " + r.styles.Thumb.Render("▣")
	}
	id := r.styles.Dim.Render(fmt.Sprintf("#%d", c.ID))

	line := fmt.Sprintf("%s%s%s  %s", marker, name, thumb, id)
	if isCursor {
		return r.styles.SelectionBg.Render(line)
	}
	return line
}

// window returns the [start, end) slice of rows that keeps cursor visible
func window(n, cursor, maxRows int) (int, int) {
	if maxRows <= 0 || n <= maxRows {
		return 0, n
	}
	start := 0
	if cursor >= maxRows {
		start = cursor - maxRows + 1
	}
	return start, start + maxRows
}

// highlightMatch highlights the first case-insensitive occurrence of query in text
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return normalStyle.Render(text)
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	// Case folding changed byte offsets; indexes would not line up
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		return normalStyle.Render(text)
	}

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
