package views

import (
	"fmt"
	"strings"

	"heropick/internal/domain"
	"heropick/internal/search"
)

// DetailRenderer renders the detail card for the selected character
type DetailRenderer struct {
	styles *Styles
}

// NewDetailRenderer creates a new detail renderer
func NewDetailRenderer(styles *Styles) *DetailRenderer {
	return &DetailRenderer{styles: styles}
}

// RenderCard renders the pane for st. spinner is the current spinner frame.
func (d *DetailRenderer) RenderCard(st search.DetailState, spinner string, width int) string {
	if st.Selection == nil {
		return ""
	}

	var body string
	switch {
	case st.Loading:
		body = d.styles.StatusLoading.Render(fmt.Sprintf("%s Loading %s…", spinner, st.Selection.Name))
	case st.NotFound:
		body = d.styles.StatusWarning.Render(st.Error)
	case st.Error != "":
		body = d.styles.StatusError.Render(st.Error)
	case st.Data != nil:
		body = d.renderRecord(*st.Data)
	}

	style := d.styles.Card
	if width > 8 {
		style = style.Width(width - 6)
	}
	return style.Render(body)
}

func (d *DetailRenderer) renderRecord(c domain.CharacterDetail) string {
	var b strings.Builder
	b.WriteString(d.styles.CardTitle.Render(c.Name))
	b.WriteString(d.styles.Dim.Render(fmt.Sprintf("  #%d", c.ID)))
	b.WriteString("\n\n")

	b.WriteString(c.Description)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d",
		d.styles.Label.Render("Comics:"), c.ComicsAvailable,
		d.styles.Label.Render("Series:"), c.SeriesAvailable,
		d.styles.Label.Render("Stories:"), c.StoriesAvailable,
	))
	if c.ThumbnailURL != "" {
		b.WriteString("\n")
		b.WriteString(d.styles.Label.Render("Image: "))
		b.WriteString(d.styles.Thumb.Render(c.ThumbnailURL))
	}
	return b.String()
}

// PlainRecord renders c as uncoloured text for the pager
func PlainRecord(c domain.CharacterDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (#%d)\n", c.Name, c.ID)
	b.WriteString(strings.Repeat("=", len(c.Name)+len(fmt.Sprint(c.ID))+4))
	b.WriteString("\n\n")
	b.WriteString(c.Description)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Comics:  %d\nSeries:  %d\nStories: %d\n", c.ComicsAvailable, c.SeriesAvailable, c.StoriesAvailable)
	if c.ThumbnailURL != "" {
		fmt.Fprintf(&b, "Image:   %s\n", c.ThumbnailURL)
	}
	return b.String()
}
