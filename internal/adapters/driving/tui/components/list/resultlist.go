// Package list provides the grouped result list of the search box.
package list

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/nutri-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/nutri-cli/internal/core/domain"
)

// Leading markers per result media. Terminals cannot show thumbnails, so an
// image result gets a frame marker instead.
const (
	iconMarker  = "◆"
	imageMarker = "▣"
	noMarker    = " "
)

// ResultList renders a session snapshot as headed groups with one
// highlighted row.
type ResultList struct {
	styles *styles.Styles
	state  domain.SessionState
	cfg    domain.SessionConfig
	width  int
	height int

	// rows maps each rendered content line to a result position, -1 for
	// headings and spacers. Rebuilt by View.
	rows []int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		state:  domain.SessionState{SelectionIndex: -1},
		cfg:    domain.DefaultSessionConfig(),
		width:  80,
		height: 10,
	}
}

// SetState replaces the displayed snapshot.
func (r *ResultList) SetState(state domain.SessionState) {
	r.state = state
}

// State returns the displayed snapshot.
func (r *ResultList) State() domain.SessionState {
	return r.state
}

// SetConfig sets the presentation and media of the list.
func (r *ResultList) SetConfig(cfg domain.SessionConfig) {
	r.cfg = cfg.Normalised()
}

// View renders the list, or the empty message when there is nothing to list.
func (r *ResultList) View() string {
	if len(r.state.Results) == 0 {
		r.rows = nil
		return r.renderMessage()
	}

	lines, rows, selectedLine := r.renderLines()
	start := windowStart(len(lines), selectedLine, r.visibleLines())
	end := min(start+r.visibleLines(), len(lines))
	r.rows = rows[start:end]
	body := strings.Join(lines[start:end], "\n")

	if r.cfg.Presentation == domain.PresentationModalDialog {
		return r.styles.Modal.Render(body)
	}
	return r.styles.Panel.Render(body)
}

func (r *ResultList) renderMessage() string {
	msg := r.state.EmptyMessage()
	switch {
	case msg == "":
		return ""
	case r.state.Status == domain.SearchStatusError:
		return r.styles.Error.Render(msg)
	default:
		return r.styles.Muted.Render(msg)
	}
}

// renderLines lays out every group. It returns the lines, the result
// position of each line and the index of the highlighted line, or -1.
func (r *ResultList) renderLines() (lines []string, rows []int, selectedLine int) {
	n := len(r.state.Results) + 2*len(r.state.Groups)
	lines = make([]string, 0, n)
	rows = make([]int, 0, n)
	selectedLine = -1
	pos := 0

	for gi, group := range r.state.Groups {
		if gi > 0 {
			lines = append(lines, "")
			rows = append(rows, -1)
		}
		lines = append(lines, r.styles.GroupHeading.Render(group.Heading))
		rows = append(rows, -1)
		for i := range group.Results {
			if pos == r.state.SelectionIndex {
				selectedLine = len(lines)
			}
			lines = append(lines, r.renderResult(&group.Results[i], pos == r.state.SelectionIndex))
			rows = append(rows, pos)
			pos++
		}
	}
	return lines, rows, selectedLine
}

// IndexAt returns the result position rendered on content line row of the
// last View, or -1 when the line holds no result.
func (r *ResultList) IndexAt(row int) int {
	if row < 0 || row >= len(r.rows) {
		return -1
	}
	return r.rows[row]
}

// ContentOffset is the number of lines between the top of the rendered
// list and its first content line.
func (r *ResultList) ContentOffset() int {
	if r.cfg.Presentation == domain.PresentationModalDialog {
		return 2
	}
	return 1
}

func (r *ResultList) renderResult(result *domain.SearchResult, selected bool) string {
	marker := r.marker(result)
	maxWidth := r.contentWidth()

	text := result.Title
	if result.Description != nil && *result.Description != "" {
		text += " · " + *result.Description
	}
	text = truncate(text, maxWidth-4)

	if selected {
		return r.styles.Selected.Render("> " + marker + " " + text)
	}
	title, rest := text, ""
	if strings.HasPrefix(text, result.Title) {
		title, rest = result.Title, text[len(result.Title):]
	}
	return "  " + r.styles.Muted.Render(marker) + " " + r.styles.Normal.Render(title) + r.styles.Muted.Render(rest)
}

func (r *ResultList) marker(result *domain.SearchResult) string {
	if r.cfg.ResultMedia == domain.ResultMediaImage {
		if result.ImageURL == "" {
			return noMarker
		}
		return imageMarker
	}
	return iconMarker
}

func (r *ResultList) contentWidth() int {
	w := r.width - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (r *ResultList) visibleLines() int {
	n := r.height - 2
	if r.cfg.Presentation == domain.PresentationModalDialog {
		n -= 2
	}
	if n < 3 {
		n = 3
	}
	return n
}

// windowStart returns the first of n visible lines out of total that keeps
// focus in view.
func windowStart(total, focus, n int) int {
	if total <= n {
		return 0
	}
	start := 0
	if focus >= n {
		start = focus - n + 1
	}
	if start+n > total {
		start = total - n
	}
	return start
}

func truncate(s string, n int) string {
	if n < 4 || lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.state.Results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.state.Results) == 0
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}
