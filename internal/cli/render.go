package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/dmitrijs2005/userdir/internal/state"
	"golang.org/x/term"
)

const defaultWidth = 100

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	favStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	offlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EA580C"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Width(12)
)

const heart = "♥"

func termWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// renderTable lays users out one per row. Name and email share the width
// left over by the fixed columns.
func renderTable(users []models.User, isFav func(id string) bool, width int) string {
	flex := max((width-40)/2, 12)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", heart, "Name", "Email", "Age", "Country").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, u := range users {
		mark := ""
		if isFav(u.ID) {
			mark = favStyle.Render(heart)
		}
		t.Row(
			strconv.Itoa(i+1),
			mark,
			truncate(u.Name.FullName(), flex),
			truncate(u.Email, flex),
			strconv.Itoa(u.DOB.Age),
			truncate(u.Location.Country, 16),
		)
	}
	return t.String()
}

// renderBanner describes loading, error and offline conditions. It returns
// "" when there is nothing to report.
func renderBanner(snap state.Snapshot) string {
	switch {
	case snap.IsLoading && len(snap.Users) == 0:
		return dimStyle.Render("Loading users...")
	case snap.IsError && len(snap.Users) == 0:
		return errorStyle.Render("Error: "+snap.ErrorMessage) + "\n" +
			dimStyle.Render("Type 'retry' to try again.")
	case snap.IsOffline:
		lines := []string{offlineStyle.Render("You are offline. Showing cached data from your last visit.")}
		if snap.IsError {
			lines = append(lines, dimStyle.Render(snap.ErrorMessage))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func renderFooter(snap state.Snapshot, shown int) string {
	first, last := snap.PageRange()
	parts := []string{
		fmt.Sprintf("Showing %d-%d of %d results", first, last, snap.TotalResults),
		fmt.Sprintf("page %d of %d", snap.CurrentPage, max(snap.TotalPages(), 1)),
		fmt.Sprintf("sorted by %s %s", snap.SortBy, snap.SortOrder),
	}
	if snap.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("%d match %q", shown, snap.SearchTerm))
	}
	return dimStyle.Render(strings.Join(parts, " · "))
}

func renderEmpty(snap state.Snapshot) string {
	if snap.SearchTerm != "" {
		return fmt.Sprintf("No users match %q.", snap.SearchTerm)
	}
	return "No users found."
}

func renderDetail(u models.User, fav bool) string {
	title := strings.TrimSpace(u.Name.Title + " " + u.Name.FullName())
	if fav {
		title += " " + favStyle.Render(heart)
	}

	row := func(label, value string) string {
		return labelStyle.Render(label) + value
	}
	lines := []string{
		headerStyle.UnsetPadding().Render(title),
		dimStyle.Render("@" + u.Login.Username),
		row("Email:", u.Email),
		row("Phone:", u.Phone),
		row("Cell:", u.Cell),
		row("Street:", strings.TrimSpace(fmt.Sprintf("%d %s", u.Location.Street.Number, u.Location.Street.Name))),
		row("City:", strings.TrimSpace(fmt.Sprintf("%s, %s %s", u.Location.City, u.Location.State, u.Location.Postcode))),
		row("Country:", u.Location.Country),
		row("Age:", fmt.Sprintf("%d (born %s)", u.DOB.Age, formatDate(u.DOB.Date))),
		row("Nat:", u.Nat),
		row("Member:", "since "+formatDate(u.Registered.Date)),
		row("ID:", u.ID),
	}
	return strings.Join(lines, "\n")
}

func formatDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}
