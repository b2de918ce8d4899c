package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"newsflix/internal/domain/entity"
	"newsflix/internal/infra/htmltext"
	"newsflix/internal/nav"
	"newsflix/internal/usecase/viewstate"
	"newsflix/internal/utils/text"
)

const dateLayout = "2 Jan 2006 15:04"

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return m.text.T(m.language(), "common.loading")
	}

	var body string
	switch route := m.session.Current().Route; route.Kind {
	case nav.KindHome:
		body = m.viewList()
	case nav.KindSearch:
		body = m.viewSearch()
	case nav.KindArticle:
		body = m.viewArticle()
	default:
		body = errorStyle.Render(m.text.T(m.language(), "common.notFound"))
	}

	parts := []string{m.viewHeader(), body}
	if m.searching {
		parts = append(parts, m.input.View())
	}
	parts = append(parts, m.viewFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) viewHeader() string {
	filters := m.session.Filters.Current()
	info := filters.Language.Info()
	title := headerStyle.Render("NewsFlix")
	badges := filterBadge.Render(m.text.Category(filters.Language, filters.Category)) +
		filterBadge.Render(info.Flag+" "+info.Label)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, badges) + "\n"
}

func (m *Model) viewFooter() string {
	type hint struct{ key, desc string }
	hints := []hint{{"enter", "open"}, {"/", "search"}, {"c", "category"}, {"l", "language"}}
	if m.session.Current().Route.Kind == nav.KindArticle {
		hints = append(hints, hint{"1-5", "similar"})
	}
	if m.session.History.CanGoBack() {
		hints = append(hints, hint{"b", "back"})
	}
	hints = append(hints, hint{"f", "forward"}, hint{"r", "refresh"}, hint{"q", "quit"})
	var sb strings.Builder
	for i, h := range hints {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(helpKey.Render(h.key) + " " + helpText.Render(h.desc))
	}
	footer := "\n" + sb.String()
	if m.status != "" {
		footer = errorStyle.Render(m.status) + footer
	}
	return footer
}

func (m *Model) viewList() string {
	lang := m.language()
	state := m.session.List.State()

	switch {
	case state.Status == viewstate.Error:
		return m.viewError(state.Err)
	case state.Status == viewstate.Loading && len(state.Articles) == 0:
		return mutedStyle.Render(m.text.T(lang, "common.loading"))
	case state.Status == viewstate.Ready && len(state.Articles) == 0:
		return mutedStyle.Render(m.text.T(lang, "common.empty"))
	}
	return m.renderItems(state.Articles, m.height-chromeLines)
}

func (m *Model) viewSearch() string {
	lang := m.language()
	state := m.session.Search.State()
	heading := metaStyle.Render(fmt.Sprintf("%s %q", m.text.T(lang, "search.results"), state.Query))

	switch state.Status {
	case viewstate.Loading:
		return heading + "\n" + mutedStyle.Render(m.text.T(lang, "search.searching"))
	case viewstate.Error:
		return heading + "\n" + m.viewError(state.Err)
	}
	if len(state.Articles) == 0 {
		return heading + "\n" + mutedStyle.Render(m.text.T(lang, "search.noResults"))
	}
	count := metaStyle.Render(fmt.Sprintf("%s %d", m.text.T(lang, "search.foundResults"), len(state.Articles)))
	return heading + "\n" + count + "\n" + m.renderItems(state.Articles, m.height-chromeLines-2)
}

func (m *Model) viewArticle() string {
	lang := m.language()
	state := m.session.Article.State()

	if state.Terminal {
		return m.viewError(state.Err) + "\n" +
			mutedStyle.Render("b: "+m.text.T(lang, "common.backToArticles"))
	}
	if state.Display == nil {
		return mutedStyle.Render(m.text.T(lang, "common.loading"))
	}

	out := m.detail.View()
	if state.Err != nil {
		out = errorStyle.Render(m.text.T(lang, "common.error")) + "\n" + out
	}
	if state.Refreshing {
		out = mutedStyle.Render("…") + "\n" + out
	}
	return out
}

func (m *Model) viewError(err error) string {
	lang := m.language()
	if errors.Is(err, entity.ErrNotFound) {
		return errorStyle.Render(m.text.T(lang, "common.notFound"))
	}
	msg := m.text.T(lang, "common.error")
	if err != nil {
		msg += ": " + err.Error()
	}
	return errorStyle.Render(msg)
}

// renderItems renders two rows per summary, scrolled so the cursor stays visible.
func (m *Model) renderItems(items []entity.ArticleSummary, rows int) string {
	perPage := max(rows/2, 1)
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := min(start+perPage, len(items))

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		item := items[i]
		style := normalItem
		if i == m.cursor {
			style = selectedItem
		}
		lines = append(lines, style.Render(text.Truncate(item.Title, max(m.width-4, 10))), metaStyle.Render(byline(item.SourceName, item.PublishedAt.IsZero(), item.PublishedAt.Format(dateLayout))))
	}
	return strings.Join(lines, "\n")
}

// renderArticle builds the scrollable content of the detail view.
func (m *Model) renderArticle(a *entity.Article) string {
	lang := m.language()
	width := max(m.detail.Width-2, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(wrap.Render(a.Title)))
	sb.WriteString("\n")
	sb.WriteString(helpText.Render(byline(a.SourceName, a.PublishedAt.IsZero(), a.PublishedAt.Format(dateLayout))))
	sb.WriteString("\n")
	sb.WriteString(helpText.Render(entity.ImageURLOrPlaceholder(a.ImageURL)))
	for _, para := range htmltext.Paragraphs(a.Body()) {
		sb.WriteString("\n")
		sb.WriteString(wrap.Render(para))
		sb.WriteString("\n")
	}

	if len(a.Similar) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sectionStyle.Render(m.text.T(lang, "common.similarArticles")))
		for i, ref := range a.Similar {
			sb.WriteString(fmt.Sprintf("\n%s %s", helpKey.Render(fmt.Sprintf("[%d]", i+1)), ref.Title))
			if ref.SourceName != "" {
				sb.WriteString(helpText.Render(" · " + ref.SourceName))
			}
		}
	}
	return sb.String()
}

func byline(source string, noDate bool, date string) string {
	if noDate {
		return source
	}
	if source == "" {
		return date
	}
	return source + " · " + date
}
