// Package tui is the interactive terminal front end of the reader.
//
// The bubbletea program is the event loop host: every handler posted to the
// eventloop.Loop, and every request completion, is delivered to Update through
// a mailbox and executed there. Controllers are therefore only ever touched
// from the program goroutine.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"newsflix/internal/domain/entity"
	"newsflix/internal/eventloop"
	"newsflix/internal/i18n"
	"newsflix/internal/nav"
	"newsflix/internal/usecase/reader"
)

// chromeLines is the number of rows taken by the header, the input line and the footer.
const chromeLines = 5

// Model is the bubbletea model of the reader.
type Model struct {
	ctx     context.Context
	loop    *eventloop.Loop
	session *reader.Session
	text    *i18n.Bundle
	logger  *slog.Logger
	box     *mailbox

	width     int
	height    int
	cursor    int
	lastPath  string
	status    string
	searching bool
	started   bool
	input     textinput.Model
	detail    viewport.Model
}

// New creates the model. The session is started by Init.
func New(ctx context.Context, loop *eventloop.Loop, session *reader.Session, text *i18n.Bundle, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 50
	input.Prompt = "/ "

	m := &Model{
		ctx:     ctx,
		loop:    loop,
		session: session,
		text:    text,
		logger:  logger,
		box:     newMailbox(),
		input:   input,
		detail:  viewport.New(80, 20),
	}
	session.OnChange(m.sync)
	session.Article.OnSettled(func() { m.detail.GotoTop() })
	return m
}

// Run hosts the event loop in a full-screen bubbletea program until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	m.loop.SetSink(m.box.post)
	defer m.loop.SetSink(nil)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	m.session.Stop()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init starts the session and begins draining the mailbox.
func (m *Model) Init() tea.Cmd {
	if !m.started {
		m.started = true
		m.session.Start(m.ctx)
	}
	m.loop.RunPending()
	return m.box.wait()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-chromeLines, 1)
		m.sync()
	case tasksMsg:
		for _, h := range msg {
			m.loop.Exec(h)
		}
		return m, m.box.wait()
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearchInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		lang := m.session.Filters.Current().Language
		if m.session.Search.Submit(m.input.Value(), string(lang)) {
			m.closeInput()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	kind := m.session.Current().Route.Kind

	switch key := msg.String(); key {
	case "ctrl+c", "q":
		m.session.Stop()
		return m, tea.Quit
	case "c":
		m.report(m.session.CycleCategory())
	case "l":
		m.report(m.session.CycleLanguage())
	case "r":
		m.report(m.session.Refresh())
	case "b", "esc":
		if !m.session.Back() {
			m.session.GoHome()
		}
	case "f":
		m.session.Forward()
	case "/":
		m.searching = true
		m.input.Placeholder = m.text.T(m.language(), "search.placeholder")
		return m, m.input.Focus()
	case "up", "k":
		if kind == nav.KindArticle {
			return m.scroll(msg)
		}
		m.moveCursor(-1)
	case "down", "j":
		if kind == nav.KindArticle {
			return m.scroll(msg)
		}
		m.moveCursor(1)
	case "enter":
		items := m.items()
		if m.cursor >= 0 && m.cursor < len(items) {
			m.session.Article.Open(items[m.cursor])
		}
	case "1", "2", "3", "4", "5":
		if kind == nav.KindArticle {
			m.openSimilar(int(key[0] - '1'))
		}
	default:
		if kind == nav.KindArticle {
			return m.scroll(msg)
		}
	}
	return m, nil
}

func (m *Model) scroll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) openSimilar(i int) {
	display := m.session.Article.State().Display
	if display == nil || i >= len(display.Similar) {
		return
	}
	m.session.Article.OpenSimilar(display.Similar[i])
}

func (m *Model) closeInput() {
	m.searching = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) moveCursor(delta int) {
	n := len(m.items())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}
	m.logger.Warn("action failed", slog.Any("error", err))
	m.status = err.Error()
}

// sync runs after every session change. It resets the cursor when the route
// changes and refreshes the detail content.
func (m *Model) sync() {
	entry := m.session.Current()
	if path := entry.Route.Path(); path != m.lastPath {
		m.lastPath = path
		m.cursor = 0
	}
	if n := len(m.items()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if entry.Route.Kind == nav.KindArticle {
		if display := m.session.Article.State().Display; display != nil {
			m.detail.SetContent(m.renderArticle(display))
		} else {
			m.detail.SetContent("")
		}
	}
}

// items returns the summaries of the current list or search view.
func (m *Model) items() []entity.ArticleSummary {
	switch m.session.Current().Route.Kind {
	case nav.KindHome:
		return m.session.List.State().Articles
	case nav.KindSearch:
		return m.session.Search.State().Articles
	default:
		return nil
	}
}

func (m *Model) language() entity.Language {
	return m.session.Filters.Current().Language
}
