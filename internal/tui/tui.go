// Package tui provides a Bubble Tea terminal user interface for liforganiser.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"liforganiser/internal/config"
	"liforganiser/internal/model"
	"liforganiser/internal/organise"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	chapterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateFetching
	StateReview
	StateOrganising
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   organise.ProgressLevel
}

// eventBuffer collects progress events from the manager's callback, which
// runs outside the Bubble Tea loop. The UI drains it on every tick.
type eventBuffer struct {
	mu     sync.Mutex
	events []organise.ProgressEvent
}

func (b *eventBuffer) add(e organise.ProgressEvent) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *eventBuffer) drain() []organise.ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	logs      []LogEntry
	course    *model.Course
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *organise.Manager
	buffer  *eventBuffer

	// Options
	rescrape bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "160"
	ti.Focus()
	ti.CharLimit = 10
	ti.Width = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		buffer:    &eventBuffer{},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// FetchDoneMsg is sent when the course model is available.
	FetchDoneMsg struct {
		Course  *model.Course
		Manager *organise.Manager
		Err     error
	}

	// OrganiseDoneMsg is sent when the organise run finishes.
	OrganiseDoneMsg struct {
		Err error
	}

	// TickMsg drives periodic draining of buffered progress events.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput || m.state == StateReview {
				return m, tea.Quit
			}
			if m.state == StateFetching || m.state == StateOrganising {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateFetching
				return m, tea.Batch(m.fetchCourse(), m.spinner.Tick, m.tickEvents())
			}
			if m.state == StateReview {
				m.state = StateOrganising
				m.logs = nil
				return m, tea.Batch(m.organiseCourse(), m.spinner.Tick, m.tickEvents())
			}

		case "f":
			if m.state == StateInput {
				m.rescrape = !m.rescrape
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateReview || m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another course
				m.state = StateInput
				m.logs = nil
				m.course = nil
				m.err = nil
				m.manager = nil
				m.buffer = &eventBuffer{}
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case FetchDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.course = msg.Course
			m.manager = msg.Manager
			m.state = StateReview
		}

	case OrganiseDoneMsg:
		m.appendEvents(m.buffer.drain())
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		m.appendEvents(m.buffer.drain())
		if m.state == StateFetching || m.state == StateOrganising {
			cmds = append(cmds, m.tickEvents())
		}
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) appendEvents(events []organise.ProgressEvent) {
	for _, event := range events {
		if event.Level == organise.LevelVerbose && !m.verbose {
			continue
		}
		m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	}
	// Keep only the last 10 logs
	if len(m.logs) > 10 {
		m.logs = m.logs[len(m.logs)-10:]
	}
}

// tickEvents returns a command to drain buffered progress events.
func (m Model) tickEvents() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📚 LearnItFirst Organiser"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Sort downloaded course files into chapters and lessons"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateFetching:
		b.WriteString(m.viewFetching())
	case StateReview:
		b.WriteString(m.viewReview())
	case StateOrganising:
		b.WriteString(m.viewOrganising())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter course ID:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Options
	rescrapeCheck := "[ ]"
	if m.rescrape {
		rescrapeCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Force re-scrape, ignore cache (f)\n", rescrapeCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Source:      %s", m.settings.SourcePath)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Destination: %s", m.settings.DestinationPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching course info..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewReview() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(m.course.Title))
	b.WriteString("\n")
	for _, num := range m.course.ChapterNumbers() {
		chapter := m.course.Chapters[num]
		b.WriteString(chapterStyle.Render(fmt.Sprintf("  %s (%d lessons)", chapter.Name, len(chapter.Lessons))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Source:      %s", m.settings.SourcePath)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Destination: %s", m.settings.DestinationPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewOrganising() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Organising %s...", m.course.Title)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Organising Complete!\n\n"+
			"Course: %s\n"+
			"Chapters: %d\n"+
			"Lessons on record: %d",
		m.course.Title,
		len(m.course.Chapters),
		m.course.LessonCount(),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case organise.LevelError:
			style = errorStyle
			prefix = "✗"
		case organise.LevelWarning:
			style = warningStyle
			prefix = "!"
		case organise.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case organise.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: fetch course • f: force re-scrape • v: verbose • esc: quit"
	case StateFetching, StateOrganising:
		return "esc: cancel"
	case StateReview:
		return "enter: organise • q: quit"
	case StateComplete, StateError:
		return "r: another course • q: quit"
	}
	return ""
}

// fetchCourse resolves the course model, from cache or by scraping.
func (m *Model) fetchCourse() tea.Cmd {
	buffer := m.buffer
	ctx := m.ctx
	rescrape := m.rescrape
	input := m.textInput.Value()
	settings := m.settings

	return func() tea.Msg {
		courseID, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return FetchDoneMsg{Err: fmt.Errorf("course ID must be a number, got %q", input)}
		}

		manager, err := organise.NewManager(settings, buffer.add)
		if err != nil {
			return FetchDoneMsg{Err: err}
		}

		var course *model.Course
		if rescrape {
			course, err = manager.RefreshCourse(ctx, courseID)
		} else {
			course, err = manager.GetCourse(ctx, courseID)
		}
		if err != nil {
			return FetchDoneMsg{Err: err}
		}

		return FetchDoneMsg{Course: course, Manager: manager}
	}
}

// organiseCourse runs the organiser in the background.
func (m *Model) organiseCourse() tea.Cmd {
	manager := m.manager
	course := m.course

	return func() tea.Msg {
		if manager == nil {
			return OrganiseDoneMsg{Err: fmt.Errorf("no manager")}
		}
		return OrganiseDoneMsg{Err: manager.Organise(course)}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
