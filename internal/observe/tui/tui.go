// Package tui is the interactive --tui observer: a bubbletea program
// that renders AnalysisEvent lifecycle messages as they arrive on a
// dr.Sink, live, while a directory analysis runs in the background.
//
// Grounded on the channel-listening bubbletea model shape used by the
// pack's other interactive TUIs (geartest's TUIModel: a model holding
// a channel, a listen command re-armed after every message, Update
// dispatching on message type, View rendering with lipgloss styles).
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/farcloser/dr"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")) //nolint:gochecknoglobals
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))           //nolint:gochecknoglobals
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))           //nolint:gochecknoglobals
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))           //nolint:gochecknoglobals
)

// Run drives an interactive directory analysis: it launches
// AnalyzeDirectoryAsync in the background and a bubbletea program in
// the foreground. If the user quits early, the observer stops listening
// and Run still waits for the background analysis to finish; it
// returns once the analysis has completed.
func Run(dir string, opts dr.AnalysisOptions) (dr.AlbumResult, error) {
	sink := dr.NewSink()
	errCh := make(chan error, 1)

	go func() {
		errCh <- dr.AnalyzeDirectoryAsync(dir, sink, opts)
	}()

	program := tea.NewProgram(newModel(sink))

	final, err := program.Run()
	if err != nil {
		sink.Disconnect()

		return dr.AlbumResult{}, fmt.Errorf("running observer: %w", err)
	}

	m, _ := final.(model)
	if m.quit {
		sink.Disconnect()
	}

	if asyncErr := <-errCh; asyncErr != nil {
		return dr.AlbumResult{}, asyncErr
	}

	return m.result, nil
}

type eventMsg dr.AnalysisEvent

type track struct {
	title    string
	bar      progress.Model
	percent  float64
	done     bool
	errorMsg string
}

type model struct {
	sink   *dr.Sink
	tracks map[int]*track
	order  []int
	result dr.AlbumResult
	quit   bool
	done   bool
}

func newModel(sink *dr.Sink) model {
	return model{
		sink:   sink,
		tracks: make(map[int]*track),
	}
}

func (m model) Init() tea.Cmd {
	return listen(m.sink)
}

func listen(sink *dr.Sink) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sink.Events()
		if !ok {
			return eventMsg{Kind: dr.EventAlbumCompleted}
		}

		return eventMsg(ev)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true

			return m, tea.Quit
		}
	case eventMsg:
		return m.handleEvent(dr.AnalysisEvent(msg))
	}

	return m, nil
}

func (m model) handleEvent(ev dr.AnalysisEvent) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case dr.EventTrackStarted:
		if _, ok := m.tracks[ev.Index]; !ok {
			bar := progress.New(progress.WithDefaultGradient())
			m.tracks[ev.Index] = &track{bar: bar}
			m.order = append(m.order, ev.Index)
		}
	case dr.EventTrackProgress:
		if t, ok := m.tracks[ev.Index]; ok {
			t.percent = ev.Percent
		}
	case dr.EventTrackCompleted:
		if t, ok := m.tracks[ev.Index]; ok {
			t.done = true
			t.percent = 1
			t.title = ev.Result.Title
		}
	case dr.EventTrackError:
		if t, ok := m.tracks[ev.Index]; ok {
			t.done = true
			t.errorMsg = ev.Message
		}
	case dr.EventAlbumCompleted:
		m.result = ev.Album
		m.done = true

		return m, tea.Quit
	}

	return m, listen(m.sink)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("dr — analyzing"))
	b.WriteByte('\n')
	b.WriteByte('\n')

	for _, idx := range m.order {
		t := m.tracks[idx]

		label := t.title
		if label == "" {
			label = fmt.Sprintf("track %d", idx)
		}

		switch {
		case t.errorMsg != "":
			fmt.Fprintf(&b, "%s %s\n", errorStyle.Render("✗"), label)
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render(t.errorMsg))
		case t.done:
			fmt.Fprintf(&b, "%s %s\n", doneStyle.Render("✓"), label)
		default:
			fmt.Fprintf(&b, "%s %s\n", t.bar.ViewAs(t.percent), label)
		}
	}

	b.WriteByte('\n')
	b.WriteString(dimStyle.Render("q/ctrl+c to quit"))

	return b.String()
}
