// Package tui renders interactive generation progress with bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
)

// EventMsg wraps a pipeline progress event for the bubbletea loop.
type EventMsg struct {
	Event driving.ProgressEvent
}

// DoneMsg signals that generation has finished.
type DoneMsg struct {
	Err error
}

// stageOrder fixes the display order of pipeline stages.
var stageOrder = []driving.ProgressStage{
	driving.StageIdentity,
	driving.StageManifest,
	driving.StagePlan,
	driving.StageSections,
	driving.StageAssemble,
	driving.StageFinalise,
}

var stageLabels = map[driving.ProgressStage]string{
	driving.StageIdentity: "Extracting identity",
	driving.StageManifest: "Building brand manifest",
	driving.StagePlan:     "Planning blueprint",
	driving.StageSections: "Generating sections",
	driving.StageAssemble: "Assembling document",
	driving.StageFinalise: "Finalising",
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// sectionState tracks one section's progress within the sections stage.
type sectionState struct {
	id     string
	done   bool
	failed bool
}

// Progress is the bubbletea model for pipeline progress.
type Progress struct {
	sourceURL string
	spinner   spinner.Model

	started   map[driving.ProgressStage]bool
	completed map[driving.ProgressStage]bool
	sections  []sectionState

	err       error
	finished  bool
	cancelled bool
}

// NewProgress creates a progress model for one generation run.
func NewProgress(sourceURL string) Progress {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	return Progress{
		sourceURL: sourceURL,
		spinner:   s,
		started:   make(map[driving.ProgressStage]bool),
		completed: make(map[driving.ProgressStage]bool),
	}
}

// Cancelled reports whether the user aborted the run.
func (m Progress) Cancelled() bool {
	return m.cancelled
}

// Err returns the generation error, if any.
func (m Progress) Err() error {
	return m.err
}

func (m Progress) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case EventMsg:
		m.apply(msg.Event)
		return m, nil

	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Progress) apply(ev driving.ProgressEvent) {
	if ev.SectionID != "" {
		m.applySection(ev)
		return
	}
	if ev.Done {
		m.completed[ev.Stage] = true
	} else {
		m.started[ev.Stage] = true
	}
}

func (m *Progress) applySection(ev driving.ProgressEvent) {
	for i := range m.sections {
		if m.sections[i].id == ev.SectionID {
			m.sections[i].done = ev.Done
			m.sections[i].failed = ev.Failed
			return
		}
	}
	m.sections = append(m.sections, sectionState{
		id:     ev.SectionID,
		done:   ev.Done,
		failed: ev.Failed,
	})
}

func (m Progress) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Generating site from "+m.sourceURL) + "\n\n")

	for _, stage := range stageOrder {
		label := stageLabels[stage]
		switch {
		case m.completed[stage]:
			b.WriteString(doneStyle.Render("  ✓ "+label) + "\n")
		case m.started[stage]:
			b.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), label))
		default:
			b.WriteString(pendingStyle.Render("  · "+label) + "\n")
		}

		if stage == driving.StageSections {
			for _, sec := range m.sections {
				switch {
				case sec.failed:
					b.WriteString(failStyle.Render("      ! "+sec.id+" (placeholder)") + "\n")
				case sec.done:
					b.WriteString(doneStyle.Render("      ✓ "+sec.id) + "\n")
				default:
					b.WriteString(pendingStyle.Render("      … "+sec.id) + "\n")
				}
			}
		}
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Generation failed: "+m.err.Error()) + "\n")
	case m.finished:
		b.WriteString(doneStyle.Render("Done.") + "\n")
	default:
		b.WriteString(pendingStyle.Render("Press q to cancel") + "\n")
	}

	return b.String()
}
