package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"selfcare/internal/engine"
	"selfcare/internal/storage"
	"selfcare/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	characters []storage.Character
	rep        *storage.Character
	missions   []storage.Mission

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	characters []storage.Character
	rep        *storage.Character
	missions   []storage.Mission
	err        error
}

type completedMsg struct {
	id  string
	res *engine.CompleteResult
	err error
}

type uncompletedMsg struct {
	id  string
	err error
}

type preferredMsg struct {
	category engine.Category
	err      error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		chars, err := m.svc.CharacterRepo().List(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		rep, err := m.svc.Representative(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		missions, err := m.svc.MissionRepo().List(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{characters: chars, rep: rep, missions: missions}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteMission(m.ctx, id, nil)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) uncompleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.svc.UncompleteMission(m.ctx, id)
		return uncompletedMsg{id: id, err: err}
	}
}

func (m boardModel) preferCmd(category string) tea.Cmd {
	return func() tea.Msg {
		c, err := m.svc.SetRepresentativePreference(m.ctx, category)
		return preferredMsg{category: c, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.characters = msg.characters
		m.rep = msg.rep
		m.missions = msg.missions
		if m.selected >= len(m.missions) {
			m.selected = len(m.missions) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		var pf *engine.PartialFailureError
		switch {
		case errors.As(msg.err, &pf):
			m.lastLog = "Mission saved but experience was not: " + pf.Err.Error()
			return m, m.loadCmd()
		case msg.err != nil:
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completed %s: +%d XP (level %d → %d)", msg.id, msg.res.ExperienceAwarded, msg.res.LevelBefore, msg.res.NewLevel)
		if msg.res.LevelUp {
			m.lastLog += " " + ui.BadgeLevelUp
		}
		return m, m.loadCmd()
	case uncompletedMsg:
		if msg.err != nil {
			m.lastLog = "Undo failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Reopened %s.", msg.id)
		return m, m.loadCmd()
	case preferredMsg:
		if msg.err != nil {
			m.lastLog = "Could not set representative: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Representative set to %s.", msg.category)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.missions)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			mission := m.current()
			if mission == nil {
				return m, nil
			}
			if mission.Completed {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", mission.MissionID)
			return m, m.completeCmd(mission.MissionID)
		case "u":
			mission := m.current()
			if mission == nil {
				return m, nil
			}
			if !mission.Completed {
				m.lastLog = "Not completed yet."
				return m, nil
			}
			return m, m.uncompleteCmd(mission.MissionID)
		case "p":
			mission := m.current()
			if mission == nil {
				return m, nil
			}
			return m, m.preferCmd(mission.Category)
		}
	}
	return m, nil
}

func (m boardModel) current() *storage.Mission {
	if m.selected < 0 || m.selected >= len(m.missions) {
		return nil
	}
	return &m.missions[m.selected]
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading && m.rep == nil {
		return "Selfcare — loading…"
	}
	if m.rep == nil {
		return "Selfcare | no characters yet (run `sc init`)"
	}
	c := m.rep
	bar := ui.ProgressBar(engine.ExperienceIntoLevel(c.TotalExperience), engine.ExperiencePerLevel, 30)
	return fmt.Sprintf("Selfcare | %s %s | Level %d | XP %d %s %.0f%%",
		ui.CategoryIcon(c.CategoryID), c.Name, c.Level, c.TotalExperience, bar, engine.LevelProgress(c.TotalExperience)*100)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Characters"}
	if len(m.characters) == 0 {
		lines = append(lines, "(none)")
	}
	for _, c := range m.characters {
		mark := "  "
		if m.rep != nil && m.rep.ID == c.ID {
			mark = "★ "
		}
		bar := ui.ProgressBar(engine.ExperienceIntoLevel(c.TotalExperience), engine.ExperiencePerLevel, 10)
		lines = append(lines, fmt.Sprintf("%s%s L%d %s", mark, ui.CategoryIcon(c.CategoryID), c.Level, bar))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- u: undo completion")
	lines = append(lines, "- p: feature category")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Missions"}
	if len(m.missions) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, mission := range m.missions {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		state := "[ ]"
		if mission.Completed {
			state = "[x]"
		}
		out = append(out, fmt.Sprintf("%s%s %s %s (xp=%d)", cursor, state, ui.CategoryIcon(mission.Category), mission.Title, mission.Experience))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
