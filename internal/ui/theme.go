package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Selfcare theme shared by the CLI and the board.

const (
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconUndo    = "↩️"
	IconTrophy  = "🏆"
	IconStar    = "⭐"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconDiary   = "📔"
	IconPhoto   = "📷"
	IconHeart   = "💖"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = Gold.Render("LEVEL UP")
)

var categoryIcons = map[string]string{
	"sleep":    "🌙",
	"exercise": "🏃",
	"meal":     "🍙",
	"mind":     "🧘",
	"social":   "💬",
}

var emotionIcons = map[string]string{
	"happy":   "😊",
	"calm":    "😌",
	"proud":   "😤",
	"sad":     "😢",
	"angry":   "😠",
	"anxious": "😟",
	"tired":   "😪",
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "❔"
}

func EmotionIcon(emotion string) string {
	if icon, ok := emotionIcons[emotion]; ok {
		return icon
	}
	return "·"
}

// CompletionText renders a mission's completion state.
func CompletionText(completed bool) string {
	if completed {
		return Good.Render(IconDone + " done")
	}
	return Muted.Render(IconTodo + " todo")
}

// ProgressBar draws value/total as a fixed-width ASCII bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
