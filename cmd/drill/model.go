package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vocabdrill/internal/quiz"
)

var (
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true) // Green
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // Red
	styleHint      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // Yellow
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	styleCard      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 4).Width(40).Align(lipgloss.Center)
	styleBarGreen  = lipgloss.NewStyle().Background(lipgloss.Color("10")).SetString(" ")
	styleBarGrey   = lipgloss.NewStyle().Background(lipgloss.Color("8")).SetString(" ")
)

const barWidth = 30

// model drives either a graded quiz (controller) or a flashcard deck
type model struct {
	ctx       context.Context
	title     string
	ctrl      *quiz.Controller
	deck      *quiz.Deck
	textInput textinput.Model
	err       error
}

func newQuizModel(ctx context.Context, title string, ctrl *quiz.Controller) model {
	ti := textinput.New()
	ti.Placeholder = "Type the answer and press Enter..."
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 50
	ti.Prompt = "> "

	return model{ctx: ctx, title: title, ctrl: ctrl, textInput: ti}
}

func newDeckModel(title string, deck *quiz.Deck) model {
	return model{ctx: context.Background(), title: title, deck: deck}
}

func (m model) Init() tea.Cmd {
	if m.ctrl != nil {
		return textinput.Blink
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyCtrlC || key.Type == tea.KeyEsc) {
		return m, tea.Quit
	}
	if m.deck != nil {
		return m.updateDeck(msg)
	}
	return m.updateQuiz(msg)
}

func (m model) updateQuiz(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab:
			if m.ctrl.Pool().Mode() == quiz.ModeWord {
				m.ctrl.ToggleHint()
			}
			return m, nil

		case tea.KeyCtrlR:
			m.err = m.ctrl.Reset(m.ctx)
			m.textInput.SetValue("")
			return m, nil

		case tea.KeyEnter:
			view := m.ctrl.View()
			switch {
			case view.Controls.ShowReset:
				m.err = m.ctrl.Reset(m.ctx)
			case view.Controls.ShowNext:
				_, _, m.err = m.ctrl.Next(m.ctx)
			default:
				_, m.err = m.ctrl.Check(m.ctx, m.textInput.Value())
			}
			m.textInput.SetValue("")
			return m, nil
		}
	case error:
		m.err = msg
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) updateDeck(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "right", "l", "n":
		m.deck.Next()
	case "left", "h", "p":
		m.deck.Prev()
	case " ", "enter":
		m.deck.Flip()
	case "r":
		m.deck.Reset()
	}
	return m, nil
}

func (m model) View() string {
	if m.err != nil {
		return styleError.Render("Error: " + m.err.Error())
	}
	if m.deck != nil {
		return m.viewDeck()
	}
	return m.viewQuiz()
}

func renderBar(percent float64, width int) string {
	green := int(percent / 100 * float64(width))
	if green > width {
		green = width
	}
	return strings.Repeat(styleBarGreen.String(), green) +
		strings.Repeat(styleBarGrey.String(), width-green)
}

func (m model) viewQuiz() string {
	var b strings.Builder
	view := m.ctrl.View()

	b.WriteString(styleHeader.Render(fmt.Sprintf("vocabdrill · %s · %s", m.title, view.Mode)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Progress  %s %s\n", renderBar(view.CompletionPercent, barWidth), view.CompletionText)
	fmt.Fprintf(&b, "Accuracy  %s %s\n\n", renderBar(view.AccuracyPercent, barWidth), view.AccuracyText)

	if view.Finished {
		b.WriteString(styleCorrect.Render("🎉 All questions answered!"))
		b.WriteString("\n\n")
		b.WriteString(styleSubtle.Render("Press Enter to start over, Esc to quit."))
		return b.String()
	}

	if q := view.Question; q != nil {
		fmt.Fprintf(&b, "Question %d\n", view.QuestionNumber+1)
		if q.Context != "" {
			b.WriteString(q.Context)
			b.WriteRune('\n')
		}
		b.WriteString(q.Prompt)
		b.WriteRune('\n')
		if q.Hint != "" {
			b.WriteString(styleHint.Render(q.Hint))
			b.WriteString(styleSubtle.Render("  (" + q.HintLabel + ")"))
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	if res := view.Result; res != nil {
		if res.Correct {
			b.WriteString(styleCorrect.Render("Correct!"))
		} else {
			b.WriteString(styleIncorrect.Render("Not quite. Answer: " + res.Canonical))
		}
		b.WriteString("\n\n")
		b.WriteString(styleSubtle.Render("Press Enter for the next question."))
	} else {
		b.WriteString(m.textInput.View())
		b.WriteString("\n\n")
		help := "Enter to check · Ctrl+R to reset · Esc to quit"
		if view.Mode == quiz.ModeWord.String() {
			help = "Enter to check · Tab to change hint · Ctrl+R to reset · Esc to quit"
		}
		b.WriteString(styleSubtle.Render(help))
	}
	return b.String()
}

func (m model) viewDeck() string {
	var b strings.Builder
	view := m.deck.View()

	b.WriteString(styleHeader.Render(fmt.Sprintf("vocabdrill · %s · cards", m.title)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d / %d\n\n", renderBar(view.CompletionPercent, barWidth), view.Number, view.Total)

	face := view.Front
	if view.Flipped {
		face = view.Back
	}
	b.WriteString(styleCard.Render(face))
	b.WriteString("\n\n")

	if view.ShowFlipHint {
		b.WriteString(styleHint.Render("Press Space to flip the card"))
		b.WriteRune('\n')
	}
	var nav []string
	if view.PrevEnabled {
		nav = append(nav, "← previous")
	}
	if view.NextEnabled {
		nav = append(nav, "→ next")
	}
	nav = append(nav, "r restart", "Esc quit")
	b.WriteString(styleSubtle.Render(strings.Join(nav, " · ")))
	return b.String()
}
