package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/state"
	"github.com/jwebster45206/the-deep/pkg/storage"
)

const PlaceHolderText = "What do you do? (type 'help' for commands)"

type inputMode int

const (
	modeBusy     inputMode = iota // game loop is running a turn
	modeCommand                   // waiting for a command
	modeChoice                    // waiting for a choice from the modal
	modeFinished                  // game loop has returned
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	session      *session
	chatViewport viewport.Model
	metaViewport viewport.Model
	input        textinput.Model
	ready        bool
	width        int
	height       int

	transcript []line
	meta       string
	mode       inputMode

	// Choice modal state
	choicePrompt   string
	choiceOptions  []string
	selectedChoice int
}

// line is one entry in the transcript: either a game event or an echo of the player's input.
type line struct {
	kind   event.Kind
	text   string
	player bool
	banner bool
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("120")). // light green
			Bold(true)

	combatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // orange

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")) // purple

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("24")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("39")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(gs *state.GameState, store storage.Storage) ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = PlaceHolderText
	ti.Focus()
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 200
	ti.Width = 50

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		session:      newSession(gs, store),
		input:        ti,
		chatViewport: chatVp,
		metaViewport: metaVp,
		mode:         modeBusy,
	}
}

// Attach gives the game loop a program to send its output to. Call before Run.
func (m ConsoleUI) Attach(p *tea.Program) {
	m.session.prog = p
}

// Wait stops the game loop if it is still parked in a prompt and returns its error.
func (m ConsoleUI) Wait() error {
	return m.session.stop()
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.session.start)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case eventsMsg:
		if msg.banner != "" {
			m.transcript = append(m.transcript, line{text: msg.banner, banner: true})
		}
		for _, e := range msg.events {
			m.transcript = append(m.transcript, line{kind: e.Kind, text: e.Text})
		}
		m.writeChatContent()
		return m, nil

	case promptMsg:
		m.mode = modeCommand
		m.meta = msg.meta
		m.writeMetaContent()
		m.input.Focus()
		return m, textinput.Blink

	case choiceMsg:
		m.mode = modeChoice
		m.choicePrompt = msg.prompt
		m.choiceOptions = msg.options
		m.selectedChoice = 0
		return m, nil

	case sessionDoneMsg:
		m.mode = modeFinished
		if msg.err != nil {
			m.transcript = append(m.transcript, line{kind: event.KindRejected, text: "Error: " + msg.err.Error()})
		}
		m.transcript = append(m.transcript, line{kind: event.KindInfo, text: "Press any key to exit."})
		m.writeChatContent()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.notify(event.KindRejected, "Save failed: "+msg.err.Error())
		} else {
			m.notify(event.KindSystem, "Game saved. Resume with: -load "+msg.id)
		}
		return m, nil
	}

	switch m.mode {
	case modeChoice:
		return m.updateChoiceModal(msg)
	case modeFinished:
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
		return m, nil
	}
	return m.updateCommand(msg)
}

func (m ConsoleUI) updateCommand(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.mode == modeCommand {
				m.submit("quit", false)
			}
			return m, nil
		case tea.KeyCtrlS:
			if m.mode != modeCommand {
				return m, nil
			}
			return m, m.session.save()
		case tea.KeyCtrlY:
			if err := clipboard.WriteAll(m.session.gs.ID.String()); err != nil {
				m.notify(event.KindRejected, "Could not copy the game ID: "+err.Error())
			} else {
				m.notify(event.KindInfo, "Game ID copied to clipboard.")
			}
			return m, nil
		case tea.KeyEnter:
			if m.mode != modeCommand {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.input.Reset()
			m.submit(input, true)
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			m.chatViewport, vpCmd = m.chatViewport.Update(msg)
			return m, vpCmd
		}
	}

	m.input, tiCmd = m.input.Update(msg)
	return m, tiCmd
}

// submit hands a line to the parked game loop.
func (m *ConsoleUI) submit(input string, echo bool) {
	if echo {
		m.transcript = append(m.transcript, line{text: input, player: true})
		m.writeChatContent()
	}
	m.mode = modeBusy
	m.session.submit(input)
}

func (m *ConsoleUI) notify(kind event.Kind, text string) {
	m.transcript = append(m.transcript, line{kind: kind, text: text})
	m.writeChatContent()
}

func (m ConsoleUI) updateChoiceModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		// force quit
		return m, tea.Quit
	case tea.KeyEsc:
		m.choose("")
		return m, nil
	case tea.KeyUp:
		if m.selectedChoice > 0 {
			m.selectedChoice--
		}
	case tea.KeyDown:
		if m.selectedChoice < len(m.choiceOptions)-1 {
			m.selectedChoice++
		}
	case tea.KeyEnter:
		if len(m.choiceOptions) > 0 {
			m.choose(m.choiceOptions[m.selectedChoice])
		}
	default:
		if picked := pickOption(key.String(), m.choiceOptions); picked != "" {
			m.choose(picked)
		}
	}
	return m, nil
}

func (m *ConsoleUI) choose(option string) {
	m.choicePrompt = ""
	m.choiceOptions = nil
	m.mode = modeBusy
	m.session.submit(option)
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.input.Width = chatWidth - 8

	m.writeChatContent()
	m.writeMetaContent()
}

// writeChatContent rebuilds the transcript for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	width := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	for _, l := range m.transcript {
		content.WriteString(formatLine(l, width))
		content.WriteString("\n\n")
	}
	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetaContent() {
	width := m.metaViewport.Width
	if width < 10 {
		width = 10
	}
	m.metaViewport.SetContent(wordwrap.String(m.meta, width))
}

func formatLine(l line, width int) string {
	if l.banner {
		return titleStyle.Render(l.text) + "\n" + separatorStyle.Render(strings.Repeat("─", width))
	}
	if l.player {
		return userStyle.Render("> ") + wordwrap.String(l.text, width-2)
	}

	text := wordwrap.String(l.text, width)
	switch l.kind {
	case event.KindNarration:
		return narratorStyle.Render(text)
	case event.KindSuccess:
		return successStyle.Render(text)
	case event.KindWarning:
		return loadingStyle.Render(text)
	case event.KindCombat:
		return combatStyle.Render(text)
	case event.KindRejected:
		return promptStyle.Render(text)
	case event.KindSystem:
		return titleStyle.Render(text)
	default:
		return text
	}
}

func (m ConsoleUI) renderChoiceModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render(m.choicePrompt))
	content.WriteString("\n\n")

	for i, option := range m.choiceOptions {
		if i == m.selectedChoice {
			content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", option)))
		} else {
			content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", option)))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Esc to cancel"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.mode == modeChoice {
		return m.renderChoiceModal()
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 0))),
			m.input.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
