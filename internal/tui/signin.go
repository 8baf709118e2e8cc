// ABOUTME: SignInModel is the login form with username and password inputs
// ABOUTME: Submitting hands the raw credentials to the root, which runs auth.Flow

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SignInSubmitMsg carries the entered credentials.
type SignInSubmitMsg struct {
	Username string
	Password string
}

// SignInModel is the sign-in page.
type SignInModel struct {
	inputs      [2]textinput.Model
	focus       int
	busy        bool
	canRegister bool
	tr          Translator
	width       int
}

// NewSignInModel builds the form, prefilled with stored credentials.
func NewSignInModel(tr Translator, username, password string) SignInModel {
	user := textinput.New()
	user.Prompt = ""
	user.Placeholder = tr.T("enter-your-name")
	user.SetValue(username)
	user.Focus()

	pass := textinput.New()
	pass.Prompt = ""
	pass.Placeholder = tr.T("enter-your-password")
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.SetValue(password)

	return SignInModel{inputs: [2]textinput.Model{user, pass}, tr: tr, width: 48}
}

func (m SignInModel) Init() tea.Cmd { return textinput.Blink }

func (m SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return m.setFocus((m.focus + 1) % len(m.inputs))
		case "shift+tab", "up":
			return m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		case "enter":
			if m.focus == 0 {
				return m.setFocus(1)
			}
			if m.busy {
				return m, nil
			}
			m.busy = true
			u, p := m.inputs[0].Value(), m.inputs[1].Value()
			return m, func() tea.Msg { return SignInSubmitMsg{Username: u, Password: p} }
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m SignInModel) setFocus(i int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m, m.inputs[i].Focus()
}

// Done clears the busy flag after a failed attempt.
func (m SignInModel) Done() SignInModel {
	m.busy = false
	return m
}

// SetCanRegister shows or hides the sign-up hint.
func (m SignInModel) SetCanRegister(v bool) SignInModel {
	m.canRegister = v
	return m
}

// Values returns the raw field contents.
func (m SignInModel) Values() (string, string) {
	return m.inputs[0].Value(), m.inputs[1].Value()
}

func (m SignInModel) View() string {
	s := Styles()
	field := func(i int, label string) string {
		box := s.Box
		if i == m.focus {
			box = s.FocusBox
		}
		return s.Muted.Render(label) + "\n" + box.Width(m.width).Render(m.inputs[i].View())
	}
	parts := []string{
		s.Title.Render(m.tr.T("sign-in")),
		"",
		field(0, m.tr.T("username")),
		field(1, m.tr.T("password")),
		"",
	}
	if m.busy {
		parts = append(parts, s.Dim.Render(m.tr.T("loading")))
	} else {
		parts = append(parts, s.Accent.Render("enter ")+s.Dim.Render(m.tr.T("sign-in")))
	}
	if m.canRegister {
		parts = append(parts, s.Dim.Render(m.tr.T("need-to-create-an-account")))
	}
	return strings.Join(parts, "\n")
}
