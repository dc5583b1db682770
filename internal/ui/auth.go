package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/view"
)

type authTab int

const (
	tabLogin authTab = iota
	tabSignup
)

// authForm is the login and signup form.
type authForm struct {
	tab      authTab
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
}

func newAuthForm() authForm {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.Prompt = ""
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = ""
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return authForm{name: name, email: email, password: password}
}

func (f *authForm) fields() []*textinput.Model {
	if f.tab == tabSignup {
		return []*textinput.Model{&f.name, &f.email, &f.password}
	}
	return []*textinput.Model{&f.email, &f.password}
}

func (f authForm) labels() []string {
	if f.tab == tabSignup {
		return []string{"Name", "Email", "Password"}
	}
	return []string{"Email", "Password"}
}

func (f authForm) title() string {
	if f.tab == tabSignup {
		return "Create Account"
	}
	return "Login"
}

// reset clears the form and focuses the first field of tab.
func (f *authForm) reset(tab authTab) tea.Cmd {
	f.tab = tab
	f.name.Reset()
	f.email.Reset()
	f.password.Reset()
	f.focus = 0
	return f.focusCurrent()
}

func (f *authForm) focusCurrent() tea.Cmd {
	f.blur()
	fields := f.fields()
	f.focus = clampIndex(f.focus, len(fields))
	return fields[f.focus].Focus()
}

func (f *authForm) blur() {
	f.name.Blur()
	f.email.Blur()
	f.password.Blur()
}

func (f *authForm) moveFocus(delta int) tea.Cmd {
	n := len(f.fields())
	f.focus = (f.focus + delta + n) % n
	return f.focusCurrent()
}

// switchTab flips between login and signup, keeping typed values.
func (f *authForm) switchTab() tea.Cmd {
	if f.tab == tabLogin {
		f.tab = tabSignup
	} else {
		f.tab = tabLogin
	}
	f.focus = 0
	return f.focusCurrent()
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	fields := f.fields()
	if f.focus < 0 || f.focus >= len(fields) {
		return nil
	}
	var cmd tea.Cmd
	*fields[f.focus], cmd = fields[f.focus].Update(msg)
	return cmd
}

// openAccount shows the login form, or the account menu with a session.
func (m *Model) openAccount() tea.Cmd {
	return m.open(surfaceAuth)
}

func (m *Model) submitAuth() tea.Cmd {
	f := &m.auth
	var ok bool
	if f.tab == tabSignup {
		ok = m.store.Signup(f.name.Value(), f.email.Value(), f.password.Value())
	} else {
		ok = m.store.Login(f.email.Value(), f.password.Value())
	}
	m.mutated()
	if !ok {
		return nil
	}
	f.password.Reset()
	m.closeAll()
	return nil
}

func (m *Model) logout() tea.Cmd {
	if !m.snapshot.LoggedIn() {
		return nil
	}
	m.store.Logout()
	m.mutated()
	m.lastOrder = nil
	if m.surface == surfaceAuth {
		m.closeAll()
	}
	return nil
}

func (m Model) renderAuth() string {
	if m.snapshot.LoggedIn() {
		return m.renderAccount()
	}
	styles := m.theme.Styles()
	f := m.auth

	var b strings.Builder
	login, signup := styles.MutedText.Render(" Login "), styles.MutedText.Render(" Sign up ")
	if f.tab == tabLogin {
		login = styles.Selected.Bold(true).Render(" Login ")
	} else {
		signup = styles.Selected.Bold(true).Render(" Sign up ")
	}
	b.WriteString(login + "  " + signup)
	b.WriteString("\n\n")

	fields := (&f).fields()
	for i, label := range f.labels() {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText
		}
		b.WriteString(labelStyle.Render(padRight(label, 10)))
		b.WriteString(fields[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("tab next field  ctrl+n login/sign up  enter submit  esc close"))
	return b.String()
}

// renderAccount renders the user menu for a logged-in session.
func (m Model) renderAccount() string {
	styles := m.theme.Styles()
	menu := view.UserMenu(m.snapshot)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(menu.Label))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(m.snapshot.User.Email))
	b.WriteString("\n\n")

	for _, item := range menu.Items {
		switch item {
		case view.MenuProfile:
			b.WriteString(styles.AccentText.Render(item))
			b.WriteString("\n  ")
			b.WriteString(styles.Text.Render(fmt.Sprintf("%s <%s>", m.snapshot.User.Name, m.snapshot.User.Email)))
		case view.MenuOrders:
			b.WriteString(styles.AccentText.Render(item))
			b.WriteString("\n  ")
			if m.lastOrder == nil {
				b.WriteString(styles.FaintText.Render("No orders this session"))
			} else {
				o := m.lastOrder
				b.WriteString(styles.Text.Render(fmt.Sprintf("#%s  %s  %s",
					shortID(o.ID), o.Quote.Total.String(), o.Status)))
			}
		case view.MenuLogout:
			b.WriteString(styles.AccentText.Render(item))
			b.WriteString(styles.FaintText.Render("  (L)"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("L logout  esc close"))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m Model) authTitle() string {
	if m.snapshot.LoggedIn() {
		return "Account"
	}
	return m.auth.title()
}
