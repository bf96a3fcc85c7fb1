package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	badgeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	messageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	formLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Width(14)
)

// View renders the current view state
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Claude Profile Manager"))
	b.WriteString("\n")

	switch m.viewState {
	case ViewAdd:
		b.WriteString(m.viewForm())
	case ViewRemove:
		b.WriteString(m.viewList())
		b.WriteString(confirmStyle.Render(
			fmt.Sprintf("\nRemove profile '%s'? [y/N] ", m.profiles[m.cursor].Name)))
	case ViewClear:
		b.WriteString(m.viewList())
		b.WriteString(confirmStyle.Render("\nUnset all managed environment variables? [y/N] "))
	default:
		b.WriteString(m.viewList())
		b.WriteString(helpBarStyle.Render(
			"enter switch · a add · o import oauth · r remove · c clear · q quit"))
	}

	if m.errorMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errorMsg))
	}
	if m.message != "" {
		b.WriteString("\n" + messageStyle.Render(m.message))
	}
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder

	if m.active != "" {
		b.WriteString(fmt.Sprintf("Active: %s\n\n", activeStyle.Render(m.active)))
	} else {
		b.WriteString(dimStyle.Render("Active: (none)") + "\n\n")
	}

	if len(m.profiles) == 0 {
		b.WriteString(dimStyle.Render("  (no profiles configured)") + "\n")
		return b.String()
	}

	for i, p := range m.profiles {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		badge := badgeStyle.Render("[API]")
		if p.IsOAuth() {
			badge = badgeStyle.Render("[OAuth]")
		}

		line := fmt.Sprintf("%s%d. %-20s %-8s %s", cursor, i+1, p.Name, badge, p.Description)
		if p.Name == m.active {
			line += activeStyle.Render("  [ACTIVE]")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder
	if m.formOAuth {
		b.WriteString("Import OAuth profile\n\n")
		if info := m.manager.ExtractOAuthInfo(); info != nil {
			b.WriteString(dimStyle.Render("  Account: "+info.EmailAddress) + "\n")
			if info.OrganizationName != "" {
				b.WriteString(dimStyle.Render("  Organization: "+info.OrganizationName) + "\n")
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("Add new profile\n\n")
	}

	labels := []string{"Name", "Description", "API Key", "Base URL", "Model"}
	for i, input := range m.formInputs {
		if !m.formVisible(i) {
			continue
		}
		b.WriteString(formLabelStyle.Render(labels[i]) + input.View() + "\n")
	}

	b.WriteString(helpBarStyle.Render("enter next/submit · tab next field · esc cancel"))
	return b.String()
}
