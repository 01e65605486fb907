package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/kkapil94/outflo-assignment/internal/client"
	"github.com/kkapil94/outflo-assignment/internal/models"
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	messageStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
)

// toastNotifier prints one styled line per notification
type toastNotifier struct {
	w io.Writer
}

func newToastNotifier(w io.Writer) toastNotifier {
	return toastNotifier{w: w}
}

func (t toastNotifier) Notify(level client.Level, message string) {
	if level == client.LevelError {
		fmt.Fprintln(t.w, errorStyle.Render("✗ "+message))
		return
	}
	fmt.Fprintln(t.w, successStyle.Render("✓ "+message))
}

type multiNotifier []client.Notifier

func (m multiNotifier) Notify(level client.Level, message string) {
	for _, n := range m {
		n.Notify(level, message)
	}
}

func renderStatus(s models.CampaignStatus) string {
	switch s {
	case models.CampaignStatusActive:
		return activeStyle.Render(string(s))
	case models.CampaignStatusInactive:
		return inactiveStyle.Render(string(s))
	default:
		return mutedStyle.Render(string(s))
	}
}

func printCampaign(w io.Writer, c *models.Campaign) {
	fmt.Fprintf(w, "%s  %s  %s\n", titleStyle.Render(c.Name), renderStatus(c.Status), mutedStyle.Render(c.ID.Hex()))
	fmt.Fprintf(w, "  %s\n", c.Description)
	for _, lead := range c.Leads {
		fmt.Fprintf(w, "  lead    %s\n", lead)
	}
	for _, account := range c.AccountIDs {
		fmt.Fprintf(w, "  account %s\n", account)
	}
}
