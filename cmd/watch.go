// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Openzone Developers

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/openzone-dev/zonectl/pkg/zonebus"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live status dashboard",
	Long: `Poll the controller on an interval and display the decoded status in a
terminal UI. Press q to quit.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 15*time.Second, "Poll interval")
	rootCmd.AddCommand(watchCmd)
}

// Styles
var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	watchErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	watchDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	watchInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Messages
type watchTickMsg struct{}
type watchStatusMsg struct {
	rec *zonebus.StatusRecord
	err error
}

type watchModel struct {
	session  *zonebus.Session
	interval time.Duration
	connInfo string

	zones    table.Model
	rec      *zonebus.StatusRecord
	lastErr  error
	fetched  time.Time
	fetching bool
	width    int
}

func newWatchModel(session *zonebus.Session, connInfo string) watchModel {
	columns := []table.Column{
		{Title: "Zone", Width: 4},
		{Title: "Temp", Width: 5},
		{Title: "Heat", Width: 5},
		{Title: "Cool", Width: 5},
		{Title: "Damper", Width: 6},
		{Title: "Flags", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(zonebus.MaxZones+1),
		table.WithFocused(false),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(lipgloss.Color("240"))
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)

	return watchModel{
		session:  session,
		interval: watchInterval,
		connInfo: connInfo,
		zones:    t,
		fetching: true,
	}
}

// fetchStatus runs one blocking status transaction. The session supports a
// single in-flight transaction, so the next fetch is only scheduled after
// this one finishes.
func (m watchModel) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		rec, err := m.session.FetchStatus()
		return watchStatusMsg{rec: rec, err: err}
	}
}

func watchTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return watchTickMsg{} })
}

func (m watchModel) Init() tea.Cmd {
	return m.fetchStatus()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.fetching {
				m.fetching = true
				return m, m.fetchStatus()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case watchTickMsg:
		if !m.fetching {
			m.fetching = true
			return m, m.fetchStatus()
		}

	case watchStatusMsg:
		m.fetching = false
		m.lastErr = msg.err
		if msg.err == nil {
			m.rec = msg.rec
			m.fetched = time.Now()
			m.zones.SetRows(zoneRows(msg.rec))
		}
		return m, watchTick(m.interval)
	}

	return m, nil
}

func zoneRows(rec *zonebus.StatusRecord) []table.Row {
	rows := make([]table.Row, len(rec.Zones))
	for i, z := range rec.Zones {
		flags := []string{}
		if z.Temporary {
			flags = append(flags, "temp")
		}
		if z.Hold {
			flags = append(flags, "hold")
		}
		if z.Out {
			flags = append(flags, "out")
		}
		if rec.AllMode == i+1 {
			flags = append(flags, "lead")
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d°", z.Temperature),
			fmt.Sprintf("%d°", z.HeatSetpoint),
			fmt.Sprintf("%d°", z.CoolSetpoint),
			fmt.Sprintf("%d%%", z.Damper),
			strings.Join(flags, ","),
		}
	}
	return rows
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(watchTitleStyle.Render("zonectl watch"))
	b.WriteString(watchDimStyle.Render("  " + m.connInfo))
	b.WriteString("\n\n")

	switch {
	case m.rec == nil && m.lastErr != nil:
		b.WriteString(watchErrStyle.Render(fmt.Sprintf("status query failed: %v", m.lastErr)))
		b.WriteString("\n")
	case m.rec == nil:
		b.WriteString(watchDimStyle.Render("querying controller..."))
		b.WriteString("\n")
	default:
		rec := m.rec
		b.WriteString(watchInfoStyle.Render(fmt.Sprintf(
			"Mode %s (effective %s)   Outside %d°   Air handler %d°   Humidity %d%%",
			rec.SystemMode, rec.EffectiveMode, rec.OutsideTemp, rec.AirHandlerTemp, rec.Humidity)))
		b.WriteString("\n")
		b.WriteString(watchInfoStyle.Render("Equipment: " + equipmentSummary(rec)))
		b.WriteString("\n\n")
		b.WriteString(m.zones.View())
		b.WriteString("\n")

		status := fmt.Sprintf("updated %s", m.fetched.Format("15:04:05"))
		if m.lastErr != nil {
			status = watchErrStyle.Render(fmt.Sprintf("stale since %s: %v", m.fetched.Format("15:04:05"), m.lastErr))
		}
		b.WriteString(watchDimStyle.Render(status))
		b.WriteString("\n")
	}

	b.WriteString(watchDimStyle.Render("\nq: quit  r: refresh now"))
	return b.String()
}

func equipmentSummary(rec *zonebus.StatusRecord) string {
	var on []string
	if rec.Fan {
		on = append(on, "fan")
	}
	if rec.Compressor1 {
		on = append(on, "comp1")
	}
	if rec.Compressor2 {
		on = append(on, "comp2")
	}
	if rec.AuxHeat1 {
		on = append(on, "aux1")
	}
	if rec.AuxHeat2 {
		on = append(on, "aux2")
	}
	if rec.ReversingValve {
		on = append(on, "rev")
	}
	if len(on) == 0 {
		return "idle"
	}
	return strings.Join(on, " ")
}

func runWatch(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	session := zonebus.NewSession(conn, busConfig())

	p := tea.NewProgram(newWatchModel(session, connInfo), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
