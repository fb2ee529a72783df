// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Murray Kopit

package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/murr2k/raspberry-pi-pico/pkg/bridge"
	"github.com/murr2k/raspberry-pi-pico/pkg/telemetry"
)

const monitorHistoryRows = 10

var monitorBroker string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard for published telemetry frames",
	Long: `Subscribe to the telemetry topic on the MQTT broker and show the
incoming frames from every publishing device in a live table.

Broker settings come from the environment or a .env file (PICO_MQTT_*);
--broker overrides the broker URL. Press q or Ctrl+C to quit.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVar(&monitorBroker, "broker", "", "MQTT broker URL (overrides PICO_MQTT_BROKER)")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg := bridge.LoadConfig()
	if monitorBroker != "" {
		cfg.Broker = monitorBroker
	}

	m := newMonitorModel(cfg.Broker)
	p := tea.NewProgram(m, tea.WithAltScreen())

	sub, err := bridge.NewSubscriber(cfg, func(f *telemetry.Frame) {
		p.Send(frameMsg{frame: f})
	})
	if err != nil {
		return err
	}
	defer sub.Close()

	m.topic = sub.Topic()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("monitor UI failed: %w", err)
	}
	return nil
}

// frameMsg carries one decoded telemetry frame into the UI loop.
type frameMsg struct {
	frame *telemetry.Frame
}

var (
	monitorTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	monitorInfoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	monitorValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))

	monitorTableStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))
)

type monitorModel struct {
	broker string
	topic  string
	table  table.Model
	last   *telemetry.Frame
	count  int
}

func newMonitorModel(broker string) *monitorModel {
	columns := []table.Column{
		{Title: "Device", Width: 18},
		{Title: "#", Width: 6},
		{Title: "Temp", Width: 9},
		{Title: "Avg", Width: 9},
		{Title: "Min", Width: 9},
		{Title: "Max", Width: 9},
		{Title: "Time", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(monitorHistoryRows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return &monitorModel{broker: broker, table: t}
}

func (m *monitorModel) Init() tea.Cmd {
	return nil
}

func (m *monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case frameMsg:
		m.last = msg.frame
		m.count++
		m.pushRow(msg.frame)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// pushRow prepends the frame, keeping the newest rows on top.
func (m *monitorModel) pushRow(f *telemetry.Frame) {
	row := table.Row{
		f.Device,
		fmt.Sprintf("%d", f.Number),
		fmt.Sprintf("%.2f C", f.Value),
		fmt.Sprintf("%.2f C", f.Average),
		fmt.Sprintf("%.2f C", f.Min),
		fmt.Sprintf("%.2f C", f.Max),
		f.Taken().Format("15:04:05"),
	}

	rows := append([]table.Row{row}, m.table.Rows()...)
	if len(rows) > monitorHistoryRows {
		rows = rows[:monitorHistoryRows]
	}
	m.table.SetRows(rows)
}

func (m *monitorModel) View() string {
	header := monitorTitleStyle.Render("Pico Telemetry Monitor")
	info := monitorInfoStyle.Render(fmt.Sprintf("Broker: %s   Topic: %s   Frames: %d",
		m.broker, m.topic, m.count))

	current := "Waiting for telemetry frames..."
	if m.last != nil {
		current = fmt.Sprintf("%s  %s  (avg %.2f C over %d readings)",
			m.last.Device,
			monitorValueStyle.Render(fmt.Sprintf("%.2f C", m.last.Value)),
			m.last.Average, m.last.Number)
	}

	footer := monitorInfoStyle.Render("q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		info,
		"",
		current,
		"",
		monitorTableStyle.Render(m.table.View()),
		footer,
	) + "\n"
}
