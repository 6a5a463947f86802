// Package tui renders the interactive device listing for the list command.
// It exists so users can find the device ID to pass to the capture flag
// without leaving the terminal.
package tui

import (
	"fmt"
	"strings"

	"cascade/internal/pipeline"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F5FD7")).
			Bold(true)

	captureTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065"))
)

type devicesMsg struct {
	devices []pipeline.Device
}

type errMsg struct {
	err error
}

// deviceListModel is the Bubble Tea model for the device listing.
type deviceListModel struct {
	devices  []pipeline.Device
	selected int
	viewport viewport.Model
	ready    bool
	err      error
}

func newDeviceListModel() deviceListModel {
	return deviceListModel{}
}

func (m deviceListModel) Init() tea.Cmd {
	return fetchDevices
}

func fetchDevices() tea.Msg {
	devices, err := pipeline.Devices()
	if err != nil {
		return errMsg{err}
	}
	return devicesMsg{devices}
}

func (m deviceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
			if len(m.devices) > 0 {
				m.viewport.SetContent(m.renderDevices())
			}
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}

	case devicesMsg:
		m.devices = msg.devices
		if m.ready {
			m.viewport.SetContent(m.renderDevices())
		}

	case errMsg:
		m.err = msg.err

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"))):
			return m, tea.Quit

		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.selected > 0 {
				m.selected--
				m.viewport.SetContent(m.renderDevices())
			}

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.selected < len(m.devices)-1 {
				m.selected++
				m.viewport.SetContent(m.renderDevices())
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m deviceListModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to exit.", m.err)
	}

	title := titleStyle.Render("Audio Devices")
	help := helpStyle.Render("↑/↓: Navigate • q: Quit")
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.viewport.View(), help)
}

// renderDevices formats the list. Devices that cannot capture are shown
// but not tagged, so the IDs stay aligned with the capture flag.
func (m deviceListModel) renderDevices() string {
	if len(m.devices) == 0 {
		return "No audio devices found."
	}

	var sb strings.Builder
	for i, device := range m.devices {
		var tag string
		if device.MaxInputChannels > 0 {
			tag = captureTagStyle.Render(" [capture]")
		}

		entry := fmt.Sprintf("[%d] %s%s\n", device.ID, device.Name, tag)
		entry += fmt.Sprintf("    in: %d  out: %d  rate: %.0f Hz\n",
			device.MaxInputChannels, device.MaxOutputChannels, device.DefaultSampleRate)

		if i == m.selected {
			entry = selectedStyle.Render(entry)
		}

		sb.WriteString(entry)
		sb.WriteString("\n")
	}

	return sb.String()
}

// ListDevices launches the interactive device listing and blocks until the
// user quits it.
func ListDevices() error {
	p := tea.NewProgram(
		newDeviceListModel(),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
