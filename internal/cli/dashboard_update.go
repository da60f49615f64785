package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngthgila/Taxi/internal/view"
)

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case recordsMsg:
		before := len(m.state.Records)
		m.state = view.Reduce(m.state, view.RecordsLoaded{Records: msg.records})
		if before != len(msg.records) {
			m.footerMsg = fmt.Sprintf("ledger updated (%d records)", len(msg.records))
		}
	case watchErrMsg:
		m.footerMsg = "live updates unavailable: " + msg.err.Error()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l":
			m.state = view.Reduce(m.state, view.NextRange{})
			m.footerMsg = ""
		case "left", "h":
			m.state = view.Reduce(m.state, view.PrevRange{})
			m.footerMsg = ""
		case "home", "0":
			m.state = view.Reduce(m.state, view.SelectRange{})
			m.footerMsg = ""
		}
	}
	return m, nil
}
