package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg reports that done of total points have finished.
type ProgressMsg struct {
	Done, Total int
}

// FinishedMsg ends the program. Err is the error of the tracked work.
type FinishedMsg struct {
	Err error
}

type progressModel struct {
	title       string
	done, total int
	start       time.Time
	finished    bool
	interrupted bool
	err         error
	cancel      func()
}

func newProgressModel(title string, cancel func()) progressModel {
	return progressModel{title: title, start: time.Now(), cancel: cancel}
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.done, m.total = msg.Done, msg.Total
	case FinishedMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.interrupted = true
			if m.cancel != nil {
				m.cancel()
			}
		}
	}
	return m, nil
}

func (m progressModel) fraction() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m progressModel) View() string {
	var sb strings.Builder
	sb.WriteString(Title.Render(m.title))
	sb.WriteString("\n\n")
	sb.WriteString(ProgressBar(m.fraction(), 50))
	fmt.Fprintf(&sb, " %d/%d", m.done, m.total)
	sb.WriteString("\n")
	sb.WriteString(Subtle.Render(fmt.Sprintf("elapsed %s", time.Since(m.start).Round(time.Millisecond))))

	switch {
	case m.finished && m.err != nil:
		sb.WriteString("\n" + ErrorText.Render(m.err.Error()))
	case m.interrupted:
		sb.WriteString("\n" + Subtle.Render("stopping…"))
	case !m.finished:
		sb.WriteString("\n" + Subtle.Render("q to cancel"))
	}
	sb.WriteString("\n")
	return sb.String()
}

// RunProgress shows a progress bar while work runs. work receives a
// callback to report progress and should return when finished or when
// cancel stops it; its error is returned.
func RunProgress(title string, cancel func(), work func(progress func(done, total int)) error) error {
	p := tea.NewProgram(newProgressModel(title, cancel))

	errc := make(chan error, 1)
	go func() {
		err := work(func(done, total int) {
			p.Send(ProgressMsg{Done: done, Total: total})
		})
		errc <- err
		p.Send(FinishedMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		if cancel != nil {
			cancel()
		}
		<-errc
		return err
	}
	return <-errc
}
