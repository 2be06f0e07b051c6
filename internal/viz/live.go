package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SsinghBh/PINN-lab/internal/pinn"
)

// TrainEvent is one update from a training run in progress. Done is
// set on the final event, with Err carrying the failure if any.
type TrainEvent struct {
	Sample pinn.LossSample
	Done   bool
	Err    error
}

// LiveModel is a Bubble Tea model showing the loss curve of a
// training run as it happens. Events arrive on a channel fed from the
// trainer's step callback.
type LiveModel struct {
	events chan TrainEvent
	steps  int

	totals   []float64
	latest   pinn.LossSample
	start    time.Time
	finished bool
	err      error
}

func NewLiveModel(steps int, events chan TrainEvent) LiveModel {
	return LiveModel{
		events: events,
		steps:  steps,
		start:  time.Now(),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return m.wait()
}

func (m LiveModel) wait() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return TrainEvent{Done: true}
		}
		return ev
	}
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case TrainEvent:
		if msg.Done {
			m.finished = true
			m.err = msg.Err
			return m, tea.Quit
		}
		m.latest = msg.Sample
		m.totals = append(m.totals, msg.Sample.Total)
		return m, m.wait()
	}

	return m, nil
}

func (m LiveModel) View() string {
	title := TitleStyle.Render("pinn training")

	status := StatusRunning.Render("training")
	if m.finished {
		if m.err != nil {
			status = StatusFailed.Render("failed: " + m.err.Error())
		} else {
			status = StatusDone.Render("done")
		}
	}

	percent := 0.0
	if m.steps > 0 {
		percent = float64(m.latest.Step+1) / float64(m.steps)
	}
	progress := fmt.Sprintf("%s %s %d/%d",
		ProgressBar(percent, 40),
		MetricLabel.Render("step"),
		m.latest.Step, m.steps)

	elapsed := time.Since(m.start).Round(time.Second)
	metrics := lipgloss.JoinVertical(lipgloss.Left,
		metricLine("total", m.latest.Total),
		metricLine("residual", m.latest.Residual),
		metricLine("boundary", m.latest.Boundary),
		MetricLabel.Render("elapsed  ")+MetricValue.Render(elapsed.String()),
	)

	spark := Subtle.Render("loss ") + Sparkline(m.totals, 60)

	body := lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+status,
		"",
		progress,
		"",
		metrics,
		"",
		spark,
		"",
		KeyHint.Render("q to quit"),
	)

	return PanelStyle.Render(body)
}

func metricLine(name string, v float64) string {
	return MetricLabel.Render(fmt.Sprintf("%-8s ", name)) + MetricValue.Render(fmt.Sprintf("%.6e", v))
}
