// Package drill is the vocabulary memorization game: a recognition
// round over every mission word, a production round, and repeat loops
// over whatever was missed until nothing is left.
package drill

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dr "github.com/abhisek/lingoz/internal/drill"
	"github.com/abhisek/lingoz/internal/learnflow"
	"github.com/abhisek/lingoz/internal/router"
	"github.com/abhisek/lingoz/internal/screen"
	"github.com/abhisek/lingoz/internal/ui/components"
	"github.com/abhisek/lingoz/internal/ui/layout"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

// DrillScreen drives the drill engine and renders its phases.
type DrillScreen struct {
	flow *learnflow.Service
	sess *learnflow.Session
	eng  *dr.Engine

	startBtn components.Button
	mc       components.MultiChoice
	input    components.TextInput

	applying     bool
	showFeedback bool
	lastOutcome  dr.Outcome
	lastAnswer   string

	committing bool
	committed  bool
	commitErr  string
	startErr   string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

type answeredMsg struct {
	outcome dr.Outcome
	answer  string
	err     error
}

type committedMsg struct {
	err error
}

// New builds the drill screen over the session's mission.
func New(flow *learnflow.Service, sess *learnflow.Session) *DrillScreen {
	d := &DrillScreen{
		flow:  flow,
		sess:  sess,
		input: components.NewTextInput("Type the English word...", 30),
	}

	eng, err := flow.StartDrill(sess)
	if err != nil {
		d.startErr = err.Error()
		return d
	}
	d.eng = eng
	d.startBtn = components.NewButton("START", true, d.begin)
	return d
}

func (d *DrillScreen) Init() tea.Cmd {
	return nil
}

// begin fires the start action and sets up the first recognition item.
func (d *DrillScreen) begin() tea.Cmd {
	if _, err := d.eng.Apply(context.Background(), dr.Start{}); err != nil {
		d.startErr = err.Error()
		return nil
	}
	d.prepareItem()
	return nil
}

// prepareItem rebuilds the per-item widget for the engine's current
// target. Choices stay frozen in the engine until the item is answered,
// so rebuilding here never reshuffles them.
func (d *DrillScreen) prepareItem() {
	target, ok := d.eng.Session().Target()
	if !ok {
		return
	}
	switch d.eng.Session().Phase {
	case dr.PhaseRecognition:
		opts := d.eng.Choices()
		correct := slices.Index(opts, target.Meaning)
		d.mc = components.NewMultiChoice(target.Term, opts, correct)
	case dr.PhaseProduction:
		d.input.Reset()
	}
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answeredMsg:
		d.applying = false
		if msg.err != nil {
			d.startErr = msg.err.Error()
			return d, nil
		}
		d.lastOutcome = msg.outcome
		d.lastAnswer = msg.answer
		d.showFeedback = true
		return d, nil

	case committedMsg:
		d.committing = false
		if msg.err != nil {
			d.commitErr = msg.err.Error()
		} else {
			d.committed = true
		}
		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	return d.forward(msg)
}

func (d *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if d.startErr != "" {
		return d, nil
	}

	if d.committed {
		if msg.String() == "enter" {
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return d, nil
	}

	if d.commitErr != "" {
		if msg.String() == "r" {
			return d, d.commit()
		}
		return d, nil
	}

	if d.showFeedback {
		if msg.String() == "enter" {
			return d, d.advance()
		}
		return d, nil
	}

	if d.applying || d.committing {
		return d, nil
	}

	switch d.eng.Session().Phase {
	case dr.PhaseProduction:
		if msg.String() == "enter" {
			return d, d.submitTerm()
		}
	}
	return d.forward(msg)
}

// forward routes input to the active phase widget.
func (d *DrillScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if d.eng == nil || d.showFeedback || d.applying {
		return d, nil
	}
	switch d.eng.Session().Phase {
	case dr.PhaseReady:
		var cmd tea.Cmd
		d.startBtn, cmd = d.startBtn.Update(msg)
		return d, cmd
	case dr.PhaseRecognition:
		var cmd tea.Cmd
		d.mc, cmd = d.mc.Update(msg)
		if d.mc.Submitted {
			return d, d.submitChoice()
		}
		return d, cmd
	case dr.PhaseProduction:
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DrillScreen) submitChoice() tea.Cmd {
	chosen := d.mc.Chosen()
	d.applying = true
	return func() tea.Msg {
		out, err := d.eng.Apply(context.Background(), dr.SubmitChoice{Option: chosen})
		return answeredMsg{outcome: out, answer: chosen, err: err}
	}
}

func (d *DrillScreen) submitTerm() tea.Cmd {
	answer := d.input.Value()
	d.applying = true
	return func() tea.Msg {
		out, err := d.eng.Apply(context.Background(), dr.SubmitTerm{Text: answer})
		return answeredMsg{outcome: out, answer: answer, err: err}
	}
}

// advance moves past the feedback view: next item, next round, next
// loop, or the completion commit.
func (d *DrillScreen) advance() tea.Cmd {
	d.showFeedback = false
	if d.lastOutcome.Completed {
		return d.commit()
	}
	d.prepareItem()
	return nil
}

func (d *DrillScreen) commit() tea.Cmd {
	d.committing = true
	d.commitErr = ""
	return func() tea.Msg {
		err := d.flow.CompleteDrill(context.Background(), d.sess)
		return committedMsg{err: err}
	}
}

func (d *DrillScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center)

	switch {
	case d.startErr != "":
		return center.Render(theme.Incorrect.Render(d.startErr))
	case d.committed:
		return center.Render(d.renderSummary())
	case d.committing:
		return center.Render(theme.Hint.Render("기록 저장 중..."))
	case d.commitErr != "":
		msg := theme.Incorrect.Render("저장에 실패했어요") + "\n" +
			theme.Hint.Render(d.commitErr) + "\n\n" +
			theme.Hint.Render("r 키로 다시 저장")
		return center.Render(msg)
	}

	// Feedback renders before the phase switch: the engine has already
	// advanced past a round or loop boundary by the time it shows.
	if d.showFeedback {
		return center.Render(d.renderFeedback(width))
	}

	switch d.eng.Session().Phase {
	case dr.PhaseReady:
		return center.Render(d.renderReady())
	default:
		return d.renderRound(width, height)
	}
}

func (d *DrillScreen) renderReady() string {
	st := d.eng.Session()
	intro := theme.Title.Render("단어 암기 게임") + "\n\n"
	if st.LoopCount == 1 {
		intro += theme.Body.Render(fmt.Sprintf("오늘의 단어 %d개를 전부 맞힐 때까지 반복해요.", len(st.WorkingSet)))
	} else {
		intro += theme.Body.Render(fmt.Sprintf("%d회차: 틀렸던 단어 %d개를 다시 풀어요.", st.LoopCount, len(st.WorkingSet)))
	}
	return intro + "\n\n" + d.startBtn.View()
}

func (d *DrillScreen) renderRound(width, height int) string {
	st := d.eng.Session()
	var sections []string

	var roundName string
	if st.Phase == dr.PhaseRecognition {
		roundName = "1라운드: 뜻 고르기"
	} else {
		roundName = "2라운드: 단어 쓰기"
	}
	sections = append(sections, theme.Title.Width(width).Render(roundName))

	bar := components.NewProgressBar(
		fmt.Sprintf("%d회차  %d / %d", st.LoopCount, st.Cursor+1, len(st.WorkingSet)),
		float64(st.Cursor)/float64(len(st.WorkingSet)),
		false, 40)
	sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(bar.View()))

	sections = append(sections, d.renderQuestion(width))

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(content)
}

func (d *DrillScreen) renderQuestion(width int) string {
	target, ok := d.eng.Session().Target()
	if !ok {
		return ""
	}
	box := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if d.eng.Session().Phase == dr.PhaseRecognition {
		return box.Render(theme.Card.Render(d.mc.View()))
	}

	body := theme.Gloss.Render(target.Meaning) + "\n\n" + d.input.View()
	return box.Render(theme.Card.Render(body))
}

func (d *DrillScreen) renderFeedback(width int) string {
	var body string
	if d.lastOutcome.Correct {
		body = theme.Correct.Render("정답! ✓")
	} else {
		body = theme.Incorrect.Render("오답!") + "\n" +
			theme.Body.Render("내 답: "+d.lastAnswer) + "\n" +
			theme.Body.Render(fmt.Sprintf("%s = %s", d.lastOutcome.Target.Term, d.lastOutcome.Target.Meaning)) + "\n" +
			theme.Hint.Render("틀린 단어는 회차가 끝나면 다시 나와요")
	}

	switch {
	case d.lastOutcome.Completed:
		body += "\n\n" + theme.Correct.Render("모든 단어를 맞혔어요!") +
			"\n" + theme.Hint.Render("Enter로 오늘의 미션 완료")
	case d.lastOutcome.LoopEnded:
		body += "\n\n" + theme.Body.Render(fmt.Sprintf("틀린 단어 %d개로 다음 회차를 시작해요", len(d.eng.Session().WorkingSet))) +
			"\n" + theme.Hint.Render("Enter로 계속")
	case d.lastOutcome.RoundEnded:
		body += "\n\n" + theme.Body.Render("1라운드 끝! 이제 뜻을 보고 단어를 써 보세요") +
			"\n" + theme.Hint.Render("Enter로 계속")
	default:
		body += "\n\n" + theme.Hint.Render("Enter로 다음 단어")
	}

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(body))
}

func (d *DrillScreen) renderSummary() string {
	st := d.eng.Session()
	return theme.Title.Render("오늘의 미션 완료! 🎉") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("%d회차 만에 전부 맞혔어요", st.LoopCount)) + "\n" +
		theme.Body.Render(fmt.Sprintf("★ %d일 연속 학습, 누적 %d번째 미션",
			d.sess.Profile.Streak, d.sess.Profile.TotalCompleteCount)) + "\n\n" +
		theme.Hint.Render("Enter로 홈으로")
}

func (d *DrillScreen) Title() string {
	return "Drill"
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case d.committed:
		return []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	case d.commitErr != "":
		return []layout.KeyHint{{Key: "r", Description: "Retry save"}}
	case d.showFeedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}
	if d.eng != nil {
		switch d.eng.Session().Phase {
		case dr.PhaseReady:
			return []layout.KeyHint{{Key: "Enter", Description: "Start"}}
		case dr.PhaseRecognition:
			return []layout.KeyHint{{Key: "1-4", Description: "Choose"}}
		case dr.PhaseProduction:
			return []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
		}
	}
	return nil
}
