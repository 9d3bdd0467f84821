package scenes

import (
	"strings"
	"testing"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/types"
)

const testFrame = 1.0 / 60.0

func newTestCatScene(t *testing.T, seed int64) *CatScene {
	t.Helper()
	t.Setenv("AWESOMECAT_MOBILE_EMULATE", "")
	s, err := NewCatScene(config.DefaultSceneConfig(), nil, seed)
	if err != nil {
		t.Fatalf("NewCatScene() error: %v", err)
	}
	return s
}

// runUntil 推进直到进入目标阶段
func runUntil(t *testing.T, s *CatScene, target types.GameState, maxSeconds float64) {
	t.Helper()
	for elapsed := 0.0; elapsed < maxSeconds; elapsed += testFrame {
		if s.state.GameState() == target {
			return
		}
		s.step(testFrame)
	}
	if s.state.GameState() != target {
		t.Fatalf("did not reach %s within %.1fs (stuck in %s)", target, maxSeconds, s.state.GameState())
	}
}

func TestButtonLayout(t *testing.T) {
	s := newTestCatScene(t, 1)

	// 800x600：按钮底边距 24，高 44
	tests := []struct {
		name   string
		x, y   int
		hidden buttonID
		shown  buttonID
	}{
		{"left", 260, 550, buttonLeft, buttonLeft},
		{"right", 540, 550, buttonRight, buttonRight},
		{"feedback", 400, 550, buttonNone, buttonFeedback},
		{"gap", 330, 550, buttonNone, buttonNone},
		{"above", 260, 500, buttonNone, buttonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.state.Feedback.Visible = false
			if got := s.hitTest(tt.x, tt.y); got != tt.hidden {
				t.Errorf("hitTest(%d,%d) with feedback hidden = %d, want %d", tt.x, tt.y, got, tt.hidden)
			}
			s.state.Feedback.Visible = true
			if got := s.hitTest(tt.x, tt.y); got != tt.shown {
				t.Errorf("hitTest(%d,%d) with feedback shown = %d, want %d", tt.x, tt.y, got, tt.shown)
			}
		})
	}
}

func TestTouchButtonLayout(t *testing.T) {
	t.Setenv("AWESOMECAT_MOBILE_EMULATE", "1")
	s, err := NewCatScene(config.DefaultSceneConfig(), nil, 1)
	if err != nil {
		t.Fatalf("NewCatScene() error: %v", err)
	}

	if got := s.feedbackRect.Dx(); got != touchButtonWidth {
		t.Errorf("touch button width = %d, want %d", got, touchButtonWidth)
	}
	if got := s.feedbackRect.Min.Y; got != 600-buttonBottom-touchButtonHeight {
		t.Errorf("touch button y = %d, want %d", got, 600-buttonBottom-touchButtonHeight)
	}
	if s.hitTest(s.leftRect.Min.X+1, s.leftRect.Min.Y+1) != buttonLeft {
		t.Error("left touch button not hit-testable")
	}
}

func TestPointerChoosesSide(t *testing.T) {
	s := newTestCatScene(t, 2)

	if !s.handlePointer(540, 550) {
		t.Fatal("click on right button was ignored in IDLE")
	}
	if s.state.GameState() != types.GameStateAction {
		t.Fatalf("state = %s, want ACTION", s.state.GameState())
	}
	if got := s.sequencer.Session().Choice; got != types.SideRight {
		t.Errorf("Session().Choice = %s, want right", got)
	}

	// 动作进行中再次点击无效
	if s.handlePointer(260, 550) {
		t.Error("second click during ACTION was accepted")
	}
	if s.sequencer.Rounds() != 1 {
		t.Errorf("Rounds() = %d, want 1", s.sequencer.Rounds())
	}
}

func TestPointerMissDoesNothing(t *testing.T) {
	s := newTestCatScene(t, 3)

	if s.handlePointer(10, 10) {
		t.Error("click outside buttons was accepted")
	}
	if s.state.GameState() != types.GameStateIdle {
		t.Errorf("state = %s, want IDLE", s.state.GameState())
	}
}

func TestFeedbackButtonNeedsReveal(t *testing.T) {
	s := newTestCatScene(t, 4)
	s.handlePointer(260, 550)
	runUntil(t, s, types.GameStateCelebrate, 5)

	s.state.Feedback.Visible = false
	if s.handlePointer(400, 550) {
		t.Error("hidden feedback button accepted a click")
	}
	if s.giveFeedback() {
		t.Error("feedback key accepted while the button is hidden")
	}

	s.state.Feedback.Visible = true
	if !s.handlePointer(400, 550) {
		t.Error("visible feedback button ignored a click in CELEBRATE")
	}
	if s.state.GameState() != types.GameStateCelebrate {
		t.Errorf("feedback changed state to %s", s.state.GameState())
	}
}

func TestClickAnywhereRestartsWhenEnded(t *testing.T) {
	s := newTestCatScene(t, 5)
	s.handlePointer(260, 550)
	runUntil(t, s, types.GameStateEnded, 15)

	fd := s.sequencer.Session().TargetDir.Opposite()
	if s.state.Path(fd)[0].Rotation == 0 {
		t.Fatal("flashback domino should be tipped in ENDED")
	}

	if !s.handlePointer(10, 10) {
		t.Fatal("click in ENDED did not restart")
	}

	// 重开后所有骨牌站立，奖品摆放重新满足一左一右
	for _, path := range [][]*components.DominoComponent{s.state.LeftPath, s.state.RightPath} {
		for i, d := range path {
			if d.Rotation != 0 {
				t.Errorf("domino %d rotation = %v after restart, want 0", i, d.Rotation)
			}
		}
	}
	p := s.state.Placement
	if !p.Valid() {
		t.Errorf("invalid placement %+v after restart", p)
	}
	colors := s.cfg.Colors
	if s.state.LeftPath[7].Color != colors.PrizeColor(p.Left) || s.state.RightPath[7].Color != colors.PrizeColor(p.Right) {
		t.Error("last domino colors do not match placement after restart")
	}
	if s.state.GameState() != types.GameStateIdle {
		t.Fatalf("state = %s, want IDLE", s.state.GameState())
	}
	if s.state.Cat.BubbleText != "Hm...?" {
		t.Errorf("BubbleText = %q, want idle bubble", s.state.Cat.BubbleText)
	}

	// 新一局可以开始
	if !s.handlePointer(540, 550) {
		t.Error("could not start a new round after restart")
	}
}

func TestResizeRebuildsScene(t *testing.T) {
	s := newTestCatScene(t, 6)
	s.particles.Spawn(100, 100)

	s.Resize(400, 300)

	if n := s.particles.Count(); n != 0 {
		t.Errorf("particles after resize = %d, want 0", n)
	}

	b := s.state.Bounds
	if b.Width != 400 || b.Height != 300 {
		t.Fatalf("Bounds = %vx%v, want 400x300", b.Width, b.Height)
	}
	if s.state.Cat.X != 200 {
		t.Errorf("Cat.X = %v, want 200", s.state.Cat.X)
	}
	if got := s.feedbackRect.Min.X; got != 140 {
		t.Errorf("feedback button x = %d, want 140", got)
	}
	if got := s.feedbackRect.Min.Y; got != 232 {
		t.Errorf("feedback button y = %d, want 232", got)
	}
	if len(s.state.LeftPath) != 8 || len(s.state.RightPath) != 8 {
		t.Errorf("paths = %d/%d dominoes, want 8/8", len(s.state.LeftPath), len(s.state.RightPath))
	}
}

func TestDebugText(t *testing.T) {
	s := newTestCatScene(t, 7)
	s.handlePointer(260, 550)

	got := s.debugText()
	for _, want := range []string{"state: ACTION", "round 1: left"} {
		if !strings.Contains(got, want) {
			t.Errorf("debugText() = %q, missing %q", got, want)
		}
	}
}
