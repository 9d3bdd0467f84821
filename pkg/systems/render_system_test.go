package systems

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/game"
	"github.com/bumagh/AwesomeCat/pkg/types"
)

// snapshot 渲染前后需要保持不变的状态
type snapshot struct {
	cat       components.CatComponent
	left      []components.DominoComponent
	right     []components.DominoComponent
	feedback  components.FeedbackComponent
	shake     float64
	particles int
}

func takeSnapshot(s *game.SceneState) snapshot {
	snap := snapshot{
		cat:       *s.Cat,
		feedback:  s.Feedback,
		shake:     s.ShakeX,
		particles: s.Particles.EntityCount(),
	}
	for _, d := range s.LeftPath {
		snap.left = append(snap.left, *d)
	}
	for _, d := range s.RightPath {
		snap.right = append(snap.right, *d)
	}
	return snap
}

func (a snapshot) equal(b snapshot) bool {
	if a.cat != b.cat || a.feedback != b.feedback || a.shake != b.shake || a.particles != b.particles {
		return false
	}
	if len(a.left) != len(b.left) || len(a.right) != len(b.right) {
		return false
	}
	for i := range a.left {
		if a.left[i] != b.left[i] {
			return false
		}
	}
	for i := range a.right {
		if a.right[i] != b.right[i] {
			return false
		}
	}
	return true
}

// TestRenderIsReadOnly 测试每个阶段的绘制都不修改场景状态
func TestRenderIsReadOnly(t *testing.T) {
	ts := newTestScene(t, 17, types.PolicyRandom, types.RuleSymbolic)
	rs, err := NewRenderSystem(ts.state, ts.cfg)
	if err != nil {
		t.Fatalf("NewRenderSystem() error: %v", err)
	}
	screen := ebiten.NewImage(800, 600)

	drawAndCompare := func(label string) {
		before := takeSnapshot(ts.state)
		rs.Draw(screen)
		if !before.equal(takeSnapshot(ts.state)) {
			t.Errorf("%s: Draw modified the scene state", label)
		}
	}

	drawAndCompare("IDLE")

	ts.seq.ChooseSide(types.SideLeft)
	for _, target := range []types.GameState{
		types.GameStateAction,
		types.GameStateCelebrate,
		types.GameStateFlashback,
		types.GameStateEnded,
	} {
		ts.runUntil(t, target, roundSeconds)
		// 推进几帧，让粒子、抖动和姿势处于动画中途
		for i := 0; i < 5; i++ {
			ts.step()
		}
		drawAndCompare(target.String())
	}
}

// TestRenderAllPoses 测试所有姿势和物品都能绘制
func TestRenderAllPoses(t *testing.T) {
	ts := newTestScene(t, 1, types.PolicyRandom, types.RuleSymbolic)
	rs, err := NewRenderSystem(ts.state, ts.cfg)
	if err != nil {
		t.Fatalf("NewRenderSystem() error: %v", err)
	}
	screen := ebiten.NewImage(800, 600)

	for _, pose := range []types.CatPose{types.PoseIdle, types.PosePush, types.PoseShock, types.PoseJump} {
		for _, dir := range []types.Direction{types.DirLeft, types.DirCenter, types.DirRight} {
			ts.state.Cat.Pose = pose
			ts.state.Cat.Direction = dir
			ts.state.Cat.Item = types.ItemFish
			rs.Draw(screen)
		}
	}

	rs.DrawButton(screen, image.Rect(10, 10, 110, 50), "Awesome!", color.RGBA{R: 85, G: 239, B: 196, A: 255}, 0.5, 6)
}

// TestTargetPosition 测试终点图标位置和边缘限制
func TestTargetPosition(t *testing.T) {
	b := game.NewBounds(800, 600)

	tests := []struct {
		name  string
		last  components.DominoComponent
		wantX float64
		wantY float64
	}{
		{"左侧向外", components.DominoComponent{X: 165, Y: 380}, 135, 380},
		{"右侧向外", components.DominoComponent{X: 635, Y: 380}, 665, 380},
		{"左边缘限制", components.DominoComponent{X: 20, Y: 10}, 24, 24},
		{"右边缘限制", components.DominoComponent{X: 790, Y: 590}, 776, 576},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TargetPosition(&tt.last, b, 30)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("TargetPosition() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestCatFlip 测试朝向翻转
func TestCatFlip(t *testing.T) {
	if CatFlip(types.DirRight) != -1 || CatFlip(types.DirLeft) != 1 || CatFlip(types.DirCenter) != 1 {
		t.Error("CatFlip should mirror only when facing right")
	}
}

// TestParticleVertices 测试粒子顶点的旋转和透明度
func TestParticleVertices(t *testing.T) {
	p := &components.ParticleComponent{
		Rotation: math.Pi / 2,
		Life:     0.5,
		Color:    color.RGBA{R: 255, G: 0, B: 0, A: 255},
	}
	vs := particleVertices(100, 100, 3, p)

	if len(vs) != 4 {
		t.Fatalf("len(vs) = %d, want 4", len(vs))
	}
	// 左上角 (-3,-3) 旋转 90° 后为 (3,-3)
	if math.Abs(float64(vs[0].DstX)-103) > 1e-4 || math.Abs(float64(vs[0].DstY)-97) > 1e-4 {
		t.Errorf("vs[0] = (%v, %v), want (103, 97)", vs[0].DstX, vs[0].DstY)
	}
	for i, v := range vs {
		if v.ColorA != 0.5 || v.ColorR != 1 || v.ColorG != 0 {
			t.Errorf("vs[%d] color = (%v, %v, %v, %v)", i, v.ColorR, v.ColorG, v.ColorB, v.ColorA)
		}
	}
}
