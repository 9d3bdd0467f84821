package scenes

import (
	"fmt"
	"image"
	"log"
	"math/rand"

	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/game"
	"github.com/bumagh/AwesomeCat/pkg/systems"
	"github.com/bumagh/AwesomeCat/pkg/types"
	"github.com/bumagh/AwesomeCat/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 屏幕按钮文字
const (
	labelLeft     = "◀ Left"
	labelRight    = "Right ▶"
	labelFeedback = "Awesome!"
)

// 按钮布局（逻辑像素）
const (
	buttonWidth   = 120
	buttonHeight  = 44
	buttonGap     = 20
	buttonBottom  = 24
	disabledAlpha = 0.4

	// 移动端触摸按钮更大
	touchButtonWidth  = 140
	touchButtonHeight = 60
)

// buttonID 屏幕按钮
type buttonID int

const (
	buttonNone buttonID = iota
	buttonLeft
	buttonRight
	buttonFeedback
)

var (
	_ game.Scene     = (*CatScene)(nil)
	_ game.Resizable = (*CatScene)(nil)
)

// CatScene 真棒猫的唯一场景
//
// 负责组装状态和各系统，并把键盘、鼠标、触摸输入翻译成剧情操作。
// 剧情本身的阶段守卫在 SequencerSystem 中。
type CatScene struct {
	cfg *config.SceneConfig

	state     *game.SceneState
	reset     *systems.ObjectResetSystem
	particles *systems.ParticleSystem
	sequencer *systems.SequencerSystem
	render    *systems.RenderSystem

	// 按钮区域，Resize 时重新计算
	leftRect     image.Rectangle
	rightRect    image.Rectangle
	feedbackRect image.Rectangle

	// debug F3 切换的调试信息
	debug bool
}

// NewCatScene 创建场景并完成首次重置
//
// 参数：
//   - cfg: 已解析的场景配置
//   - sounds: 提示音播放器，可为 nil（静音）
//   - seed: 随机种子，决定奖品摆放和猫的目标方向
func NewCatScene(cfg *config.SceneConfig, sounds systems.SoundPlayer, seed int64) (*CatScene, error) {
	rng := rand.New(rand.NewSource(seed))

	state := game.NewSceneState(config.GameWindowWidth, config.GameWindowHeight)
	reset := systems.NewObjectResetSystem(state, cfg, rng)
	particles := systems.NewParticleSystem(state.Particles, cfg.Particles, rng)
	sequencer := systems.NewSequencerSystem(state, cfg, particles, reset, rng, sounds)

	render, err := systems.NewRenderSystem(state, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create render system: %w", err)
	}

	s := &CatScene{
		cfg:       cfg,
		state:     state,
		reset:     reset,
		particles: particles,
		sequencer: sequencer,
		render:    render,
	}

	state.OnStateChange(func(from, to types.GameState) {
		log.Printf("[CatScene] %s → %s", from, to)
	})

	s.layoutButtons()
	reset.Reset()
	log.Printf("[CatScene] 场景就绪: seed=%d, policy=%s, rule=%s", seed, cfg.Policy, cfg.Rule)
	return s, nil
}

// Update 处理输入，然后推进时间轴和粒子
func (s *CatScene) Update(deltaTime float64) {
	s.handleKeys()
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		s.handlePointer(x, y)
	}
	s.step(deltaTime)
}

// step 推进时间轴和粒子，不读取输入
func (s *CatScene) step(deltaTime float64) {
	s.sequencer.Update(deltaTime)
	s.particles.Update()
}

// Draw 绘制场景和屏幕按钮
func (s *CatScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen)
	s.drawButtons(screen)
	if s.debug {
		ebitenutil.DebugPrintAt(screen, s.debugText(), 8, 8)
	}
}

// Resize 布局尺寸变化后重建场景
// 旧布局下的粒子一并清除
func (s *CatScene) Resize(width, height int) {
	s.state.SetBounds(width, height)
	s.layoutButtons()
	s.reset.Reset()
	s.particles.Clear()
}

// handleKeys 键盘快捷键
func (s *CatScene) handleKeys() {
	switch {
	case utils.IsAnyKeyJustPressed(ebiten.KeyArrowLeft, ebiten.KeyA):
		s.sequencer.ChooseSide(types.SideLeft)
	case utils.IsAnyKeyJustPressed(ebiten.KeyArrowRight, ebiten.KeyD):
		s.sequencer.ChooseSide(types.SideRight)
	case utils.IsAnyKeyJustPressed(ebiten.KeyF, ebiten.KeySpace):
		s.giveFeedback()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		s.sequencer.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		s.debug = !s.debug
	}
}

// debugText 调试信息：阶段、帧率、粒子和时间轴数量、本局判定
func (s *CatScene) debugText() string {
	sess := s.sequencer.Session()
	return fmt.Sprintf("state: %s\nTPS: %.1f  FPS: %.1f\nparticles: %d  timelines: %d\nround %d: %s → %s, success=%v",
		s.state.GameState(),
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		s.particles.Count(), s.sequencer.ActiveTimelines(),
		s.sequencer.Rounds(), sess.Choice, sess.TargetDir, sess.Success)
}

// handlePointer 处理一次点击或触摸
// 返回是否触发了操作
func (s *CatScene) handlePointer(x, y int) bool {
	// 结束画面上任意位置点击都重新开始
	if s.state.GameState() == types.GameStateEnded {
		return s.sequencer.Restart()
	}

	switch s.hitTest(x, y) {
	case buttonLeft:
		return s.sequencer.ChooseSide(types.SideLeft)
	case buttonRight:
		return s.sequencer.ChooseSide(types.SideRight)
	case buttonFeedback:
		return s.giveFeedback()
	}
	return false
}

// giveFeedback "真棒"按钮只有显示时才可用
func (s *CatScene) giveFeedback() bool {
	if !s.state.Feedback.Visible {
		return false
	}
	return s.sequencer.GiveFeedback()
}

// hitTest 返回点击位置上的按钮
func (s *CatScene) hitTest(x, y int) buttonID {
	p := image.Pt(x, y)
	switch {
	case p.In(s.leftRect):
		return buttonLeft
	case p.In(s.rightRect):
		return buttonRight
	case s.state.Feedback.Visible && p.In(s.feedbackRect):
		return buttonFeedback
	}
	return buttonNone
}

// layoutButtons 底部居中排列：左、真棒、右
func (s *CatScene) layoutButtons() {
	w, h := buttonWidth, buttonHeight
	if utils.IsMobile() {
		w, h = touchButtonWidth, touchButtonHeight
	}

	b := s.state.Bounds
	cx := int(b.CenterX)
	y := int(b.Height) - buttonBottom - h

	feedbackX := cx - w/2
	s.feedbackRect = image.Rect(feedbackX, y, feedbackX+w, y+h)

	leftX := feedbackX - buttonGap - w
	s.leftRect = image.Rect(leftX, y, leftX+w, y+h)

	rightX := feedbackX + w + buttonGap
	s.rightRect = image.Rect(rightX, y, rightX+w, y+h)
}

// drawButtons 结束画面上不显示按钮
func (s *CatScene) drawButtons(screen *ebiten.Image) {
	gs := s.state.GameState()
	if gs == types.GameStateEnded {
		return
	}

	alpha := 1.0
	if gs != types.GameStateIdle {
		alpha = disabledAlpha
	}
	colors := s.cfg.Colors
	s.render.DrawButton(screen, s.leftRect, labelLeft, colors.Radish, alpha, 0)
	s.render.DrawButton(screen, s.rightRect, labelRight, colors.Tissue, alpha, 0)

	fb := s.state.Feedback
	if fb.Visible {
		s.render.DrawButton(screen, s.feedbackRect, labelFeedback, colors.Awesome, fb.Alpha, fb.OffsetY)
	}
}

