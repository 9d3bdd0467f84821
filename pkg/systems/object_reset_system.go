package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/game"
	"github.com/bumagh/AwesomeCat/pkg/types"
)

// ObjectResetSystem 把场景恢复到一局开始前的样子
//
// 在启动、窗口尺寸变化、进入闪回和结束后重开时调用。
// 猫原地重置（时间轴持有它的字段指针），骨牌路径整体重建，
// 旧时间轴仍在推进的旧骨牌被直接丢弃。粒子不受影响。
type ObjectResetSystem struct {
	state *game.SceneState
	cfg   *config.SceneConfig
	rng   *rand.Rand
}

// NewObjectResetSystem 创建对象重置系统
func NewObjectResetSystem(state *game.SceneState, cfg *config.SceneConfig, rng *rand.Rand) *ObjectResetSystem {
	return &ObjectResetSystem{
		state: state,
		cfg:   cfg,
		rng:   rng,
	}
}

// Reset 重置猫、骨牌路径、终点摆放和"真棒"按钮
func (s *ObjectResetSystem) Reset() {
	s.resetCat()

	pathY := s.state.Cat.Y + s.cfg.Domino.PathOffsetY
	s.state.LeftPath = s.buildPath(types.DirLeft, pathY)
	s.state.RightPath = s.buildPath(types.DirRight, pathY)

	s.state.Placement = s.randomPlacement()
	s.applyPlacement()

	s.state.Feedback.Visible = false
	s.state.Feedback.Alpha = 0
	s.state.Feedback.OffsetY = 0
	s.state.ShakeX = 0

	log.Printf("[ObjectResetSystem] 重置完成: 左=%s 右=%s 路径长度=%.1f",
		s.state.Placement.Left, s.state.Placement.Right, s.PathLength())
}

// PathLength 返回当前尺寸下单条路径的长度
func (s *ObjectResetSystem) PathLength() float64 {
	return math.Min(s.state.Bounds.Width*s.cfg.Domino.PathLengthRatio, s.cfg.Domino.MaxPathLength)
}

// resetCat 原地重置猫
func (s *ObjectResetSystem) resetCat() {
	cat := s.state.Cat
	b := s.state.Bounds

	cat.X = b.CenterX
	cat.BaseY = b.CenterY - s.cfg.Cat.OffsetY
	cat.Y = cat.BaseY
	cat.Scale = 1
	cat.TailAngle = 0
	cat.EarAngle = 0
	cat.Direction = types.DirCenter
	cat.Pose = types.PoseIdle
	cat.BubbleText = BubbleIdle
	cat.BubbleAlpha = 1
	cat.Item = types.ItemNone
}

// buildPath 生成一条骨牌路径，下标 0 离猫最近
func (s *ObjectResetSystem) buildPath(dir types.Direction, startY float64) []*components.DominoComponent {
	d := s.cfg.Domino
	count := d.Count
	spacing := s.PathLength() / float64(count)
	sign := dir.Sign()

	// 路径颜色：左萝卜右纸巾
	pathColor := s.cfg.Colors.Tissue
	if dir == types.DirLeft {
		pathColor = s.cfg.Colors.Radish
	}

	dominos := make([]*components.DominoComponent, 0, count)
	for i := 0; i < count; i++ {
		dominos = append(dominos, &components.DominoComponent{
			X:        s.state.Bounds.CenterX + sign*d.FirstOffsetX + sign*float64(i)*spacing,
			Y:        startY + float64(i)*d.PerspectiveStep,
			Width:    d.Width,
			Height:   d.Height,
			Rotation: 0,
			Color:    pathColor,
			Active:   true,
		})
	}
	return dominos
}

// randomPlacement 50/50 决定左右终点的奖品
func (s *ObjectResetSystem) randomPlacement() types.Placement {
	if s.rng.Float64() < 0.5 {
		return types.Placement{Left: types.PrizeTissue, Right: types.PrizeRadish}
	}
	return types.Placement{Left: types.PrizeRadish, Right: types.PrizeTissue}
}

// applyPlacement 最后一块骨牌染成终点奖品的颜色
func (s *ObjectResetSystem) applyPlacement() {
	if n := len(s.state.LeftPath); n > 0 {
		s.state.LeftPath[n-1].Color = s.cfg.Colors.PrizeColor(s.state.Placement.Left)
	}
	if n := len(s.state.RightPath); n > 0 {
		s.state.RightPath[n-1].Color = s.cfg.Colors.PrizeColor(s.state.Placement.Right)
	}
}
