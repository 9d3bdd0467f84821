package game

import (
	"log"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/ecs"
	"github.com/bumagh/AwesomeCat/pkg/types"
)

// Bounds 场景的逻辑尺寸
type Bounds struct {
	Width, Height    float64
	CenterX, CenterY float64
}

// NewBounds 由布局尺寸计算场景尺寸和中心点
func NewBounds(width, height int) Bounds {
	return Bounds{
		Width:   float64(width),
		Height:  float64(height),
		CenterX: float64(width) / 2,
		CenterY: float64(height) / 2,
	}
}

// StateListener 叙事阶段变化回调
type StateListener func(from, to types.GameState)

// SceneState 场景的全部可变状态
//
// 所有系统共享同一个 SceneState 指针：对象重置和剧情时间轴写入，
// 渲染只读。粒子作为实体存放在 Particles 中。
type SceneState struct {
	Bounds Bounds

	gameState types.GameState

	Cat *components.CatComponent

	// LeftPath / RightPath 两条骨牌路径，下标 0 离猫最近
	LeftPath  []*components.DominoComponent
	RightPath []*components.DominoComponent

	// Placement 本局左右终点的奖品
	Placement types.Placement

	// Feedback "真棒"按钮状态
	Feedback components.FeedbackComponent

	// ShakeX 镜头抖动的水平偏移，所有几何体都会加上它
	ShakeX float64

	// Clock 场景运行时间（秒），驱动待机摆动和眨眼
	Clock float64

	// Particles 粒子实体
	Particles *ecs.EntityManager

	listeners []StateListener
}

// NewSceneState 创建处于 IDLE 的空场景状态
// 猫和路径由 ObjectResetSystem 填充
func NewSceneState(width, height int) *SceneState {
	return &SceneState{
		Bounds:    NewBounds(width, height),
		gameState: types.GameStateIdle,
		Cat:       &components.CatComponent{Scale: 1},
		Particles: ecs.NewEntityManager(),
	}
}

// GameState 返回当前叙事阶段
func (s *SceneState) GameState() types.GameState {
	return s.gameState
}

// SetGameState 切换叙事阶段并通知监听者
// 相同阶段不触发通知
func (s *SceneState) SetGameState(next types.GameState) {
	if next == s.gameState {
		return
	}
	prev := s.gameState
	s.gameState = next
	log.Printf("[SceneState] %s -> %s", prev, next)

	for _, fn := range s.listeners {
		fn(prev, next)
	}
}

// OnStateChange 注册阶段变化回调
func (s *SceneState) OnStateChange(fn StateListener) {
	s.listeners = append(s.listeners, fn)
}

// SetBounds 更新场景尺寸
func (s *SceneState) SetBounds(width, height int) {
	s.Bounds = NewBounds(width, height)
}

// Path 返回某方向的骨牌路径，DirCenter 返回 nil
func (s *SceneState) Path(d types.Direction) []*components.DominoComponent {
	switch d {
	case types.DirLeft:
		return s.LeftPath
	case types.DirRight:
		return s.RightPath
	default:
		return nil
	}
}
