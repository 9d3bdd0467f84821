// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// GameState 定义场景的叙事阶段
type GameState int

const (
	// GameStateIdle 等待玩家选择左右
	GameStateIdle GameState = iota
	// GameStateThinking 已声明但不会被任何转换进入
	GameStateThinking
	// GameStateAction 猫走向目标并推倒骨牌
	GameStateAction
	// GameStateCelebrate 骨牌倒完，猫庆祝
	GameStateCelebrate
	// GameStateFlashback 回放另一条路径的失败
	GameStateFlashback
	// GameStateEnded 标题画面，点击重开
	GameStateEnded
)

// String 返回状态的字符串表示
func (s GameState) String() string {
	switch s {
	case GameStateIdle:
		return "IDLE"
	case GameStateThinking:
		return "THINKING"
	case GameStateAction:
		return "ACTION"
	case GameStateCelebrate:
		return "CELEBRATE"
	case GameStateFlashback:
		return "FLASHBACK"
	case GameStateEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// AcceptsFeedback 返回该阶段是否接受"真棒"反馈
// 剧情动画（ACTION、FLASHBACK）进行中不允许打断
func (s GameState) AcceptsFeedback() bool {
	return s != GameStateAction && s != GameStateFlashback
}

// SwaysIdle 返回该阶段猫的尾巴和耳朵是否做待机摆动
func (s GameState) SwaysIdle() bool {
	return s == GameStateIdle || s == GameStateThinking || s == GameStateCelebrate
}
