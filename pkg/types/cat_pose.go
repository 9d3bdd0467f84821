package types

// CatPose 猫的姿势（封闭集合，渲染时穷举匹配）
type CatPose int

const (
	// PoseIdle 站立
	PoseIdle CatPose = iota
	// PosePush 伸爪推骨牌
	PosePush
	// PoseShock 受惊
	PoseShock
	// PoseJump 开心跳起
	PoseJump
)

// String 返回姿势的字符串表示
func (p CatPose) String() string {
	switch p {
	case PoseIdle:
		return "idle"
	case PosePush:
		return "push"
	case PoseShock:
		return "shock"
	case PoseJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Item 猫手上拿着的奖励物品
type Item int

const (
	// ItemNone 空手
	ItemNone Item = iota
	// ItemFish 小鱼奖励
	ItemFish
)
