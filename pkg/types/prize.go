package types

import "fmt"

// Prize 路径终点的奖品
type Prize int

const (
	// PrizeRadish 萝卜
	PrizeRadish Prize = iota
	// PrizeTissue 纸巾
	PrizeTissue
)

// String 返回奖品的字符串表示
func (p Prize) String() string {
	if p == PrizeRadish {
		return "radish"
	}
	return "tissue"
}

// Other 返回另一种奖品
func (p Prize) Other() Prize {
	if p == PrizeRadish {
		return PrizeTissue
	}
	return PrizeRadish
}

// PrizeForSide 玩家点击的按钮所代表的奖品（左=萝卜，右=纸巾）
func PrizeForSide(s Side) Prize {
	if s == SideLeft {
		return PrizeRadish
	}
	return PrizeTissue
}

// PrizeForDirection 猫的目标方向所代表的奖品（-1=萝卜，+1=纸巾）
// 这是固定的符号映射，与本局终点实际摆放无关
func PrizeForDirection(d Direction) Prize {
	if d == DirLeft {
		return PrizeRadish
	}
	return PrizeTissue
}

// Placement 本局左右终点实际摆放的奖品
type Placement struct {
	Left  Prize
	Right Prize
}

// At 返回某方向终点的奖品
func (p Placement) At(d Direction) Prize {
	if d == DirLeft {
		return p.Left
	}
	return p.Right
}

// Valid 检查左右终点恰好是一个萝卜一个纸巾
func (p Placement) Valid() bool {
	return p.Left != p.Right
}

// TargetPolicy 决定猫最终走向哪一侧
type TargetPolicy int

const (
	// PolicyRandom 猫随机选择左右
	PolicyRandom TargetPolicy = iota
	// PolicyOpposite 反向心理：总是与玩家选择相反
	PolicyOpposite
)

// String 返回策略名
func (p TargetPolicy) String() string {
	if p == PolicyOpposite {
		return "opposite"
	}
	return "random"
}

// ParseTargetPolicy 解析策略名
func ParseTargetPolicy(s string) (TargetPolicy, error) {
	switch s {
	case "", "random":
		return PolicyRandom, nil
	case "opposite":
		return PolicyOpposite, nil
	default:
		return PolicyRandom, fmt.Errorf("unknown target policy %q (want random or opposite)", s)
	}
}

// SuccessRule 决定"真棒"按钮何时解锁
type SuccessRule int

const (
	// RuleSymbolic 比较玩家按钮的符号奖品与目标方向的符号奖品
	RuleSymbolic SuccessRule = iota
	// RulePlacement 比较玩家按钮的符号奖品与目标终点实际摆放的奖品
	RulePlacement
)

// String 返回规则名
func (r SuccessRule) String() string {
	if r == RulePlacement {
		return "placement"
	}
	return "symbolic"
}

// ParseSuccessRule 解析规则名
func ParseSuccessRule(s string) (SuccessRule, error) {
	switch s {
	case "", "symbolic":
		return RuleSymbolic, nil
	case "placement":
		return RulePlacement, nil
	default:
		return RuleSymbolic, fmt.Errorf("unknown success rule %q (want symbolic or placement)", s)
	}
}
