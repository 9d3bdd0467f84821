package types

import "fmt"

// Side 玩家点击的方向按钮
type Side int

const (
	// SideLeft 左
	SideLeft Side = iota
	// SideRight 右
	SideRight
)

// String 返回方向的字符串表示
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Direction 返回该按钮对应的水平方向
func (s Side) Direction() Direction {
	if s == SideLeft {
		return DirLeft
	}
	return DirRight
}

// ParseSide 解析 "left" / "right"
func ParseSide(s string) (Side, error) {
	switch s {
	case "left", "l":
		return SideLeft, nil
	case "right", "r":
		return SideRight, nil
	default:
		return SideLeft, fmt.Errorf("unknown side %q (want left or right)", s)
	}
}

// Direction 水平方向：-1 左，0 正面，1 右
type Direction int

const (
	DirLeft   Direction = -1
	DirCenter Direction = 0
	DirRight  Direction = 1
)

// Opposite 返回相反方向
func (d Direction) Opposite() Direction {
	return -d
}

// Sign 返回方向的浮点符号，用于位置和角度计算
func (d Direction) Sign() float64 {
	return float64(d)
}

// String 返回方向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "-1"
	case DirRight:
		return "+1"
	default:
		return "0"
	}
}
