package components

import "image/color"

// DominoComponent 骨牌
// Rotation 为 0 表示站立，±π/FallAngleDivisor 表示倒下
type DominoComponent struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64
	Color         color.RGBA
	// Active 保留字段，目前不参与任何逻辑
	Active bool
}
