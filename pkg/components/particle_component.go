package components

import "image/color"

// ParticleComponent 一次爆发中的单个粒子
// 位置在 PositionComponent 中，ParticleSystem 每帧积分速度并衰减 Life
//
// 所有速度单位都是"像素/帧"，与固定 60 TPS 的更新节奏对应。
type ParticleComponent struct {
	// Velocity (速度)
	VelocityX float64
	VelocityY float64

	// Rotation (旋转, 弧度)
	Rotation      float64
	RotationSpeed float64

	// Life 剩余生命 (0, 1]，同时作为绘制透明度
	Life float64

	Color color.RGBA
}
