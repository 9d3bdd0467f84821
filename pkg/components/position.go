package components

// PositionComponent 存储实体的屏幕坐标
type PositionComponent struct {
	X, Y float64
}
