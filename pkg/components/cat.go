package components

import "github.com/bumagh/AwesomeCat/pkg/types"

// CatComponent 像素猫的全部可动画属性
//
// 只有对象重置和剧情时间轴会修改它，渲染只读。
// 浮点字段通过指针交给 timeline 插值。
type CatComponent struct {
	X, Y float64
	// BaseY 中立姿态下的纵向基准
	BaseY float64
	Scale float64

	TailAngle float64
	EarAngle  float64

	// Direction 朝向：-1 左，0 正面，1 右
	Direction types.Direction
	Pose      types.CatPose

	BubbleText  string
	BubbleAlpha float64

	Item types.Item
}
