package components

// FeedbackComponent "真棒"按钮（反馈入口）的显示状态
type FeedbackComponent struct {
	// Visible 是否可见、可点击
	Visible bool
	// Alpha 出现动画的透明度
	Alpha float64
	// OffsetY 出现动画的纵向偏移（从下往上浮现）
	OffsetY float64
	// Reveals 本局被解锁的次数
	Reveals int
}
