package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于响应窗口尺寸变化
//
// 实现此接口的场景会在布局尺寸改变后、下一次 Update 之前收到新尺寸。
type Resizable interface {
	// Resize 通知场景新的逻辑尺寸（像素）
	Resize(width, height int)
}
