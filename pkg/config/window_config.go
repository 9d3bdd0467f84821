package config

// 窗口配置常量
const (
	// GameWindowWidth 默认窗口宽度（逻辑像素）
	GameWindowWidth = 800

	// GameWindowHeight 默认窗口高度（逻辑像素）
	GameWindowHeight = 600

	// GameWindowTitle 窗口标题
	GameWindowTitle = "真棒猫 - Awesome Cat"

	// SceneConfigPath 场景配置文件在嵌入资源中的路径
	SceneConfigPath = "data/scene.yaml"

	// SettingsAppName gdata 存储使用的应用名
	SettingsAppName = "awesome_cat"
)
