// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/game"
	"github.com/bumagh/AwesomeCat/pkg/scenes"
	"github.com/bumagh/AwesomeCat/pkg/types"
	"github.com/bumagh/AwesomeCat/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// volumeStep 每次按键调节的音量
const volumeStep = 0.1

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Fullscreen 以全屏启动（覆盖已保存的设置）
	Fullscreen bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Policy 覆盖配置中的目标策略（"random" 或 "opposite"），为空则使用配置
	Policy string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager

	// Layout 收到的最新尺寸，在下一次 Update 中转发给场景
	layoutWidth, layoutHeight int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 初始化失败时恢复原来的日志输出，调用方可以直接用 log 报告错误。
func NewApp(cfg Config) (*App, error) {
	prevOutput, prevFlags := log.Writer(), log.Flags()

	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	a, err := newApp(cfg)
	if err != nil {
		log.SetOutput(prevOutput)
		log.SetFlags(prevFlags)
		return nil, err
	}
	return a, nil
}

func newApp(cfg Config) (*App, error) {
	sceneConfig, err := config.LoadSceneConfig(config.SceneConfigPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	if cfg.Policy != "" {
		policy, err := types.ParseTargetPolicy(cfg.Policy)
		if err != nil {
			return nil, err
		}
		sceneConfig.Policy = policy
		log.Printf("[App] 目标策略覆盖为 %s", policy)
	}

	// 设置持久化失败时降级为内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: config.SettingsAppName})
	if err != nil {
		log.Printf("[App] Warning: gdata 不可用，设置不会保存: %v", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}

	audioManager := game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settingsManager)
	audioManager.PreloadSounds()
	log.Printf("[App] AudioManager initialized")

	if cfg.Fullscreen {
		settingsManager.SetFullscreen(true)
	}
	ebiten.SetFullscreen(settingsManager.GetSettings().Fullscreen)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	scene, err := scenes.NewCatScene(sceneConfig, audioManager, seed)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// M 静音
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := !a.settingsManager.GetSettings().SoundEnabled
		a.settingsManager.SetSoundEnabled(enabled)
		a.saveSettings()
		log.Printf("[App] Sound enabled: %v", enabled)
	}

	// -/+ 调节提示音音量
	if utils.IsAnyKeyJustPressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract) {
		a.adjustVolume(-volumeStep)
	}
	if utils.IsAnyKeyJustPressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd) {
		a.adjustVolume(volumeStep)
	}

	if a.layoutWidth > 0 && a.layoutHeight > 0 {
		a.sceneManager.Resize(a.layoutWidth, a.layoutHeight)
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// toggleFullscreen 切换全屏并保存设置
func (a *App) toggleFullscreen() {
	fullscreen := a.settingsManager.ToggleFullscreen()
	ebiten.SetFullscreen(fullscreen)

	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}
	a.saveSettings()
}

// adjustVolume 调节音量并保存，返回新音量
func (a *App) adjustVolume(delta float64) float64 {
	a.audioManager.SetSoundVolume(a.audioManager.GetSoundVolume() + delta)
	a.saveSettings()

	volume := a.audioManager.GetSoundVolume()
	log.Printf("[App] Sound volume: %.1f", volume)
	a.audioManager.PlaySound(game.SoundDominoTick)
	return volume
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// shutdown 窗口关闭前保存设置
// 场景状态不持久化
func (a *App) shutdown() {
	log.Printf("[App] Window closing, saving settings")
	a.saveSettings()
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑尺寸跟随窗口尺寸，场景按新尺寸重新布局
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.layoutWidth, a.layoutHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
