package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bumagh/AwesomeCat/pkg/app"
	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	fullscreen = flag.Bool("fullscreen", false, "以全屏启动")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	policy     = flag.String("policy", "", "猫的目标策略: random 或 opposite（默认读取 data/scene.yaml）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Fullscreen: *fullscreen,
		Seed:       *seed,
		Policy:     *policy,
	})
	if err != nil {
		// NewApp 失败时已恢复日志输出
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	// 非 verbose 模式下日志已被丢弃，运行期错误直接写 stderr
	if err := ebiten.RunGame(gameApp); err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "游戏运行失败: %v\n", err)
		os.Exit(1)
	}
}
