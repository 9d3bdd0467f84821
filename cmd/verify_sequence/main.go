// verify_sequence 无窗口运行一局并打印阶段轨迹
//
// 用法：
//
//	go run ./cmd/verify_sequence -side left -seed 42
//	go run ./cmd/verify_sequence -side right -policy opposite -feedback
//	go run ./cmd/verify_sequence -config data/scene.yaml -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/game"
	"github.com/bumagh/AwesomeCat/pkg/systems"
	"github.com/bumagh/AwesomeCat/pkg/types"
)

const frame = 1.0 / 60.0

var (
	seed       = flag.Int64("seed", 1, "随机种子")
	side       = flag.String("side", "left", "玩家选择: left 或 right")
	policy     = flag.String("policy", "", "覆盖目标策略: random 或 opposite")
	configPath = flag.String("config", "", "场景配置 YAML 文件（默认使用内置默认值）")
	feedback   = flag.Bool("feedback", false, "庆祝阶段按钮出现后点击\"真棒\"")
	verbose    = flag.Bool("verbose", false, "显示系统日志")
	maxSeconds = flag.Float64("max", 20, "最长模拟时间（秒）")
)

// soundLog 记录提示音
type soundLog map[string]int

func (s soundLog) PlaySound(soundID string) bool {
	s[soundID]++
	return true
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	choice, err := types.ParseSide(*side)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	state := game.NewSceneState(config.GameWindowWidth, config.GameWindowHeight)
	particles := systems.NewParticleSystem(state.Particles, cfg.Particles, rng)
	reset := systems.NewObjectResetSystem(state, cfg, rng)
	sounds := soundLog{}
	seq := systems.NewSequencerSystem(state, cfg, particles, reset, rng, sounds)
	reset.Reset()

	clock := 0.0
	state.OnStateChange(func(from, to types.GameState) {
		fmt.Printf("%6.2fs  %-9s → %-9s particles=%d\n", clock, from, to, particles.Count())
	})

	fmt.Printf("seed=%d policy=%s rule=%s placement: left=%s right=%s\n",
		*seed, cfg.Policy, cfg.Rule, state.Placement.Left, state.Placement.Right)

	if !seq.ChooseSide(choice) {
		fmt.Fprintln(os.Stderr, "Error: ChooseSide rejected")
		os.Exit(1)
	}

	pressed := false
	for ; clock < *maxSeconds && state.GameState() != types.GameStateEnded; clock += frame {
		if *feedback && !pressed && state.Feedback.Visible && state.GameState() == types.GameStateCelebrate {
			pressed = seq.GiveFeedback()
			fmt.Printf("%6.2fs  feedback accepted=%v\n", clock, pressed)
		}
		seq.Update(frame)
		particles.Update()
	}

	s := seq.Session()
	fmt.Printf("choice=%s player=%s target=%s cat=%s reached=%s success=%v\n",
		s.Choice, s.PlayerPrize, s.TargetDir, s.CatPrize, s.ReachedPrize, s.Success)
	printDominoes("target", state.Path(s.TargetDir))
	printDominoes("other", state.Path(s.TargetDir.Opposite()))
	printSounds(sounds)

	if state.GameState() != types.GameStateEnded {
		fmt.Fprintf(os.Stderr, "Error: round did not end within %.1fs (state %s)\n", *maxSeconds, state.GameState())
		os.Exit(1)
	}
}

// loadConfig 读取配置文件或使用默认值，并应用策略覆盖
func loadConfig() (*config.SceneConfig, error) {
	cfg := config.DefaultSceneConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", *configPath, err)
		}
		if cfg, err = config.ParseSceneConfig(data); err != nil {
			return nil, err
		}
	}
	if *policy != "" {
		p, err := types.ParseTargetPolicy(*policy)
		if err != nil {
			return nil, err
		}
		cfg.Policy = p
	}
	return cfg, nil
}

// printDominoes 打印路径的旋转角度（倒下的骨牌）
// 结束时场景已被回放重置过，这里显示的是回放后的路径
func printDominoes(name string, path []*components.DominoComponent) {
	fmt.Printf("%-6s:", name)
	for _, d := range path {
		fmt.Printf(" %5.2f", d.Rotation)
	}
	fmt.Println()
}

func printSounds(sounds soundLog) {
	ids := make([]string, 0, len(sounds))
	for id := range sounds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("sound %-10s x%d\n", id, sounds[id])
	}
}
