package config

import (
	"fmt"
	"image/color"

	"github.com/bumagh/AwesomeCat/pkg/embedded"
	"github.com/bumagh/AwesomeCat/pkg/types"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// SceneConfig 场景配置
//
// 包含调色板、尺寸、粒子参数、剧情时间轴的节奏和猫的行为策略。
// 配置在构建时嵌入（data/scene.yaml），运行时不可从外部覆盖。
// YAML 中缺失的字段保留 DefaultSceneConfig 的默认值。
type SceneConfig struct {
	// Palette 调色板（十六进制颜色字符串）
	Palette PaletteConfig `yaml:"palette"`

	// GridSpacing 背景网格间距（像素）
	GridSpacing float64 `yaml:"gridSpacing"`

	// PixelSize 像素猫的单个像素边长
	PixelSize float64 `yaml:"pixelSize"`

	Cat       CatLayoutConfig    `yaml:"cat"`
	Domino    DominoLayoutConfig `yaml:"domino"`
	Particles ParticleConfig     `yaml:"particles"`
	Timing    TimingConfig       `yaml:"timing"`
	Behavior  BehaviorConfig     `yaml:"behavior"`

	// Colors 解析后的调色板，由 Resolve 填充
	Colors Colors `yaml:"-"`
	// Policy 解析后的目标策略
	Policy types.TargetPolicy `yaml:"-"`
	// Rule 解析后的成功判定规则
	Rule types.SuccessRule `yaml:"-"`
}

// PaletteConfig 十六进制调色板
type PaletteConfig struct {
	Background string `yaml:"background"`
	Path       string `yaml:"path"`
	CatMain    string `yaml:"catMain"`
	CatDark    string `yaml:"catDark"`
	Domino     string `yaml:"domino"`
	Radish     string `yaml:"radish"`
	Tissue     string `yaml:"tissue"`
	Gold       string `yaml:"gold"`
	Awesome    string `yaml:"awesome"`
	Fail       string `yaml:"fail"`
	Title      string `yaml:"title"`
}

// Colors 解析后的调色板
type Colors struct {
	Background color.RGBA
	Path       color.RGBA
	CatMain    color.RGBA
	CatDark    color.RGBA
	Domino     color.RGBA
	Radish     color.RGBA
	Tissue     color.RGBA
	Gold       color.RGBA
	Awesome    color.RGBA
	Fail       color.RGBA
	Title      color.RGBA
}

// PrizeColor 返回奖品对应的颜色
func (c Colors) PrizeColor(p types.Prize) color.RGBA {
	if p == types.PrizeRadish {
		return c.Radish
	}
	return c.Tissue
}

// CatLayoutConfig 猫的布局参数
type CatLayoutConfig struct {
	// OffsetY 猫的基准位置在屏幕中心上方的距离
	OffsetY float64 `yaml:"offsetY"`
	// StepX 猫走向骨牌时的水平位移
	StepX float64 `yaml:"stepX"`
	// BobHeight 庆祝时上下跳动的高度
	BobHeight float64 `yaml:"bobHeight"`
	// JumpHeight 反馈跳跃高度
	JumpHeight float64 `yaml:"jumpHeight"`
	// JumpScale 反馈跳跃时的放大倍数
	JumpScale float64 `yaml:"jumpScale"`
	// BubbleOffsetY 气泡在猫上方的距离
	BubbleOffsetY float64 `yaml:"bubbleOffsetY"`
}

// DominoLayoutConfig 骨牌路径参数
type DominoLayoutConfig struct {
	Count int     `yaml:"count"`
	Width float64 `yaml:"width"`
	// Height 骨牌高度
	Height float64 `yaml:"height"`
	// FirstOffsetX 第一块骨牌距猫的水平距离
	FirstOffsetX float64 `yaml:"firstOffsetX"`
	// PathOffsetY 路径起点在猫下方的距离
	PathOffsetY float64 `yaml:"pathOffsetY"`
	// PerspectiveStep 每块骨牌向下偏移（透视感）
	PerspectiveStep float64 `yaml:"perspectiveStep"`
	// PathLengthRatio 路径长度占屏幕宽度的比例
	PathLengthRatio float64 `yaml:"pathLengthRatio"`
	// MaxPathLength 路径最大长度
	MaxPathLength float64 `yaml:"maxPathLength"`
	// FallAngleDivisor 倒下角度 = π / FallAngleDivisor
	FallAngleDivisor float64 `yaml:"fallAngleDivisor"`
	// PrizeOffsetX 奖品图标距最后一块骨牌的水平距离
	PrizeOffsetX float64 `yaml:"prizeOffsetX"`
}

// ParticleConfig 粒子爆发参数（每帧单位）
type ParticleConfig struct {
	BurstSize  int     `yaml:"burstSize"`
	Speed      float64 `yaml:"speed"`
	UpwardBias float64 `yaml:"upwardBias"`
	Spin       float64 `yaml:"spin"`
	Gravity    float64 `yaml:"gravity"`
	Decay      float64 `yaml:"decay"`
	Size       float64 `yaml:"size"`
	// Saturation/Lightness 随机颜色的 HSL 参数
	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`
}

// TimingConfig 剧情时间轴节奏（秒）
type TimingConfig struct {
	BubbleFade     float64 `yaml:"bubbleFade"`
	Walk           float64 `yaml:"walk"`
	Push           float64 `yaml:"push"`
	DominoFall     float64 `yaml:"dominoFall"`
	DominoOverlap  float64 `yaml:"dominoOverlap"`
	Bob            float64 `yaml:"bob"`
	BobRepeat      int     `yaml:"bobRepeat"`
	CelebrateHold  float64 `yaml:"celebrateHold"`
	Reveal         float64 `yaml:"reveal"`
	RevealOffset   float64 `yaml:"revealOffset"`
	FlashbackDelay float64 `yaml:"flashbackDelay"`
	FlashbackWalk  float64 `yaml:"flashbackWalk"`
	FlashbackTip   float64 `yaml:"flashbackTip"`
	ShakeStep      float64 `yaml:"shakeStep"`
	ShakeRepeat    int     `yaml:"shakeRepeat"`
	ShakeAmplitude float64 `yaml:"shakeAmplitude"`
	FlashbackHold  float64 `yaml:"flashbackHold"`
	FeedbackJump   float64 `yaml:"feedbackJump"`
	FeedbackLand   float64 `yaml:"feedbackLand"`
	FeedbackLinger float64 `yaml:"feedbackLinger"`
	FeedbackFade   float64 `yaml:"feedbackFade"`
}

// BehaviorConfig 猫的行为
type BehaviorConfig struct {
	// TargetPolicy "random" 或 "opposite"
	TargetPolicy string `yaml:"targetPolicy"`
	// SuccessRule "symbolic" 或 "placement"
	SuccessRule string `yaml:"successRule"`
}

// DefaultSceneConfig 返回编译期默认配置（已解析）
func DefaultSceneConfig() *SceneConfig {
	cfg := &SceneConfig{
		Palette: PaletteConfig{
			Background: "#2d3436",
			Path:       "#636e72",
			CatMain:    "#dfe6e9",
			CatDark:    "#b2bec3",
			Domino:     "#ffffff",
			Radish:     "#ff7675",
			Tissue:     "#74b9ff",
			Gold:       "#ffeaa7",
			Awesome:    "#55efc4",
			Fail:       "#ff0000",
			Title:      "#ff7675",
		},
		GridSpacing: 32,
		PixelSize:   4,
		Cat: CatLayoutConfig{
			OffsetY:       50,
			StepX:         40,
			BobHeight:     20,
			JumpHeight:    60,
			JumpScale:     1.2,
			BubbleOffsetY: 60,
		},
		Domino: DominoLayoutConfig{
			Count:            8,
			Width:            12,
			Height:           32,
			FirstOffsetX:     60,
			PathOffsetY:      60,
			PerspectiveStep:  10,
			PathLengthRatio:  0.4,
			MaxPathLength:    200,
			FallAngleDivisor: 2.5,
			PrizeOffsetX:     30,
		},
		Particles: ParticleConfig{
			BurstSize:  20,
			Speed:      10,
			UpwardBias: 5,
			Spin:       0.5,
			Gravity:    0.2,
			Decay:      0.02,
			Size:       6,
			Saturation: 0.8,
			Lightness:  0.6,
		},
		Timing: TimingConfig{
			BubbleFade:     0.2,
			Walk:           0.5,
			Push:           0.2,
			DominoFall:     0.4,
			DominoOverlap:  0.25,
			Bob:            0.2,
			BobRepeat:      3,
			CelebrateHold:  1.5,
			Reveal:         0.4,
			RevealOffset:   12,
			FlashbackDelay: 0.5,
			FlashbackWalk:  0.5,
			FlashbackTip:   0.3,
			ShakeStep:      0.05,
			ShakeRepeat:    5,
			ShakeAmplitude: 5,
			FlashbackHold:  2,
			FeedbackJump:   0.3,
			FeedbackLand:   0.4,
			FeedbackLinger: 1.5,
			FeedbackFade:   0.5,
		},
		Behavior: BehaviorConfig{
			TargetPolicy: "random",
			SuccessRule:  "symbolic",
		},
	}

	if err := cfg.Resolve(); err != nil {
		// 默认值是常量，解析失败说明代码有误
		panic(fmt.Sprintf("invalid default scene config: %v", err))
	}
	return cfg
}

// LoadSceneConfig 从嵌入资源加载场景配置
//
// 参数:
//   - path: 嵌入资源路径（如 "data/scene.yaml"）
//
// 返回:
//   - *SceneConfig: 加载并解析后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 在默认配置之上解析 YAML
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	if err := cfg.Resolve(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg, nil
}

// Resolve 验证配置并解析颜色和枚举字段
func (c *SceneConfig) Resolve() error {
	if err := c.Validate(); err != nil {
		return err
	}

	colors, err := c.Palette.resolve()
	if err != nil {
		return err
	}
	c.Colors = colors

	if c.Policy, err = types.ParseTargetPolicy(c.Behavior.TargetPolicy); err != nil {
		return err
	}
	if c.Rule, err = types.ParseSuccessRule(c.Behavior.SuccessRule); err != nil {
		return err
	}
	return nil
}

// Validate 验证数值范围
func (c *SceneConfig) Validate() error {
	if c.Domino.Count < 1 {
		return fmt.Errorf("domino count must be >= 1, got %d", c.Domino.Count)
	}
	if c.Domino.FallAngleDivisor <= 0 {
		return fmt.Errorf("domino fallAngleDivisor must be > 0, got %.2f", c.Domino.FallAngleDivisor)
	}
	if c.Particles.BurstSize < 1 {
		return fmt.Errorf("particle burstSize must be >= 1, got %d", c.Particles.BurstSize)
	}
	if c.Particles.Decay <= 0 {
		return fmt.Errorf("particle decay must be > 0, got %.3f", c.Particles.Decay)
	}
	if c.Timing.BobRepeat < 0 || c.Timing.ShakeRepeat < 0 {
		return fmt.Errorf("repeat counts must be >= 0 (bob=%d, shake=%d)", c.Timing.BobRepeat, c.Timing.ShakeRepeat)
	}
	if c.GridSpacing <= 0 {
		return fmt.Errorf("gridSpacing must be > 0, got %.1f", c.GridSpacing)
	}
	return nil
}

// resolve 解析所有十六进制颜色
func (p PaletteConfig) resolve() (Colors, error) {
	var out Colors
	fields := []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"background", p.Background, &out.Background},
		{"path", p.Path, &out.Path},
		{"catMain", p.CatMain, &out.CatMain},
		{"catDark", p.CatDark, &out.CatDark},
		{"domino", p.Domino, &out.Domino},
		{"radish", p.Radish, &out.Radish},
		{"tissue", p.Tissue, &out.Tissue},
		{"gold", p.Gold, &out.Gold},
		{"awesome", p.Awesome, &out.Awesome},
		{"fail", p.Fail, &out.Fail},
		{"title", p.Title, &out.Title},
	}

	for _, f := range fields {
		c, err := ParseHexColor(f.hex)
		if err != nil {
			return out, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return out, nil
}

// ParseHexColor 解析 "#rrggbb" 颜色
func ParseHexColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
