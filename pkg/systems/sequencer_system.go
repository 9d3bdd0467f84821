package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/game"
	"github.com/bumagh/AwesomeCat/pkg/timeline"
	"github.com/bumagh/AwesomeCat/pkg/types"
	"github.com/bumagh/AwesomeCat/pkg/utils"
)

// 气泡文字
const (
	BubbleIdle      = "Hm...?"
	BubbleFlashback = "If I chose..."
	BubbleShock     = "???"
	BubbleFeedback  = "Meow! ♥"
)

// SoundPlayer 播放提示音
// *game.AudioManager 实现此接口；测试中可替换为计数器
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// Session 一局的记录
type Session struct {
	// Choice 玩家点击的按钮
	Choice types.Side
	// PlayerPrize 按钮代表的奖品（左=萝卜，右=纸巾）
	PlayerPrize types.Prize
	// TargetDir 猫实际走向的方向
	TargetDir types.Direction
	// CatPrize 目标方向代表的奖品（-1=萝卜，+1=纸巾）
	CatPrize types.Prize
	// ReachedPrize 目标终点实际摆放的奖品
	ReachedPrize types.Prize
	// Success 是否解锁"真棒"按钮
	Success bool
}

// SequencerSystem 驱动整个剧情：IDLE → ACTION → CELEBRATE → FLASHBACK → ENDED
//
// 它是唯一包含控制逻辑的系统。玩家输入只能在对应阶段启动时间轴，
// 时间轴一旦开始就不可取消；阶段守卫保证任何时刻最多只有一条主时间轴。
type SequencerSystem struct {
	state     *game.SceneState
	cfg       *config.SceneConfig
	particles *ParticleSystem
	reset     *ObjectResetSystem
	scheduler *timeline.Scheduler
	rng       *rand.Rand
	sounds    SoundPlayer

	session Session
	rounds  int
}

// NewSequencerSystem 创建剧情系统
//
// 参数：
//   - state: 场景状态
//   - cfg: 场景配置（决定节奏、目标策略和成功规则）
//   - particles: 粒子系统
//   - reset: 对象重置系统
//   - rng: 随机源（决定目标方向）
//   - sounds: 提示音播放器，可为 nil
func NewSequencerSystem(
	state *game.SceneState,
	cfg *config.SceneConfig,
	particles *ParticleSystem,
	reset *ObjectResetSystem,
	rng *rand.Rand,
	sounds SoundPlayer,
) *SequencerSystem {
	return &SequencerSystem{
		state:     state,
		cfg:       cfg,
		particles: particles,
		reset:     reset,
		scheduler: timeline.NewScheduler(),
		rng:       rng,
		sounds:    sounds,
	}
}

// Session 返回最近一局的记录
func (s *SequencerSystem) Session() Session {
	return s.session
}

// Rounds 返回已开始的局数
func (s *SequencerSystem) Rounds() int {
	return s.rounds
}

// ActiveTimelines 返回正在播放的时间轴数量
func (s *SequencerSystem) ActiveTimelines() int {
	return s.scheduler.Active()
}

// Update 推进所有时间轴和待机摆动
func (s *SequencerSystem) Update(dt float64) {
	s.scheduler.Update(dt)
	s.state.Clock += dt

	if s.state.GameState().SwaysIdle() {
		s.state.Cat.TailAngle = math.Sin(s.state.Clock*2) * 0.2
		s.state.Cat.EarAngle = math.Sin(s.state.Clock*3) * 0.1
	}
}

// ChooseSide 玩家选择左或右，只在 IDLE 接受
// 返回是否启动了新的一局
func (s *SequencerSystem) ChooseSide(side types.Side) bool {
	if s.state.GameState() != types.GameStateIdle {
		log.Printf("[Sequencer] 忽略选择 %s: 当前阶段 %s", side, s.state.GameState())
		return false
	}

	s.state.SetGameState(types.GameStateAction)
	s.rounds++

	dir := s.chooseTarget(side)
	s.session = s.judge(side, dir)
	s.state.Feedback.Reveals = 0

	log.Printf("[Sequencer] 第 %d 局: 选择=%s 目标=%s 猫的奖品=%s 终点奖品=%s 成功=%v",
		s.rounds, side, dir, s.session.CatPrize, s.session.ReachedPrize, s.session.Success)

	s.scheduler.Play(s.buildMainTimeline(dir))
	return true
}

// GiveFeedback 玩家点了"真棒"，ACTION 和 FLASHBACK 中拒绝
// 不改变叙事阶段
func (s *SequencerSystem) GiveFeedback() bool {
	if !s.state.GameState().AcceptsFeedback() {
		log.Printf("[Sequencer] 忽略反馈: 当前阶段 %s", s.state.GameState())
		return false
	}

	cat := s.state.Cat
	tm := s.cfg.Timing

	cat.BubbleText = BubbleFeedback
	cat.BubbleAlpha = 1

	jump := timeline.New("feedback").
		Add(timeline.Step{
			Duration: tm.FeedbackJump,
			Props: []timeline.Prop{
				timeline.To(&cat.Y, cat.BaseY-s.cfg.Cat.JumpHeight),
				timeline.To(&cat.Scale, s.cfg.Cat.JumpScale),
			},
			Ease:    utils.EaseOutCubic,
			OnStart: func() { cat.Pose = types.PoseJump },
		}).
		Add(timeline.Step{
			Duration: tm.FeedbackLand,
			Props: []timeline.Prop{
				timeline.To(&cat.Y, cat.BaseY),
				timeline.To(&cat.Scale, 1),
			},
			Ease: utils.EaseOutBounce,
			OnComplete: func() {
				if s.state.GameState() != types.GameStateEnded {
					cat.Pose = types.PoseIdle
				}
			},
		})
	s.scheduler.Play(jump)

	s.particles.SpawnColored(cat.X, cat.Y-40, s.cfg.Colors.Awesome)
	s.playSound(game.SoundMeow)

	fade := timeline.New("feedback-bubble").Add(timeline.Step{
		Delay:    tm.FeedbackLinger,
		Duration: tm.FeedbackFade,
		Props:    []timeline.Prop{timeline.To(&cat.BubbleAlpha, 0)},
	})
	s.scheduler.Play(fade)

	return true
}

// Restart 结束画面上的点击，只在 ENDED 接受
func (s *SequencerSystem) Restart() bool {
	if s.state.GameState() != types.GameStateEnded {
		return false
	}

	s.reset.Reset()
	s.state.SetGameState(types.GameStateIdle)
	return true
}

// chooseTarget 按目标策略决定猫走向哪边
func (s *SequencerSystem) chooseTarget(side types.Side) types.Direction {
	if s.cfg.Policy == types.PolicyOpposite {
		return side.Direction().Opposite()
	}
	if s.rng.Float64() < 0.5 {
		return types.DirLeft
	}
	return types.DirRight
}

// judge 计算本局记录和成功判定
func (s *SequencerSystem) judge(side types.Side, dir types.Direction) Session {
	sess := Session{
		Choice:       side,
		PlayerPrize:  types.PrizeForSide(side),
		TargetDir:    dir,
		CatPrize:     types.PrizeForDirection(dir),
		ReachedPrize: s.state.Placement.At(dir),
	}

	symbolic := sess.PlayerPrize == sess.CatPrize
	placement := sess.PlayerPrize == sess.ReachedPrize
	if symbolic != placement {
		log.Printf("[Sequencer] 判定不一致: 符号=%v 摆放=%v（使用 %s）", symbolic, placement, s.cfg.Rule)
	}

	if s.cfg.Rule == types.RulePlacement {
		sess.Success = placement
	} else {
		sess.Success = symbolic
	}
	return sess
}

// buildMainTimeline 主时间轴：走向目标、推倒骨牌、庆祝、进入闪回
func (s *SequencerSystem) buildMainTimeline(dir types.Direction) *timeline.Timeline {
	cat := s.state.Cat
	tm := s.cfg.Timing
	path := s.state.Path(dir)
	fall := dir.Sign() * math.Pi / s.cfg.Domino.FallAngleDivisor

	tl := timeline.New("main")

	tl.Add(timeline.Step{
		Duration: tm.BubbleFade,
		Props:    []timeline.Prop{timeline.To(&cat.BubbleAlpha, 0)},
	})

	tl.Add(timeline.Step{
		Duration: tm.Walk,
		Props:    []timeline.Prop{timeline.To(&cat.X, s.state.Bounds.CenterX+dir.Sign()*s.cfg.Cat.StepX)},
		Ease:     utils.EaseOutCubic,
		OnStart: func() {
			cat.Direction = dir
			cat.Pose = types.PoseIdle
		},
	})

	tl.Add(timeline.Step{
		Duration:   tm.Push,
		OnStart:    func() { cat.Pose = types.PosePush },
		OnComplete: func() { cat.Pose = types.PoseIdle },
	})

	for _, d := range path {
		tl.Add(timeline.Step{
			Offset:   -tm.DominoOverlap,
			Duration: tm.DominoFall,
			Props:    []timeline.Prop{timeline.To(&d.Rotation, fall)},
			Ease:     utils.EaseOutBounce,
			OnStart:  func() { s.playSound(game.SoundDominoTick) },
		})
	}

	tl.Call(func() { s.celebrate(path) })

	tl.Add(timeline.Step{
		Duration: tm.Bob,
		Props:    []timeline.Prop{timeline.To(&cat.Y, cat.BaseY-s.cfg.Cat.BobHeight)},
		Repeat:   tm.BobRepeat,
		Yoyo:     true,
	})

	tl.Wait(tm.CelebrateHold)
	tl.Call(func() { s.flashback(dir.Opposite()) })

	return tl
}

// celebrate 骨牌全部倒下：粒子、奖励小鱼、成功判定
func (s *SequencerSystem) celebrate(path []*components.DominoComponent) {
	if n := len(path); n > 0 {
		last := path[n-1]
		s.particles.Spawn(last.X, last.Y)
		s.particles.Spawn(last.X, last.Y-50)
	}

	s.state.SetGameState(types.GameStateCelebrate)
	s.state.Cat.Item = types.ItemFish
	s.playSound(game.SoundCelebrate)

	if s.session.Success {
		s.revealFeedback()
	}
}

// revealFeedback 显示"真棒"按钮：透明度 0→1，从下方浮起
func (s *SequencerSystem) revealFeedback() {
	fb := &s.state.Feedback
	fb.Visible = true
	fb.Reveals++
	fb.Alpha = 0
	fb.OffsetY = s.cfg.Timing.RevealOffset

	s.scheduler.Play(timeline.New("reveal").Add(timeline.Step{
		Duration: s.cfg.Timing.Reveal,
		Props: []timeline.Prop{
			timeline.To(&fb.Alpha, 1),
			timeline.To(&fb.OffsetY, 0),
		},
		Ease: utils.EaseOutCubic,
	}))
}

// flashback 闪回：重置场景，演示另一条路径的失败
func (s *SequencerSystem) flashback(fd types.Direction) {
	s.reset.Reset()
	s.state.SetGameState(types.GameStateFlashback)

	cat := s.state.Cat
	tm := s.cfg.Timing
	path := s.state.Path(fd)
	first := path[0]

	cat.BubbleText = BubbleFlashback
	cat.BubbleAlpha = 1

	tl := timeline.New("flashback")

	tl.Add(timeline.Step{
		Delay:    tm.FlashbackDelay,
		Duration: tm.FlashbackWalk,
		Props:    []timeline.Prop{timeline.To(&cat.X, s.state.Bounds.CenterX+fd.Sign()*s.cfg.Cat.StepX)},
		OnStart:  func() { cat.Direction = fd },
	})

	tl.Call(func() { cat.Pose = types.PosePush })

	tl.Add(timeline.Step{
		Duration: tm.FlashbackTip,
		Props:    []timeline.Prop{timeline.To(&first.Rotation, fd.Sign()*math.Pi/s.cfg.Domino.FallAngleDivisor)},
		OnStart:  func() { s.playSound(game.SoundDominoTick) },
	})

	tl.Call(func() {
		cat.Pose = types.PoseShock
		cat.BubbleText = BubbleShock
		s.particles.SpawnColored(first.X, first.Y, s.cfg.Colors.Fail)
		s.playSound(game.SoundFail)
	})

	tl.Add(timeline.Step{
		Duration:   tm.ShakeStep,
		Props:      []timeline.Prop{timeline.To(&s.state.ShakeX, tm.ShakeAmplitude)},
		Repeat:     tm.ShakeRepeat,
		Yoyo:       true,
		OnComplete: func() { s.state.ShakeX = 0 },
	})

	tl.Wait(tm.FlashbackHold)
	tl.Call(func() { s.state.SetGameState(types.GameStateEnded) })

	s.scheduler.Play(tl)
}

func (s *SequencerSystem) playSound(id string) {
	if s.sounds != nil {
		s.sounds.PlaySound(id)
	}
}
