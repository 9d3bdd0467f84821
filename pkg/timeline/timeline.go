// Package timeline 实现剧情动画的时间轴
//
// 时间轴是一组显式的步骤描述（属性插值、回调、等待），由 Update(dt)
// 按显式的时间增量推进。每个步骤默认接在时间轴末尾，Offset 为负时与
// 前面的步骤重叠，用于骨牌依次倒下的交错效果。
//
// 时间轴一旦开始就无法取消，调用方通过状态守卫阻止新的时间轴启动。
package timeline

import (
	"sort"

	"github.com/bumagh/AwesomeCat/pkg/utils"
)

// Prop 一个被插值的浮点属性
type Prop struct {
	Target *float64
	To     float64
}

// To 创建属性插值：在步骤开始时记录当前值，插值到 to
func To(target *float64, to float64) Prop {
	return Prop{Target: target, To: to}
}

// Step 时间轴上的一个步骤
type Step struct {
	// Offset 相对于时间轴当前末尾的偏移（秒），负值表示与之前的步骤重叠
	Offset float64
	// Delay 额外延迟（秒）
	Delay float64
	// Duration 单次播放时长（秒），0 表示瞬时步骤
	Duration float64

	Props []Prop
	// Ease 缓动函数，nil 时使用 EaseOutQuad
	Ease utils.EaseFunc

	// Repeat 额外重复次数（总播放次数 = Repeat + 1）
	Repeat int
	// Yoyo 奇数次播放时反向
	Yoyo bool

	// OnStart 在步骤开始时调用，先于起始值的记录
	OnStart func()
	// OnComplete 在步骤结束、属性写入终值后调用
	OnComplete func()
}

// TotalDuration 返回包含重复在内的总时长
func (s Step) TotalDuration() float64 {
	return s.Duration * float64(s.Repeat+1)
}

// entry 步骤的运行时状态
type entry struct {
	step    Step
	start   float64
	from    []float64
	started bool
	done    bool
}

// Timeline 一条时间轴
type Timeline struct {
	label    string
	entries  []*entry
	end      float64
	elapsed  float64
	finished bool
}

// New 创建空时间轴
// label 仅用于日志
func New(label string) *Timeline {
	return &Timeline{label: label}
}

// Add 追加一个步骤
// 起始时间 = 当前末尾 + Offset + Delay（不早于 0）
func (tl *Timeline) Add(step Step) *Timeline {
	start := tl.end + step.Offset + step.Delay
	if start < 0 {
		start = 0
	}
	if step.Repeat < 0 {
		step.Repeat = 0
	}

	tl.entries = append(tl.entries, &entry{step: step, start: start})
	// 稳定排序：同一时刻的步骤保持声明顺序
	sort.SliceStable(tl.entries, func(i, j int) bool {
		return tl.entries[i].start < tl.entries[j].start
	})

	if end := start + step.TotalDuration(); end > tl.end {
		tl.end = end
	}
	tl.finished = false
	return tl
}

// Call 在时间轴末尾追加一个瞬时回调
func (tl *Timeline) Call(fn func()) *Timeline {
	return tl.Add(Step{OnStart: fn})
}

// Wait 在时间轴末尾追加一段空白
func (tl *Timeline) Wait(d float64) *Timeline {
	return tl.Add(Step{Duration: d})
}

// Duration 返回时间轴总时长
func (tl *Timeline) Duration() float64 {
	return tl.end
}

// Elapsed 返回已推进的时间
func (tl *Timeline) Elapsed() float64 {
	return tl.elapsed
}

// Finished 返回所有步骤是否都已完成
func (tl *Timeline) Finished() bool {
	return tl.finished
}

// StartTimes 按执行顺序返回各步骤的起始时间
func (tl *Timeline) StartTimes() []float64 {
	out := make([]float64, len(tl.entries))
	for i, e := range tl.entries {
		out[i] = e.start
	}
	return out
}

// Update 推进时间轴 dt 秒，返回是否已完成
//
// 同一次推进中，步骤按起始时间顺序处理；跨越多个步骤时，
// 每个步骤都会完整地经历 OnStart → 终值 → OnComplete。
func (tl *Timeline) Update(dt float64) bool {
	if tl.finished {
		return true
	}
	tl.elapsed += dt

	allDone := true
	for _, e := range tl.entries {
		if e.done {
			continue
		}
		if tl.elapsed < e.start {
			allDone = false
			continue
		}
		e.advance(tl.elapsed)
		if !e.done {
			allDone = false
		}
	}

	tl.finished = allDone
	return tl.finished
}

// advance 推进单个步骤到时间轴时刻 elapsed
func (e *entry) advance(elapsed float64) {
	s := &e.step

	if !e.started {
		e.started = true
		if s.OnStart != nil {
			s.OnStart()
		}
		e.from = make([]float64, len(s.Props))
		for i, p := range s.Props {
			e.from[i] = *p.Target
		}
	}

	local := elapsed - e.start
	if local >= s.TotalDuration() {
		e.finish()
		return
	}

	iteration := int(local / s.Duration)
	t := (local - float64(iteration)*s.Duration) / s.Duration
	e.apply(t, s.Yoyo && iteration%2 == 1)
}

// apply 写入插值结果
func (e *entry) apply(t float64, reversed bool) {
	ease := e.step.Ease
	if ease == nil {
		ease = utils.EaseOutQuad
	}
	if reversed {
		t = 1 - t
	}

	k := ease(utils.Clamp01(t))
	for i, p := range e.step.Props {
		*p.Target = utils.Lerp(e.from[i], p.To, k)
	}
}

// finish 写入精确终值并触发 OnComplete
// 最后一次播放是反向时（Yoyo 且 Repeat 为奇数）终值为起始值
func (e *entry) finish() {
	s := &e.step
	reversed := s.Yoyo && s.Repeat%2 == 1
	for i, p := range s.Props {
		if reversed {
			*p.Target = e.from[i]
		} else {
			*p.Target = p.To
		}
	}

	e.done = true
	if s.OnComplete != nil {
		s.OnComplete()
	}
}
