package timeline

import "log"

// Scheduler 管理所有正在播放的时间轴
//
// 每帧由场景调用一次 Update。回调中新启动的时间轴从下一帧开始推进。
type Scheduler struct {
	timelines []*Timeline
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{
		timelines: make([]*Timeline, 0),
	}
}

// Play 开始播放时间轴
func (s *Scheduler) Play(tl *Timeline) *Timeline {
	log.Printf("[Timeline] 播放 %s: %.2fs", tl.label, tl.end)
	s.timelines = append(s.timelines, tl)
	return tl
}

// Update 推进所有时间轴 dt 秒并移除已完成的时间轴
func (s *Scheduler) Update(dt float64) {
	// range 只遍历进入本帧时已存在的时间轴
	for _, tl := range s.timelines {
		tl.Update(dt)
	}

	n := 0
	for _, tl := range s.timelines {
		if !tl.Finished() {
			s.timelines[n] = tl
			n++
		}
	}
	for i := n; i < len(s.timelines); i++ {
		s.timelines[i] = nil
	}
	s.timelines = s.timelines[:n]
}

// Active 返回正在播放的时间轴数量
func (s *Scheduler) Active() int {
	return len(s.timelines)
}
