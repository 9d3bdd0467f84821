package systems

import (
	"math/rand"
	"testing"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/game"
	"github.com/bumagh/AwesomeCat/pkg/types"
)

const testFrame = 1.0 / 60.0

// recordingSounds 记录播放过的提示音
type recordingSounds struct {
	counts map[string]int
}

func newRecordingSounds() *recordingSounds {
	return &recordingSounds{counts: make(map[string]int)}
}

func (r *recordingSounds) PlaySound(soundID string) bool {
	r.counts[soundID]++
	return true
}

// testScene 组装一个完整的无头场景
type testScene struct {
	state     *game.SceneState
	cfg       *config.SceneConfig
	particles *ParticleSystem
	reset     *ObjectResetSystem
	seq       *SequencerSystem
	sounds    *recordingSounds
}

// newTestScene 创建 800x600 的场景，并按 seed 固定所有随机源
func newTestScene(t *testing.T, seed int64, policy types.TargetPolicy, rule types.SuccessRule) *testScene {
	t.Helper()

	cfg := config.DefaultSceneConfig()
	cfg.Policy = policy
	cfg.Rule = rule

	rng := rand.New(rand.NewSource(seed))
	state := game.NewSceneState(800, 600)
	particles := NewParticleSystem(state.Particles, cfg.Particles, rng)
	reset := NewObjectResetSystem(state, cfg, rng)
	sounds := newRecordingSounds()
	seq := NewSequencerSystem(state, cfg, particles, reset, rng, sounds)

	reset.Reset()

	return &testScene{
		state:     state,
		cfg:       cfg,
		particles: particles,
		reset:     reset,
		seq:       seq,
		sounds:    sounds,
	}
}

// step 推进一帧，与场景的 Update 顺序一致
func (ts *testScene) step() {
	ts.seq.Update(testFrame)
	ts.particles.Update()
}

// runUntil 推进直到进入目标阶段，超过 maxSeconds 则失败
func (ts *testScene) runUntil(t *testing.T, target types.GameState, maxSeconds float64) {
	t.Helper()
	for elapsed := 0.0; elapsed < maxSeconds; elapsed += testFrame {
		if ts.state.GameState() == target {
			return
		}
		ts.step()
	}
	if ts.state.GameState() != target {
		t.Fatalf("did not reach %s within %.1fs (stuck in %s)", target, maxSeconds, ts.state.GameState())
	}
}

// sceneSnapshot 猫的位置和所有骨牌的角度
type sceneSnapshot struct {
	catX, catY float64
	rotations  []float64
}

func (ts *testScene) snapshot() sceneSnapshot {
	snap := sceneSnapshot{catX: ts.state.Cat.X, catY: ts.state.Cat.Y}
	for _, path := range [][]*components.DominoComponent{ts.state.LeftPath, ts.state.RightPath} {
		for _, d := range path {
			snap.rotations = append(snap.rotations, d.Rotation)
		}
	}
	return snap
}

func (s sceneSnapshot) equal(other sceneSnapshot) bool {
	if s.catX != other.catX || s.catY != other.catY || len(s.rotations) != len(other.rotations) {
		return false
	}
	for i := range s.rotations {
		if s.rotations[i] != other.rotations[i] {
			return false
		}
	}
	return true
}

// assertFreshBoard 检查所有骨牌站立，且奖品摆放与终点颜色一致
func assertFreshBoard(t *testing.T, ts *testScene) {
	t.Helper()
	for _, dir := range []types.Direction{types.DirLeft, types.DirRight} {
		path := ts.state.Path(dir)
		for i, d := range path {
			if d.Rotation != 0 {
				t.Errorf("%s domino %d rotation = %v, want 0", dir, i, d.Rotation)
			}
		}
		want := ts.cfg.Colors.PrizeColor(ts.state.Placement.At(dir))
		if last := path[len(path)-1]; last.Color != want {
			t.Errorf("%s last domino color = %v, want %v", dir, last.Color, want)
		}
	}
	if !ts.state.Placement.Valid() {
		t.Errorf("invalid placement %+v", ts.state.Placement)
	}
}
