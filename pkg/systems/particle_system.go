package systems

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/bumagh/AwesomeCat/pkg/components"
	"github.com/bumagh/AwesomeCat/pkg/config"
	"github.com/bumagh/AwesomeCat/pkg/ecs"
)

// ParticleSystem 管理庆祝、失败和反馈时的粒子爆发
//
// 每个粒子是一个拥有 PositionComponent 和 ParticleComponent 的实体。
// 速度、重力和衰减都以"每帧"为单位，Update 在每个逻辑帧调用一次。
// 系统只通过 EntityManager 读写粒子，不持有实体引用。
type ParticleSystem struct {
	entityManager *ecs.EntityManager
	cfg           config.ParticleConfig
	rng           *rand.Rand
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(em *ecs.EntityManager, cfg config.ParticleConfig, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
	}
}

// Spawn 在 (x, y) 处爆发一组随机色相的粒子
func (ps *ParticleSystem) Spawn(x, y float64) []ecs.EntityID {
	return ps.spawn(x, y, nil)
}

// SpawnColored 在 (x, y) 处爆发一组指定颜色的粒子
func (ps *ParticleSystem) SpawnColored(x, y float64, c color.RGBA) []ecs.EntityID {
	return ps.spawn(x, y, &c)
}

func (ps *ParticleSystem) spawn(x, y float64, fixed *color.RGBA) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, ps.cfg.BurstSize)
	for i := 0; i < ps.cfg.BurstSize; i++ {
		c := ps.randomColor()
		if fixed != nil {
			c = *fixed
		}

		id := ps.entityManager.CreateEntity()
		ecs.AddComponent(ps.entityManager, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(ps.entityManager, id, &components.ParticleComponent{
			VelocityX:     (ps.rng.Float64() - 0.5) * ps.cfg.Speed,
			VelocityY:     (ps.rng.Float64()-0.5)*ps.cfg.Speed - ps.cfg.UpwardBias,
			RotationSpeed: (ps.rng.Float64() - 0.5) * ps.cfg.Spin,
			Rotation:      0,
			Life:          1,
			Color:         c,
		})
		ids = append(ids, id)
	}
	return ids
}

// randomColor 随机色相，固定饱和度和亮度
func (ps *ParticleSystem) randomColor() color.RGBA {
	r, g, b := colorful.Hsl(ps.rng.Float64()*360, ps.cfg.Saturation, ps.cfg.Lightness).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Update 推进所有粒子一帧，生命耗尽的粒子在同一次调用中移除
func (ps *ParticleSystem) Update() {
	ids := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.ParticleComponent,
	](ps.entityManager)

	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)

		pos.X += p.VelocityX
		pos.Y += p.VelocityY
		p.VelocityY += ps.cfg.Gravity
		p.Rotation += p.RotationSpeed
		p.Life -= ps.cfg.Decay

		if p.Life <= 0 {
			ps.entityManager.DestroyEntity(id)
		}
	}

	ps.entityManager.RemoveMarkedEntities()
}

// Count 返回存活粒子数
func (ps *ParticleSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager))
}

// Clear 移除所有粒子
func (ps *ParticleSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager) {
		ps.entityManager.DestroyEntity(id)
	}
	ps.entityManager.RemoveMarkedEntities()
}
