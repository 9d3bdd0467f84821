package ecs

import "testing"

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	// 未添加的组件类型
	if _, found := GetComponent[*testVelocityComponent](em, id); found {
		t.Error("Velocity component should not be found")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	// 标记删除后实体仍然存在
	em.DestroyEntity(id)
	if em.EntityCount() != 1 {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}
	if _, found := GetComponent[*testPositionComponent](em, id); !found {
		t.Error("Marked entity should keep its components until removal")
	}

	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Error("Entity should be removed after RemoveMarkedEntities")
	}
	if _, found := GetComponent[*testPositionComponent](em, id); found {
		t.Error("Destroyed entity should have no components")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	both := make([]EntityID, 0)
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
			both = append(both, id)
		}
	}

	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 5 {
		t.Errorf("Expected 5 entities with position, got %d", len(got))
	}

	got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(got) != len(both) {
		t.Fatalf("Expected %d entities with both, got %d", len(both), len(got))
	}
	// 结果按出生顺序排列
	for i := range got {
		if got[i] != both[i] {
			t.Errorf("Entity %d: expected %d, got %d", i, both[i], got[i])
		}
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 3; i++ {
		em.CreateEntity()
	}
	em.Clear()
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities after Clear, got %d", em.EntityCount())
	}
	// ID 不复用
	if id := em.CreateEntity(); id != 4 {
		t.Errorf("Expected next ID 4 after Clear, got %d", id)
	}
}
