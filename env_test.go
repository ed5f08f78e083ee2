package corvo

import "testing"

func TestEnvDefineGet(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", Num(1))
	v, ok := env.Get("x")
	if !ok || v.AsNumber() != 1 {
		t.Fatalf("get x: %v %v", v, ok)
	}
	if _, ok := env.Get("y"); ok {
		t.Fatal("y should be unbound")
	}
}

func TestEnvGetWalksParents(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", Num(1))
	child := NewEnv(root)
	v, ok := child.Get("x")
	if !ok || v.AsNumber() != 1 {
		t.Fatal("child should see parent bindings")
	}
}

func TestEnvAssignUpdatesNearestBinding(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", Num(1))
	child := NewEnv(root)
	child.Assign("x", Num(2))
	if v, _ := root.Get("x"); v.AsNumber() != 2 {
		t.Fatal("assign should update the existing binding, not shadow it")
	}
}

func TestEnvAssignUnboundDefinesAtRoot(t *testing.T) {
	root := NewEnv(nil)
	child := NewEnv(root)
	child.Assign("fresh", Num(9))
	if v, ok := root.Get("fresh"); !ok || v.AsNumber() != 9 {
		t.Fatal("assigning an unbound name should bind it at the root")
	}
}

func TestEnvDefineShadows(t *testing.T) {
	root := NewEnv(nil)
	root.Define("item", Num(1))
	child := NewEnv(root)
	child.Define("item", Num(2))
	if v, _ := child.Get("item"); v.AsNumber() != 2 {
		t.Fatal("child frame should shadow")
	}
	if v, _ := root.Get("item"); v.AsNumber() != 1 {
		t.Fatal("root binding must be untouched")
	}
}
