package discovery

import (
	"testing"
	"time"
)

func TestPickerRoundRobin(t *testing.T) {
	instances := []Instance{
		{Addr: "127.0.0.1:9877"},
		{Addr: "127.0.0.1:9878"},
	}
	p := &Picker{}

	first, err := p.Pick(instances)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := p.Pick(instances)
	third, _ := p.Pick(instances)

	if first.Addr != "127.0.0.1:9877" || second.Addr != "127.0.0.1:9878" {
		t.Fatalf("rotation broken: %s, %s", first.Addr, second.Addr)
	}
	if third.Addr != first.Addr {
		t.Fatalf("rotation should wrap, got %s", third.Addr)
	}
}

func TestPickerEmpty(t *testing.T) {
	p := &Picker{}
	if _, err := p.Pick(nil); err == nil {
		t.Fatal("expected error for empty instance list")
	}
}

func TestEtcdRegisterDiscover(t *testing.T) {
	reg, err := NewEtcdRegistry([]string{"localhost:2379"})
	if err != nil {
		t.Skipf("etcd not reachable: %v", err)
	}
	defer reg.Close()

	inst := Instance{Addr: "127.0.0.1:9877", Version: "test"}
	if err := reg.Register(inst, 10); err != nil {
		t.Skipf("etcd not reachable: %v", err)
	}
	defer reg.Deregister(inst.Addr)

	instances, err := reg.Discover()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, got := range instances {
		if got.Addr == inst.Addr {
			found = true
		}
	}
	if !found {
		t.Fatalf("registered instance not discovered: %v", instances)
	}

	if err := reg.Deregister(inst.Addr); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	instances, _ = reg.Discover()
	for _, got := range instances {
		if got.Addr == inst.Addr {
			t.Fatal("instance still listed after deregister")
		}
	}
}
