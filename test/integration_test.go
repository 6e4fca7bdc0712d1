// Package test exercises the full daemon stack end to end: client
// reconnection, discovery resolution, and concurrent control surfaces
// against one live server.
package test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"livebridge/bridge"
	"livebridge/client"
	"livebridge/commands"
	"livebridge/discovery"
	"livebridge/live"
	"livebridge/middleware"
	"livebridge/router"
	"livebridge/server"
)

// mockRegistry keeps instance listings in memory so discovery paths are
// testable without etcd.
type mockRegistry struct {
	mu        sync.Mutex
	instances []discovery.Instance
}

func (m *mockRegistry) Register(inst discovery.Instance, ttl int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instances = append(m.instances, inst)
	return nil
}

func (m *mockRegistry) Deregister(addr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, inst := range m.instances {
		if inst.Addr == addr {
			m.instances = append(m.instances[:i], m.instances[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockRegistry) Discover() ([]discovery.Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]discovery.Instance(nil), m.instances...), nil
}

func (m *mockRegistry) Watch() <-chan []discovery.Instance { return nil }

func startDaemon(t testing.TB, opts server.Options) *server.Server {
	t.Helper()
	song := live.NewSong()
	looper := live.NewLooper()
	t.Cleanup(looper.Close)

	table := router.NewTable()
	commands.Register(table, song)

	r := router.New(table, bridge.New(looper, time.Second, nil))
	r.Use(middleware.Recovery(nil))

	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:0"
	}
	srv := server.New(r, opts)
	if err := srv.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(srv.Stop)
	return srv
}

func newClient(t testing.TB, opts client.Options) *client.Client {
	t.Helper()
	if opts.ConnectPause == 0 {
		opts.ConnectPause = 10 * time.Millisecond
	}
	if opts.MutateDelay == 0 {
		opts.MutateDelay = time.Millisecond
	}
	c := client.New(opts)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestFullStackSession(t *testing.T) {
	srv := startDaemon(t, server.Options{})
	cli := newClient(t, client.Options{Addr: srv.Addr()})

	if _, err := cli.SendCommand("create_midi_track", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := cli.SendCommand("set_track_name", map[string]any{
		"track_index": 0, "name": "Drums",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := cli.SendCommand("create_clip", map[string]any{
		"track_index": 0, "clip_index": 0, "length": 4,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := cli.SendCommand("fire_clip", map[string]any{
		"track_index": 0, "clip_index": 0,
	}); err != nil {
		t.Fatal(err)
	}

	result, err := cli.SendCommand("get_playback_position", nil)
	if err != nil {
		t.Fatal(err)
	}
	pos := result.(map[string]any)
	if pos["is_playing"] != true {
		t.Fatalf("transport should be running: %#v", pos)
	}

	result, err = cli.SendCommand("get_track_info", map[string]any{"track_index": 0})
	if err != nil {
		t.Fatal(err)
	}
	info := result.(map[string]any)
	if info["name"] != "Drums" {
		t.Fatalf("name = %v", info["name"])
	}
}

func TestDiscoveryResolution(t *testing.T) {
	srv := startDaemon(t, server.Options{})

	reg := &mockRegistry{}
	if err := reg.Register(discovery.Instance{Addr: srv.Addr()}, 10); err != nil {
		t.Fatal(err)
	}

	cli := newClient(t, client.Options{Registry: reg})
	result, err := cli.SendCommand("health_check", nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.(map[string]any)["status"] != "ok" {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestConcurrentControlSurfaces(t *testing.T) {
	srv := startDaemon(t, server.Options{})

	seed := newClient(t, client.Options{Addr: srv.Addr()})
	for i := 0; i < 4; i++ {
		if _, err := seed.SendCommand("create_midi_track", nil); err != nil {
			t.Fatal(err)
		}
	}

	const surfaces = 4
	var wg sync.WaitGroup
	errs := make(chan error, surfaces)
	for i := 0; i < surfaces; i++ {
		wg.Add(1)
		go func(trackIndex int) {
			defer wg.Done()
			cli := client.New(client.Options{
				Addr:         srv.Addr(),
				ConnectPause: 10 * time.Millisecond,
				MutateDelay:  time.Millisecond,
			})
			defer cli.Close()

			for j := 0; j < 5; j++ {
				if _, err := cli.SendCommand("set_track_volume", map[string]any{
					"track_index": trackIndex, "volume": 0.1 * float64(j+1),
				}); err != nil {
					errs <- fmt.Errorf("surface %d: %w", trackIndex, err)
					return
				}
				if _, err := cli.SendCommand("get_track_info", map[string]any{
					"track_index": trackIndex,
				}); err != nil {
					errs <- fmt.Errorf("surface %d: %w", trackIndex, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	// Every surface's last write must have landed.
	for i := 0; i < surfaces; i++ {
		result, err := seed.SendCommand("get_track_info", map[string]any{"track_index": i})
		if err != nil {
			t.Fatal(err)
		}
		if vol := result.(map[string]any)["volume"]; vol != 0.5 {
			t.Errorf("track %d volume = %v", i, vol)
		}
	}
}
