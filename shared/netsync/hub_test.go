package netsync

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
)

func waitFrames(t *testing.T, c *Client, n int) []Frame {
	t.Helper()
	var got []Frame
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		got = append(got, c.Drain()...)
		if len(got) >= n {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("recebidos %d frames, want %d", len(got), n)
	return nil
}

func TestHubStreamsFramesToClient(t *testing.T) {
	w := sim.NewWorld(1)
	w.Add(2, "walker", mgl32.Vec3{1, 2, 3}, mgl32.Vec3{})

	hub := NewHub()
	hub.OnConnect = func() []byte {
		f := Snapshot(w, 0)
		return EncodeFrame(&f)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	c := NewClient("ws" + strings.TrimPrefix(srv.URL, "http") + "/ws")
	c.MaxRetries = 1
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Close()

	snap := waitFrames(t, c, 1)
	if len(snap[0].Updates) != 1 || snap[0].Updates[0].Position != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("snapshot = %+v", snap[0])
	}

	target := newWorldTarget()
	Apply(&snap[0], target)
	if target.world.Len() != 1 {
		t.Fatalf("mundo do cliente com %d entidades", target.world.Len())
	}

	e, _ := w.Get(1)
	e.ClearDirty()
	e.SetPosition(mgl32.Vec3{5, 5, 5})
	f := Collect(w, 1, nil)
	hub.BroadcastFrame(&f)

	frames := waitFrames(t, c, 1)
	Apply(&frames[0], target)
	got, _ := target.world.Get(1)
	if got.Position() != (mgl32.Vec3{5, 5, 5}) {
		t.Errorf("posição no cliente = %v", got.Position())
	}
	if !c.IsConnected() {
		t.Error("cliente deveria continuar conectado")
	}
}

func TestHubSnapshotArrivesBeforeConcurrentFrames(t *testing.T) {
	w := sim.NewWorld(1)
	w.Add(2, "walker", mgl32.Vec3{}, mgl32.Vec3{})
	w.Add(2, "walker", mgl32.Vec3{}, mgl32.Vec3{})

	hub := NewHub()
	hub.OnConnect = func() []byte {
		f := Snapshot(w, 4)
		// Um tick do servidor acontece enquanto o snapshot é montado
		w.Remove(2)
		next := Collect(w, 5, []sim.ID{2})
		hub.BroadcastFrame(&next)
		time.Sleep(100 * time.Millisecond)
		return EncodeFrame(&f)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	c := NewClient("ws" + strings.TrimPrefix(srv.URL, "http") + "/ws")
	c.MaxRetries = 1
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Close()

	frames := waitFrames(t, c, 2)
	if frames[0].Tick != 4 || frames[1].Tick != 5 {
		t.Fatalf("ticks = %d, %d, want 4, 5", frames[0].Tick, frames[1].Tick)
	}

	target := newWorldTarget()
	for i := range frames {
		Apply(&frames[i], target)
	}
	if _, ok := target.world.Get(2); ok {
		t.Error("entidade removida pelo servidor voltou no cliente")
	}
	if target.world.Len() != 1 {
		t.Errorf("mundo do cliente com %d entidades, want 1", target.world.Len())
	}
}
