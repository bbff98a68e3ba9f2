package netsync

import (
	"errors"
	"image/color"
	"testing"

	"NeroView/shared/sim"

	"github.com/go-gl/mathgl/mgl32"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestFrameRoundTrip(t *testing.T) {
	in := Frame{
		Tick: 1234,
		Updates: []EntityUpdate{
			{
				ID: 7, Kind: 3, Dirty: sim.DirtyAll,
				Position: mgl32.Vec3{1.5, -2, 3},
				Rotation: mgl32.Vec3{0, 0, 90},
				Scale:    mgl32.Vec3{1, 1, 2},
				Label:    "agente 7",
				Color:    color.RGBA{10, 20, 30, 255},
				Template: "shapes/walker/Walker.xml",
			},
			{ID: 8, Dirty: sim.DirtyPosition, Position: mgl32.Vec3{4, 5, 6}},
			{ID: 9, Removed: true},
		},
	}

	env := EncodeFrame(&in)
	var e Envelope
	if err := e.Unmarshal(env); err != nil {
		t.Fatalf("Envelope.Unmarshal: %v", err)
	}
	if e.Type != MsgFrame {
		t.Fatalf("Type = %d, want %d", e.Type, MsgFrame)
	}

	var out Frame
	if err := out.Unmarshal(e.Payload); err != nil {
		t.Fatalf("Frame.Unmarshal: %v", err)
	}
	if out.Tick != in.Tick || len(out.Updates) != len(in.Updates) {
		t.Fatalf("frame = %+v", out)
	}
	for i := range in.Updates {
		if out.Updates[i] != in.Updates[i] {
			t.Errorf("update %d = %+v, want %+v", i, out.Updates[i], in.Updates[i])
		}
	}
}

func TestEntityUpdateOmitsCleanFields(t *testing.T) {
	u := EntityUpdate{ID: 1, Dirty: sim.DirtyLabel, Position: mgl32.Vec3{9, 9, 9}, Label: "x"}

	var out EntityUpdate
	if err := out.Unmarshal(u.Marshal()); err != nil {
		t.Fatal(err)
	}
	if out.Position != (mgl32.Vec3{}) {
		t.Errorf("posição limpa foi enviada: %v", out.Position)
	}
	if out.Label != "x" {
		t.Errorf("Label = %q", out.Label)
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	u := EntityUpdate{ID: 5, Dirty: sim.DirtyPosition, Position: mgl32.Vec3{1, 2, 3}}
	b := u.Marshal()
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "campo novo")
	b = protowire.AppendTag(b, 100, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	var out EntityUpdate
	if err := out.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != u {
		t.Errorf("out = %+v, want %+v", out, u)
	}
}

func TestUnmarshalRejectsTruncatedData(t *testing.T) {
	f := Frame{Tick: 1, Updates: []EntityUpdate{{ID: 1, Dirty: sim.DirtyAll, Label: "abc"}}}
	b := f.Marshal()

	var out Frame
	if err := out.Unmarshal(b[:len(b)-2]); err == nil {
		t.Error("frame truncado deveria falhar")
	}
}

func TestStatusRoundTrip(t *testing.T) {
	in := Status{Message: "ok", TickRate: 20, Entities: 4}
	var out Status
	if err := out.Unmarshal(in.Marshal()); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("out = %+v, want %+v", out, in)
	}
}

func TestClientRejectsUnknownMessage(t *testing.T) {
	c := NewClient("ws://unused")
	err := c.handleMessage(&Envelope{Type: 77})
	if !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("handleMessage = %v, want ErrUnknownMessage", err)
	}
}
