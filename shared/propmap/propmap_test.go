package propmap

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const walkerXML = `<?xml version="1.0"?>
<Template>
  <Render>
    <AniMesh>ogre.mesh</AniMesh>
    <Texture0>skin.png</Texture0>
    <MaterialFlagLighting>false</MaterialFlagLighting>
    <Texture1>detail.png</Texture1>
    <Scale>(2, 2, 3)</Scale>
    <ScaleTexture>4 8</ScaleTexture>
    <Footprints Frames="5">
      <Trail>3</Trail>
      <Object>footprint_decal</Object>
    </Footprints>
  </Render>
</Template>`

func TestLoadXMLPreservesOrder(t *testing.T) {
	pm, err := LoadXML(strings.NewReader(walkerXML))
	if err != nil {
		t.Fatalf("LoadXML: %v", err)
	}

	got := pm.Children("Template.Render")
	want := []string{"AniMesh", "Texture0", "MaterialFlagLighting", "Texture1", "Scale", "ScaleTexture", "Footprints"}
	if len(got) != len(want) {
		t.Fatalf("Children = %v, want keys %v", got, want)
	}
	for i := range want {
		if got[i].Key != want[i] {
			t.Errorf("Children[%d] = %q, want %q", i, got[i].Key, want[i])
		}
	}
	if got[1].Value != "skin.png" {
		t.Errorf("Texture0 = %q", got[1].Value)
	}
}

func TestTypedGetters(t *testing.T) {
	pm, err := LoadXML(strings.NewReader(walkerXML))
	if err != nil {
		t.Fatal(err)
	}

	if v, ok := pm.GetVec3("Template.Render.Scale"); !ok || v != (mgl32.Vec3{2, 2, 3}) {
		t.Errorf("GetVec3 = %v,%v", v, ok)
	}
	if v, ok := pm.GetVec2("Template.Render.ScaleTexture"); !ok || v != (mgl32.Vec2{4, 8}) {
		t.Errorf("GetVec2 = %v,%v", v, ok)
	}
	if v, ok := pm.GetUint32("Template.Render.Footprints.Frames"); !ok || v != 5 {
		t.Errorf("Frames (atributo) = %v,%v", v, ok)
	}
	if v, ok := pm.GetBool("Template.Render.MaterialFlagLighting"); !ok || v {
		t.Errorf("GetBool = %v,%v", v, ok)
	}
	if _, ok := pm.GetFloat32("Template.Render.AniMesh"); ok {
		t.Error("GetFloat32 de texto deveria falhar")
	}
	if _, ok := pm.GetString("Template.Render.Missing"); ok {
		t.Error("chave ausente reportada como presente")
	}
	if !pm.HasSection("Template.Render.Footprints") {
		t.Error("HasSection(Footprints) = false")
	}
}

func TestFlattenRebuildsSameMap(t *testing.T) {
	pm, err := LoadXML(strings.NewReader(walkerXML))
	if err != nil {
		t.Fatal(err)
	}

	rebuilt := New()
	for _, p := range pm.Flatten() {
		rebuilt.Set(p.Key, p.Value)
	}

	a, b := pm.Flatten(), rebuilt.Flatten()
	if len(a) != len(b) {
		t.Fatalf("len = %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Flatten[%d] = %v, want %v", i, b[i], a[i])
		}
	}
}

func TestLoadXMLRejectsBrokenDocument(t *testing.T) {
	if _, err := LoadXML(strings.NewReader("<Template><Render>")); err == nil {
		t.Error("esperado erro para XML truncado")
	}
}
