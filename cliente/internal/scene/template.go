package scene

import (
	"errors"
	"fmt"
	"strings"

	"NeroView/shared/logger"
	"NeroView/shared/propmap"

	"github.com/go-gl/mathgl/mgl32"
)

var log = logger.For("scene")

// ErrInvalidTemplate indica seção obrigatória ausente ou inválida.
var ErrInvalidTemplate = errors.New("template inválido")

const (
	renderSection     = "Template.Render"
	footprintsSection = renderSection + ".Footprints"
	fpsCameraSection  = renderSection + ".FPSCamera"

	texturePrefix      = "Texture"
	materialFlagPrefix = "MaterialFlag"

	defaultAnimationSpeed = 25
)

// FootprintTemplate descreve o rastro de pegadas: a cada Frames passos cria um
// Object, mantendo no máximo Trail deles.
type FootprintTemplate struct {
	Frames uint32
	Trail  uint32
	Object string
}

// FPSCameraTemplate descreve como prender uma câmera em primeira pessoa.
type FPSCameraTemplate struct {
	AttachPoint mgl32.Vec3 // relativo ao centro do corpo
	Target      mgl32.Vec3
	NearPlane   float32
	FarPlane    float32
}

func (c *FPSCameraTemplate) String() string {
	return fmt.Sprintf("<FPSCamera attach_point=%v target=%v near_plane=%g far_plane=%g>",
		c.AttachPoint, c.Target, c.NearPlane, c.FarPlane)
}

// VisualTemplate é o molde imutável compartilhado por todas as instâncias
// criadas da mesma configuração.
type VisualTemplate struct {
	Mesh           Mesh
	Textures       []Texture
	Heightmap      string
	ParticleSystem string
	MaterialType   MaterialType
	MaterialFlags  []MaterialFlag
	Scale          mgl32.Vec3
	TextureScale   mgl32.Vec2

	CastsShadow     bool
	DrawBoundingBox bool
	DrawLabel       bool
	AnimationSpeed  float32

	Footprints *FootprintTemplate
	FPSCamera  *FPSCameraTemplate
}

// ParseTemplate resolve o mapa de propriedades em um VisualTemplate.
// Só seções obrigatórias ausentes (parâmetros de pegadas) geram erro;
// o resto cai nos padrões.
func ParseTemplate(pm *propmap.PropertyMap, assets AssetLoader) (*VisualTemplate, error) {
	if assets == nil {
		panic("scene: ParseTemplate sem AssetLoader")
	}

	t := &VisualTemplate{
		MaterialType:   MaterialSolid,
		Scale:          mgl32.Vec3{1, 1, 1},
		TextureScale:   mgl32.Vec2{1, 1},
		AnimationSpeed: defaultAnimationSpeed,
	}

	if path, ok := pm.GetString(renderSection + ".AniMesh"); ok && path != "" {
		mesh, err := assets.LoadAnimatedMesh(path)
		if err != nil {
			log.Warnf("Malha %s não carregou: %v", path, err)
		} else {
			mesh.Grab()
			t.Mesh = mesh
		}
	}

	if v, ok := pm.GetBool(renderSection + ".CastsShadow"); ok {
		t.CastsShadow = v
	}
	if v, ok := pm.GetBool(renderSection + ".DrawBoundingBox"); ok {
		t.DrawBoundingBox = v
	}
	if v, ok := pm.GetBool(renderSection + ".DrawLabel"); ok {
		t.DrawLabel = v
	}

	if pm.HasSection(fpsCameraSection) {
		t.FPSCamera = parseFPSCamera(pm)
		log.Debugf("Objeto usa câmera FPS %v", t.FPSCamera)
	}

	if v, ok := pm.GetFloat32(renderSection + ".AnimationSpeed"); ok {
		t.AnimationSpeed = v
		log.Debugf("Velocidade de animação: %g", v)
	}

	if pm.HasSection(footprintsSection) {
		fp, err := parseFootprints(pm)
		if err != nil {
			t.Release()
			return nil, err
		}
		t.Footprints = fp
	}

	t.Heightmap, _ = pm.GetString(renderSection + ".Terrain")
	t.ParticleSystem, _ = pm.GetString(renderSection + ".ParticleSystem")

	for _, prop := range pm.Children(renderSection) {
		if strings.HasPrefix(prop.Key, texturePrefix) {
			tex, err := assets.LoadTexture(prop.Value)
			if err != nil {
				log.Warnf("Textura %s não carregou: %v", prop.Value, err)
			} else {
				t.Textures = append(t.Textures, tex)
			}
		}

		if strings.Contains(prop.Key, materialFlagPrefix) && len(prop.Key) > len(materialFlagPrefix) {
			flag := NewFlagConverter(prop.Key[len(materialFlagPrefix):]).Convert(prop.Value)
			if flag.Valid() {
				t.MaterialFlags = append(t.MaterialFlags, flag)
			} else {
				log.Warnf("Flag de material desconhecida: %s", prop.Key)
			}
		}
	}

	if name, ok := pm.GetString(renderSection + ".MaterialType"); ok {
		t.MaterialType = ConvertMaterialType(name, assets)
	}

	if v, ok := pm.GetVec3(renderSection + ".Scale"); ok {
		t.Scale = v
	}
	if v, ok := pm.GetVec2(renderSection + ".ScaleTexture"); ok {
		t.TextureScale = v
	}

	if t.Mesh != nil {
		dim := t.Mesh.BoundingBox().Extent()
		dim = mgl32.Vec3{dim.X() * t.Scale.X(), dim.Y() * t.Scale.Y(), dim.Z() * t.Scale.Z()}
		vol := dim.X() * dim.Y() * dim.Z()
		if vol < 0 {
			vol = -vol
		}
		log.Debugf("Malha %s carregada com escala %v (dim %v, volume %g)", t.Mesh.Name(), t.Scale, dim, vol)
	}

	return t, nil
}

func parseFootprints(pm *propmap.PropertyMap) (*FootprintTemplate, error) {
	frames, ok := pm.GetUint32(footprintsSection + ".Frames")
	if !ok || frames == 0 {
		return nil, fmt.Errorf("%s.Frames ausente ou zero: %w", footprintsSection, ErrInvalidTemplate)
	}
	trail, ok := pm.GetUint32(footprintsSection + ".Trail")
	if !ok {
		return nil, fmt.Errorf("%s.Trail ausente: %w", footprintsSection, ErrInvalidTemplate)
	}
	object, ok := pm.GetString(footprintsSection + ".Object")
	if !ok || object == "" {
		return nil, fmt.Errorf("%s.Object ausente: %w", footprintsSection, ErrInvalidTemplate)
	}
	return &FootprintTemplate{Frames: frames, Trail: trail, Object: object}, nil
}

func parseFPSCamera(pm *propmap.PropertyMap) *FPSCameraTemplate {
	c := &FPSCameraTemplate{
		Target:    mgl32.Vec3{100, 0, 0},
		NearPlane: 10,
		FarPlane:  1000,
	}
	if v, ok := pm.GetVec3(fpsCameraSection + ".attach_point"); ok {
		c.AttachPoint = v
	}
	if v, ok := pm.GetVec3(fpsCameraSection + ".target"); ok {
		c.Target = v
	}
	if v, ok := pm.GetFloat32(fpsCameraSection + ".near_plane"); ok {
		c.NearPlane = v
	}
	if v, ok := pm.GetFloat32(fpsCameraSection + ".far_plane"); ok {
		c.FarPlane = v
	}
	return c
}

// Release libera a referência à malha. Chamado pelo cache quando o template sai de uso.
func (t *VisualTemplate) Release() {
	if t.Mesh != nil {
		t.Mesh.Drop()
		t.Mesh = nil
	}
}
