package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"NeroView/cliente/internal/scene"
	"NeroView/shared/propmap"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Texture é uma textura na GPU, indexada pelo caminho do template.
type Texture struct {
	name string
	tex  rl.Texture2D
}

func (t *Texture) Name() string { return t.name }

// resolve junta o caminho ao AssetDir e confere se o arquivo existe.
func (r *Renderer) resolve(path string) (string, error) {
	full := filepath.FromSlash(path)
	if !filepath.IsAbs(full) && r.AssetDir != "" {
		full = filepath.Join(r.AssetDir, full)
	}
	if _, err := os.Stat(full); err != nil {
		return "", fmt.Errorf("asset %s: %w", path, err)
	}
	return full, nil
}

// primitivePrefix marca malhas geradas em memória, ex: "gen:cube".
const primitivePrefix = "gen:"

// Primitivas de tamanho 1. O cubo e a esfera ficam centrados na origem;
// cilindro e cone partem dela para cima.
var primitives = map[string]func() rl.Mesh{
	"cube":     func() rl.Mesh { return rl.GenMeshCube(1, 1, 1) },
	"sphere":   func() rl.Mesh { return rl.GenMeshSphere(0.5, 12, 16) },
	"cylinder": func() rl.Mesh { return rl.GenMeshCylinder(0.5, 1, 16) },
	"cone":     func() rl.Mesh { return rl.GenMeshCone(0.5, 1, 16) },
}

// LoadAnimatedMesh carrega (ou reaproveita) o modelo e as animações do arquivo.
func (r *Renderer) LoadAnimatedMesh(path string) (scene.Mesh, error) {
	if m, ok := r.meshes[path]; ok {
		return m, nil
	}

	var model rl.Model
	var anims []rl.ModelAnimation
	if name, ok := strings.CutPrefix(path, primitivePrefix); ok {
		gen, ok := primitives[name]
		if !ok {
			return nil, fmt.Errorf("primitiva desconhecida: %s", name)
		}
		if !r.gpu {
			return nil, fmt.Errorf("malha %s exige janela aberta", path)
		}
		model = rl.LoadModelFromMesh(gen())
	} else {
		full, err := r.resolve(path)
		if err != nil {
			return nil, err
		}
		if !r.gpu {
			return nil, fmt.Errorf("malha %s exige janela aberta", path)
		}
		model = rl.LoadModel(full)
		if !rl.IsModelValid(model) {
			return nil, fmt.Errorf("malha %s não carregou", path)
		}
		anims = rl.LoadModelAnimations(full)
	}

	m := &Mesh{
		name:  path,
		model: model,
		anims: anims,
		box:   boxFromRL(rl.GetModelBoundingBox(model)),
		refs:  1, // referência do cache
	}
	m.unload = func(m *Mesh) {
		if len(m.anims) > 0 {
			rl.UnloadModelAnimations(m.anims)
		}
		rl.UnloadModel(m.model)
		delete(r.meshes, m.name)
		log.Debugf("Malha descarregada: %s", m.name)
	}
	r.meshes[path] = m

	log.Infof("Malha carregada: %s (%d malhas, %d animações)", path, model.MeshCount, len(m.anims))
	return m, nil
}

// LoadTexture carrega a textura com mipmaps e filtro trilinear.
func (r *Renderer) LoadTexture(path string) (scene.Texture, error) {
	if t, ok := r.textures[path]; ok {
		return t, nil
	}
	full, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	if !r.gpu {
		return nil, fmt.Errorf("textura %s exige janela aberta", path)
	}

	tex := rl.LoadTexture(full)
	if tex.ID == 0 {
		return nil, fmt.Errorf("textura %s não carregou", path)
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	rl.SetTextureWrap(tex, rl.WrapRepeat)

	t := &Texture{name: path, tex: tex}
	r.textures[path] = t
	log.Debugf("Textura carregada: %s", path)
	return t, nil
}

// LoadShader compila o par de arquivos e registra um novo tipo de material.
// O mesmo par devolve sempre o mesmo tipo.
func (r *Renderer) LoadShader(vertPath, fragPath string) (scene.MaterialType, error) {
	key := vertPath + "|" + fragPath
	if t, ok := r.shaderPairs[key]; ok {
		return t, nil
	}
	vert, err := r.resolve(vertPath)
	if err != nil {
		return scene.MaterialSolid, err
	}
	frag, err := r.resolve(fragPath)
	if err != nil {
		return scene.MaterialSolid, err
	}
	if !r.gpu {
		return scene.MaterialSolid, fmt.Errorf("shader %s exige janela aberta", key)
	}

	s := rl.LoadShader(vert, frag)
	if !rl.IsShaderValid(s) {
		return scene.MaterialSolid, fmt.Errorf("shader %s não compilou", key)
	}

	t := r.nextShader
	r.nextShader++
	r.shaders[t] = s
	r.shaderPairs[key] = t
	log.Infof("Shader %s registrado como material %d", key, t)
	return t, nil
}

func (r *Renderer) loadParticleDescriptor(descriptor string) (ParticleDescriptor, error) {
	path, err := r.resolve(descriptor)
	if err != nil {
		return ParticleDescriptor{}, err
	}
	pm, err := propmap.LoadXMLFile(path)
	if err != nil {
		return ParticleDescriptor{}, err
	}
	desc, err := ParseParticleDescriptor(pm)
	if err != nil {
		return ParticleDescriptor{}, fmt.Errorf("partículas %s: %w", descriptor, err)
	}
	return desc, nil
}
