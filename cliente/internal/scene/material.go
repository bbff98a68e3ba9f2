package scene

import (
	"strings"
)

// MaterialType é o código nativo de material do renderizador.
// Os valores fixos seguem a ordem clássica de pipeline fixo; shaders carregados
// recebem códigos a partir de MaterialCustomBase.
type MaterialType int32

const (
	MaterialSolid MaterialType = iota
	MaterialSolid2Layer
	MaterialLightmap
	MaterialLightmapAdd
	MaterialLightmapM2
	MaterialLightmapM4
	MaterialLightmapLighting
	MaterialLightmapLightingM2
	MaterialLightmapLightingM4
	MaterialDetailMap
	MaterialSphereMap
	MaterialReflection2Layer
	MaterialTransparentAddColor
	MaterialTransparentAlphaChannel
	MaterialTransparentAlphaChannelRef
	MaterialTransparentVertexAlpha
	MaterialTransparentReflection2Layer
	MaterialNormalMapSolid
	MaterialNormalMapTransparentAddColor
	MaterialNormalMapTransparentVertexAlpha
	MaterialParallaxMapSolid
)

// MaterialCustomBase é o primeiro código usado para shaders carregados.
const MaterialCustomBase MaterialType = 1000

// IsTransparent informa se o tipo pede blending.
func (t MaterialType) IsTransparent() bool {
	switch t {
	case MaterialTransparentAddColor, MaterialTransparentAlphaChannel,
		MaterialTransparentAlphaChannelRef, MaterialTransparentVertexAlpha,
		MaterialTransparentReflection2Layer, MaterialNormalMapTransparentAddColor,
		MaterialNormalMapTransparentVertexAlpha:
		return true
	}
	return false
}

var materialTypeTable = map[string]MaterialType{
	"solid":                   MaterialSolid,
	"lightmap":                MaterialLightmap,
	"lightmapadd":             MaterialLightmapAdd,
	"lightmap_mod2":           MaterialLightmapM2,
	"lightmap_mod4":           MaterialLightmapM4,
	"lighting":                MaterialLightmapLighting,
	"lighting_mod2":           MaterialLightmapLightingM2,
	"lighting_mod4":           MaterialLightmapLightingM4,
	"detail":                  MaterialDetailMap,
	"spheremap":               MaterialSphereMap,
	"reflection2layer":        MaterialReflection2Layer,
	"transparentaddcolor":     MaterialTransparentAddColor,
	"transparent_alpha":       MaterialTransparentAlphaChannel,
	"transparent_cutoff":      MaterialTransparentAlphaChannelRef,
	"transparent_vertex":      MaterialTransparentVertexAlpha,
	"transparent_refl_2layer": MaterialTransparentReflection2Layer,
	"normalmap":               MaterialNormalMapSolid,
	"parallaxmap":             MaterialParallaxMapSolid,
}

// ConvertMaterialType traduz o nome de configuração para o tipo nativo.
// Nomes desconhecidos são tratados como base de um par <nome>.vert/<nome>.frag;
// se o shader não carregar, cai em MaterialSolid. Nunca falha.
func ConvertMaterialType(name string, shaders ShaderLoader) MaterialType {
	if t, ok := materialTypeTable[strings.ToLower(name)]; ok {
		return t
	}
	if shaders == nil {
		return MaterialSolid
	}

	t, err := shaders.LoadShader(name+".vert", name+".frag")
	if err != nil {
		log.Warnf("Shader %q não carregou, usando solid: %v", name, err)
		return MaterialSolid
	}
	return t
}

// MaterialFlagKind é a flag booleana de renderização.
// O valor zero (FlagInvalid) significa "flag não reconhecida".
type MaterialFlagKind uint32

const FlagInvalid MaterialFlagKind = 0

const (
	FlagWireframe MaterialFlagKind = 1 << iota
	FlagPointCloud
	FlagGouraudShading
	FlagLighting
	FlagZBuffer
	FlagZWriteEnable
	FlagBackFaceCulling
	FlagBilinearFilter
	FlagTrilinearFilter
	FlagAnisotropicFilter
	FlagFogEnable
	FlagNormalizeNormals
	FlagTextureWrap
)

var materialFlagTable = map[string]MaterialFlagKind{
	"WIREFRAME":          FlagWireframe,
	"POINTCLOUD":         FlagPointCloud,
	"GOURAUD_SHADING":    FlagGouraudShading,
	"LIGHTING":           FlagLighting,
	"ZBUFFER":            FlagZBuffer,
	"ZWRITE_ENABLE":      FlagZWriteEnable,
	"BACK_FACE_CULLING":  FlagBackFaceCulling,
	"BILINEAR_FILTER":    FlagBilinearFilter,
	"TRILINEAR_FILTER":   FlagTrilinearFilter,
	"ANISOTROPIC_FILTER": FlagAnisotropicFilter,
	"FOG_ENABLE":         FlagFogEnable,
	"NORMALIZE_NORMALS":  FlagNormalizeNormals,
	"TEXTURE_WRAP":       FlagTextureWrap,
}

func (k MaterialFlagKind) String() string {
	for name, v := range materialFlagTable {
		if v == k {
			return name
		}
	}
	return "INVALID"
}

// MaterialFlag é o par (flag, valor) aplicado ao material do nó.
type MaterialFlag struct {
	Kind  MaterialFlagKind
	Value bool
}

// Valid informa se a flag foi reconhecida.
func (f MaterialFlag) Valid() bool {
	return f.Kind != FlagInvalid
}

// FlagConverter converte o valor textual de uma flag cujo nome é fixado na construção.
type FlagConverter struct {
	name string
}

// NewFlagConverter normaliza o nome da flag para maiúsculas.
func NewFlagConverter(flagName string) FlagConverter {
	return FlagConverter{name: strings.ToUpper(flagName)}
}

// Convert retorna (flag, true) para "true"/"1", (flag, false) para o resto,
// ou o sentinela inválido se o nome não for conhecido.
func (c FlagConverter) Convert(value string) MaterialFlag {
	kind, ok := materialFlagTable[c.name]
	if !ok {
		return MaterialFlag{}
	}
	v := strings.ToLower(value)
	return MaterialFlag{Kind: kind, Value: v == "true" || v == "1"}
}
