package scene

import (
	"fmt"
	"path/filepath"

	"NeroView/shared/propmap"
)

// TemplateSource fornece o mapa de propriedades de um template pelo nome.
type TemplateSource interface {
	LoadTemplate(name string) (*propmap.PropertyMap, error)
}

// DirSource lê templates XML a partir de um diretório raiz.
// O nome é o caminho relativo, ex: "shapes/walker/Walker.xml".
type DirSource struct {
	Root string
}

func (d DirSource) LoadTemplate(name string) (*propmap.PropertyMap, error) {
	pm, err := propmap.LoadXMLFile(filepath.Join(d.Root, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return pm, nil
}

type cachedTemplate struct {
	tmpl *VisualTemplate
	refs int
}

// TemplateCache compartilha um VisualTemplate entre as instâncias que usam o
// mesmo nome, com contagem de referências.
type TemplateCache struct {
	source  TemplateSource
	assets  AssetLoader
	entries map[string]*cachedTemplate
}

func NewTemplateCache(source TemplateSource, assets AssetLoader) *TemplateCache {
	return &TemplateCache{
		source:  source,
		assets:  assets,
		entries: make(map[string]*cachedTemplate),
	}
}

// Acquire retorna o template, carregando-o no primeiro uso.
func (c *TemplateCache) Acquire(name string) (*VisualTemplate, error) {
	if e, ok := c.entries[name]; ok {
		e.refs++
		return e.tmpl, nil
	}

	pm, err := c.source.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := ParseTemplate(pm, c.assets)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	c.entries[name] = &cachedTemplate{tmpl: tmpl, refs: 1}
	log.Debugf("Template %s carregado", name)
	return tmpl, nil
}

// Release devolve uma referência. Na última, o template é liberado.
func (c *TemplateCache) Release(name string) {
	e, ok := c.entries[name]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		e.tmpl.Release()
		delete(c.entries, name)
		log.Debugf("Template %s liberado", name)
	}
}

// Refs retorna quantas referências o template tem.
func (c *TemplateCache) Refs(name string) int {
	if e, ok := c.entries[name]; ok {
		return e.refs
	}
	return 0
}

// Len retorna o número de templates carregados.
func (c *TemplateCache) Len() int {
	return len(c.entries)
}

// Clear libera todos os templates, independente das referências.
func (c *TemplateCache) Clear() {
	for name, e := range c.entries {
		e.tmpl.Release()
		delete(c.entries, name)
	}
}
