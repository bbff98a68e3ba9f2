package propmap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadXML lê um template XML. Cada elemento vira uma seção, atributos viram filhos
// (antes dos elementos) e o texto vira o valor.
func LoadXML(r io.Reader) (*PropertyMap, error) {
	pm := New()
	dec := xml.NewDecoder(r)

	stack := []*node{pm.root}
	text := []string{""}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("falha ao parsear XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			n := &node{name: t.Name.Local}
			for _, a := range t.Attr {
				n.children = append(n.children, &node{name: a.Name.Local, value: a.Value})
			}
			parent.children = append(parent.children, n)
			stack = append(stack, n)
			text = append(text, "")
		case xml.CharData:
			text[len(text)-1] += string(t)
		case xml.EndElement:
			if len(stack) < 2 {
				return nil, fmt.Errorf("elemento de fechamento inesperado: %s", t.Name.Local)
			}
			n := stack[len(stack)-1]
			n.value = strings.TrimSpace(text[len(text)-1])
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("XML truncado")
	}
	return pm, nil
}

// LoadXMLFile abre e lê um template XML do disco.
func LoadXMLFile(path string) (*PropertyMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir template %s: %w", path, err)
	}
	defer f.Close()

	pm, err := LoadXML(f)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return pm, nil
}
