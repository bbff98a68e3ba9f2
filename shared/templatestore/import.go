package templatestore

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"NeroView/shared/propmap"
)

// templateRoot é a seção raiz que marca um arquivo como template de objeto.
const templateRoot = "Template"

// ImportDir grava no banco todo XML sob root cuja raiz seja <Template>.
// O nome de cada template é o caminho relativo com barras, o mesmo usado
// pela leitura direta do diretório. Outros XML (partículas) são ignorados.
func (s *Store) ImportDir(root string) (int, error) {
	imported := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}

		pm, err := propmap.LoadXMLFile(path)
		if err != nil {
			return err
		}
		if !pm.HasSection(templateRoot) {
			log.Debugf("Ignorando %s: não é template", path)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if err := s.SaveTemplate(name, pm); err != nil {
			return fmt.Errorf("gravar %s: %w", name, err)
		}
		log.Infof("Template importado: %s", name)
		imported++
		return nil
	})
	return imported, err
}
