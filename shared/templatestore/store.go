// Package templatestore persiste templates (mapas de propriedades) em SQLite via GORM.
package templatestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"NeroView/shared/logger"
	"NeroView/shared/propmap"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound indica que o template não existe no banco.
var ErrNotFound = errors.New("template não encontrado")

// TemplateProp é uma linha do template achatado (caminho completo + valor).
// Ord preserva a ordem de leitura dos filhos, que importa para Texture0..N.
type TemplateProp struct {
	Template  string `gorm:"primaryKey"`
	Ord       int    `gorm:"primaryKey;autoIncrement:false"`
	Path      string
	Value     string
	UpdatedAt time.Time
}

// Store é o repositório de templates.
type Store struct {
	DB *gorm.DB
}

var log = logger.For("templatestore")

// Open abre (ou cria) o banco e roda as migrações.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&TemplateProp{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	log.Infof("Banco de templates aberto: %s", path)
	return &Store{DB: db}, nil
}

// SaveTemplate substitui todas as linhas do template name.
func (s *Store) SaveTemplate(name string, pm *propmap.PropertyMap) error {
	props := pm.Flatten()
	rows := make([]TemplateProp, 0, len(props))
	for i, p := range props {
		rows = append(rows, TemplateProp{Template: name, Ord: i, Path: p.Key, Value: p.Value})
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template = ?", name).Delete(&TemplateProp{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// LoadTemplate reconstrói o mapa de propriedades de name.
func (s *Store) LoadTemplate(name string) (*propmap.PropertyMap, error) {
	var rows []TemplateProp
	if err := s.DB.Where("template = ?", name).Order("ord").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("falha ao ler template %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	pm := propmap.New()
	for _, r := range rows {
		pm.Set(r.Path, r.Value)
	}
	return pm, nil
}

// Names lista os templates gravados, em ordem alfabética.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.DB.Model(&TemplateProp{}).Distinct("template").Order("template").Pluck("template", &names).Error
	return names, err
}

// Close fecha a conexão com o banco.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
