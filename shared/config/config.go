package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do NeroView (cliente, servidor e ferramentas).
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Servidor de simulação
	ListenAddr string  `json:"listen_addr"`
	TickRate   float32 `json:"tick_rate"` // ticks por segundo
	Walkers    int     `json:"walkers"`   // agentes de demonstração

	// Cliente
	ServerURL string `json:"server_url"` // vazio = mundo local de demonstração

	// Templates
	TemplateDir    string `json:"template_dir"`
	TemplateDB     string `json:"template_db"`     // vazio = lê XML direto de TemplateDir
	WalkerTemplate string `json:"walker_template"` // template usado pelos agentes
	Scenery        string `json:"scenery"`         // objeto fixo na origem; vazio = nenhum

	// Câmera
	CameraSpeed       float32 `json:"camera_speed"`
	CameraSensitivity float32 `json:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed"`

	// Log
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	ShowGrid      bool `json:"show_grid"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "NeroView",
		Fullscreen:   false,
		TargetFPS:    60,

		ListenAddr: ":8080",
		TickRate:   20,
		Walkers:    4,

		ServerURL: "",

		TemplateDir:    "data",
		TemplateDB:     "",
		WalkerTemplate: "shapes/walker/Walker.xml",
		Scenery:        "shapes/campfire/Campfire.xml",

		CameraSpeed:       10.0,
		CameraSensitivity: 0.3,
		ZoomSpeed:         5.0,

		LogLevel:  "info",
		LogFormat: "text",

		ShowDebugInfo: true,
		ShowGrid:      true,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações do JSON ao lado do executável.
// Se o arquivo não existir ou for inválido, retorna as configurações padrão.
func Load() *Config {
	return LoadFrom(configPath())
}

// LoadFrom carrega as configurações de um caminho explícito.
func LoadFrom(path string) *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	return c.SaveTo(configPath())
}

// SaveTo salva as configurações em um caminho explícito.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
