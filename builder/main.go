package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"NeroView/shared/logger"
	"NeroView/shared/templatestore"
)

// Cores para o terminal (ANSI)
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

func main() {
	dataDir := flag.String("data", "data", "Diretório de templates a importar")
	dbPath := flag.String("db", "data/templates.db", "Banco SQLite gerado")
	onlyTemplates := flag.Bool("templates-only", false, "Só importa os templates, sem compilar")
	noPause := flag.Bool("no-pause", false, "Não espera Enter ao terminar")
	flag.Parse()

	logger.Init("warn", "text", nil)

	fmt.Println(ColorCyan + "╔══════════════════════════════════════╗" + ColorReset)
	fmt.Println(ColorCyan + "║        NeroView Native Builder       ║" + ColorReset)
	fmt.Println(ColorCyan + "╚══════════════════════════════════════╝" + ColorReset)

	start := time.Now()

	// 1. Configurar Ambiente
	setupEnvironment()

	// 2. Empacotar templates no SQLite
	if err := importTemplates(*dataDir, *dbPath); err != nil {
		fatal(err, *noPause)
	}
	if *onlyTemplates {
		return
	}

	// 3. Compilar Servidor
	if err := buildComponent("SERVIDOR (CGO + Static)", "servidor", exeName("servidor/server"), true, "-extldflags=-static -s -w"); err != nil {
		fatal(err, *noPause)
	}

	// 4. Compilar Cliente
	clientFlags := "-s -w"
	if runtime.GOOS == "windows" {
		clientFlags = "-extldflags=-static -s -w -H=windowsgui"
	}
	if err := buildComponent("CLIENTE (CGO + GUI)", "cliente", exeName("cliente/client"), true, clientFlags); err != nil {
		fatal(err, *noPause)
	}

	// 5. Compilar Launcher
	if err := buildComponent("LAUNCHER (Pure Go)", "launcher", exeName("NeroView"), false, "-s -w"); err != nil {
		fatal(err, *noPause)
	}

	fmt.Printf("\n"+ColorCyan+"Build finalizada com sucesso em %v!"+ColorReset+"\n", time.Since(start).Round(time.Second))
	fmt.Printf(ColorYellow+"Dica: Execute o '%s' para abrir servidor e cliente."+ColorReset+"\n", exeName("NeroView"))

	if !*noPause {
		fmt.Println("\nPressione Enter para sair...")
		fmt.Scanln()
	}
}

// importTemplates grava os templates XML de dataDir no banco dbPath.
func importTemplates(dataDir, dbPath string) error {
	fmt.Printf(ColorYellow+"\n[+] Importando templates de %s..."+ColorReset+"\n", dataDir)

	store, err := templatestore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.ImportDir(dataDir)
	if err != nil {
		return fmt.Errorf("falha ao importar templates: %v", err)
	}
	fmt.Printf(ColorGreen+"  - %d templates gravados em %s"+ColorReset+"\n", n, filepath.ToSlash(dbPath))
	return nil
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func setupEnvironment() {
	fmt.Println(ColorYellow + "\n[0/4] Configurando ambiente de compilação..." + ColorReset)

	// Adicionar MSYS2 ao PATH se estiver no Windows
	if runtime.GOOS == "windows" {
		msysPath := `C:\msys64\mingw64\bin`
		currentPath := os.Getenv("PATH")
		if !strings.Contains(currentPath, msysPath) {
			os.Setenv("PATH", msysPath+";"+currentPath)
			fmt.Printf("  - PATH atualizado: %s adicionado.\n", msysPath)
		}
		os.Setenv("CC", "gcc")
		fmt.Println("  - Compilador C: gcc (MSYS2)")
	}
}

func buildComponent(name, dir, output string, useCgo bool, ldflags string) error {
	fmt.Printf(ColorYellow+"\n[+] Compilando %s..."+ColorReset+"\n", name)

	cgoValue := "0"
	if useCgo {
		cgoValue = "1"
	}
	os.Setenv("CGO_ENABLED", cgoValue)

	args := []string{"build", "-ldflags", ldflags, "-o", output, "./" + dir}
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("falha ao compilar %s: %v", name, err)
	}

	fmt.Printf(ColorGreen+"  - %s compilado com sucesso -> %s"+ColorReset+"\n", name, output)
	return nil
}

func fatal(err error, noPause bool) {
	fmt.Printf("\n"+ColorRed+"[ERRO FATAL] %v"+ColorReset+"\n", err)
	if !noPause {
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
	}
	os.Exit(1)
}
