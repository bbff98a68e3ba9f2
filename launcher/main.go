package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// waitHealth espera o /health do servidor responder.
func waitHealth(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("servidor não respondeu em %v", timeout)
}

func main() {
	port := flag.Int("port", 8080, "Porta do servidor")
	flag.Parse()

	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║          NeroView Launcher           ║")
	fmt.Println("╚══════════════════════════════════════╝")

	addr := fmt.Sprintf("127.0.0.1:%d", *port)

	// 1. Iniciar o Servidor (no Windows, numa janela própria para ver os logs)
	fmt.Println("[1/2] Iniciando Servidor...")
	serverExe, err := filepath.Abs(filepath.Join("servidor", exeName("server")))
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do servidor: %v", err)
	}
	var serverCmd *exec.Cmd
	if runtime.GOOS == "windows" {
		serverCmd = exec.Command("cmd", "/c", "start", "NeroView SERVER", serverExe, "-addr", addr)
	} else {
		serverCmd = exec.Command(serverExe, "-addr", addr)
		serverCmd.Stdout = os.Stdout
		serverCmd.Stderr = os.Stderr
	}
	serverCmd.Dir = "servidor"
	if err := serverCmd.Start(); err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}

	// 2. Aguardar o servidor responder
	fmt.Println("Aguardando inicialização do servidor...")
	if err := waitHealth("http://"+addr+"/health", 15*time.Second); err != nil {
		log.Fatalf("Erro: %v", err)
	}

	// 3. Iniciar o Cliente
	fmt.Println("[2/2] Abrindo Cliente...")
	absClientPath, err := filepath.Abs(filepath.Join("cliente", exeName("client")))
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do cliente: %v", err)
	}

	clientCmd := exec.Command(absClientPath, "-server", "ws://"+addr+"/ws", "-templates", filepath.Join("..", "data"))
	clientCmd.Dir = "cliente"

	if err := clientCmd.Start(); err != nil {
		fmt.Printf("ERRO CRÍTICO: Não foi possível executar o cliente em %s\n", absClientPath)
		fmt.Printf("Detalhes: %v\n", err)
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
		return
	}

	fmt.Println("\nSucesso! NeroView foi iniciado.")
	if runtime.GOOS == "windows" {
		fmt.Println("O Launcher fechará automaticamente em 2 segundos...")
		time.Sleep(2 * time.Second)
		return
	}

	// Fora do Windows o servidor é filho deste processo: encerra junto com o cliente
	clientCmd.Wait()
	serverCmd.Process.Signal(os.Interrupt)
	serverCmd.Wait()
}
