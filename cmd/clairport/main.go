package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ricardourrutia-support/clairportchile/internal/config"
	"github.com/ricardourrutia-support/clairportchile/internal/server"
	"github.com/ricardourrutia-support/clairportchile/internal/util"
)

var (
	port    = flag.Int("port", 0, "puerto del servidor (sobrescribe config.toml)")
	devMode = flag.Bool("dev", false, "modo desarrollo")
	dataDir = flag.String("dataDir", "", "directorio de datos (sobrescribe config.toml)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Clairport - Consolidador Global de KPIs")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("no se pudo cargar la configuracion, usando valores por defecto: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	resolvedDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("no se pudo crear el directorio de datos: %v", err)
	} else {
		fmt.Printf("Directorio de datos: %s\n", resolvedDir)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("Servicio escuchando en el puerto %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("no se pudo iniciar el servicio: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("Abriendo navegador: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("No se pudo abrir el navegador, visite manualmente: %s\n", url)
		}
	} else {
		fmt.Printf("Modo desarrollo: visite %s\n", url)
	}

	fmt.Println("\nPresione Ctrl+C para detener el servicio...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nCerrando servicio...")
	if err := srv.Close(); err != nil {
		log.Printf("error al cerrar: %v", err)
	}
}
