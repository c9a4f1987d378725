package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ej8899/homelab-web-server/internal/config"
	"github.com/ej8899/homelab-web-server/internal/httpserver"
	"github.com/ej8899/homelab-web-server/internal/oled"
	"github.com/ej8899/homelab-web-server/internal/sysinfo"
)

func main() {
	cfg := config.LoadFromEnv()

	sys := sysinfo.NewCollector(cfg.DiskPath, cfg.DocumentRoot)

	r, err := httpserver.NewRouter(httpserver.RouterDeps{
		Config: cfg,
		Sys:    sys,
	})
	if err != nil {
		log.Fatalf("router init: %v", err)
	}

	if cfg.OLEDPort != "" {
		disp := oled.NewStatusDisplay(cfg.OLEDPort, cfg.OLEDBaud)
		go disp.Start(context.Background(), func() string {
			return oled.FormatStatus(sys.Build(sysinfo.RequestMeta{RemoteAddr: "127.0.0.1"}))
		}, cfg.OLEDInterval)
		log.Printf("oled status display on %s @ %d baud", cfg.OLEDPort, cfg.OLEDBaud)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Printf("homelab-web-server listening on %s (disk path %s, document root %s)\n",
		cfg.ListenAddr, cfg.DiskPath, cfg.DocumentRoot)

	log.Fatal(srv.ListenAndServe())
}
