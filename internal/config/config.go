package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr     string
	DiskPath       string
	DocumentRoot   string
	AllowedSubnets []string

	OLEDPort     string
	OLEDBaud     int
	OLEDInterval time.Duration
}

func LoadFromEnv() Config {
	docRoot := env("DOCUMENT_ROOT", "")
	if docRoot == "" {
		if wd, err := os.Getwd(); err == nil {
			docRoot = wd
		}
	}

	return Config{
		ListenAddr:     env("LISTEN_ADDR", "0.0.0.0:3000"),
		DiskPath:       env("DISK_PATH", "/"),
		DocumentRoot:   docRoot,
		AllowedSubnets: splitCSV(env("ALLOWED_SUBNETS", "")),
		OLEDPort:       env("OLED_PORT", ""),
		OLEDBaud:       envInt("OLED_BAUD", 115200),
		OLEDInterval:   envDuration("OLED_INTERVAL", 2*time.Second),
	}
}

func env(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
