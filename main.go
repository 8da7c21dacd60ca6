package main

import (
	"github.com/yangezz/paste_service/config"
	"github.com/yangezz/paste_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
