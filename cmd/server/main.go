package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/protektor-crm/orderdesk/internal/config"
	"github.com/protektor-crm/orderdesk/internal/router"
	"github.com/protektor-crm/orderdesk/internal/store"
	"github.com/protektor-crm/orderdesk/internal/ws"
)

func main() {
	cfg := config.Load()

	st := store.New()
	st.Seed()

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, st, hub)

	log.Printf("Starting order desk server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
