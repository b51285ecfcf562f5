package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"dboard/relay"
)

func main() {
	var (
		addr   = flag.String("addr", ":8080", "Listen address")
		static = flag.String("static", "", "Directory of static files to serve at / (optional)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "The board relay: forwards edit batches between the members of each board.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nBoards live at ws://<addr>/ws/<board>.\n")
	}
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	hub := relay.NewHub(log)
	go hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/", func(w http.ResponseWriter, r *http.Request) {
		board := strings.TrimPrefix(r.URL.Path, "/ws/")
		if board == "" {
			http.Error(w, "board name required", http.StatusBadRequest)
			return
		}
		hub.ServeWS(w, r, board)
	})
	if *static != "" {
		mux.Handle("/", http.FileServer(http.Dir(*static)))
	}

	log.Info("relay listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
