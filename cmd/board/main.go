package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dboard/editor"
	"dboard/export"
	"dboard/scene"
	"dboard/terminal"
	"dboard/wire"
)

func main() {
	var (
		board    = flag.String("board", "default", "Board name to join")
		user     = flag.String("user", "", "User id (a fresh uuid if empty)")
		relayURL = flag.String("relay", "", "Relay websocket URL, e.g. ws://localhost:8080/ws (offline if empty)")
		file     = flag.String("file", "", "Board file to load and save")
		exportTo = flag.String("export", "", "Render the board to a PNG and exit")
		verbose  = flag.Bool("v", false, "Log to stderr")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "An interactive collaborative board editor.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                   # Offline board\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file team.board                  # Load and edit a saved board\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -relay ws://host:8080/ws -board x # Join a shared board\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file team.board -export out.png  # Headless PNG export\n", os.Args[0])
	}
	flag.Parse()

	log := slog.New(slog.DiscardHandler)
	if *verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	store := scene.NewStore()
	if *file != "" {
		if loaded, err := scene.LoadBoard(*file); err == nil {
			store = loaded
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *file, err)
			os.Exit(1)
		}
	}

	if *exportTo != "" {
		if err := export.SavePNG(*exportTo, store); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *user == "" {
		*user = uuid.NewString()
	}
	ctrl := editor.NewController(store, *board, *user)

	app, err := terminal.NewApp(ctrl, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting terminal: %v\n", err)
		os.Exit(1)
	}
	if *file != "" {
		filename := *file
		app.OnSave = func(s *scene.Store) error {
			return scene.SaveBoard(filename, s)
		}
	}

	var conn *websocket.Conn
	if *relayURL != "" {
		conn, err = dialRelay(*relayURL, *board, *user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to relay: %v\n", err)
			os.Exit(1)
		}
		defer conn.Close()
		app.Send = sender(conn, log)
		go receive(conn, app, log)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func dialRelay(base, board, user string) (*websocket.Conn, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("relay url: %w", err)
	}
	u.Path = u.Path + "/" + board
	q := u.Query()
	q.Set("user", user)
	u.RawQuery = q.Encode()
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u, err)
	}
	return conn, nil
}

// sender pushes drained events through the coalescing batcher and writes
// each full batch to the relay.
func sender(conn *websocket.Conn, log *slog.Logger) func([]wire.Event) {
	batcher := wire.NewBatcher()
	write := func(batch []wire.Event) {
		if len(batch) == 0 {
			return
		}
		data, err := wire.Encode(batch)
		if err != nil {
			log.Error("encode batch", "err", err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn("relay write failed", "err", err)
		}
	}
	return func(events []wire.Event) {
		for _, ev := range events {
			write(batcher.Push(ev))
		}
		write(batcher.Flush())
	}
}

func receive(conn *websocket.Conn, app *terminal.App, log *slog.Logger) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Warn("relay read failed", "err", err)
			return
		}
		events, err := wire.DecodeBatch(data)
		if err != nil {
			log.Warn("dropping malformed batch", "err", err)
			continue
		}
		app.Deliver(events)
	}
}
