package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"artboard/internal/config"
	"artboard/internal/share"
	"artboard/internal/state"
	"artboard/internal/ui"
)

const autoJoin = "auto"

func main() {
	configPath := flag.String("config", config.DefaultPath(), "settings file")
	shareFlag := flag.Bool("share", false, "mirror the board to viewers on the local network")
	port := flag.Int("port", 0, "mirror port (overrides share.port)")
	join := flag.String("join", "", `mirror URL to view, or "auto" to find one via mDNS`)
	seed := flag.Int64("seed", 0, "random seed (overrides generator.seed)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *shareFlag {
		cfg.Share.Enabled = true
	}
	if *port != 0 {
		cfg.Share.Port = *port
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}

	if *join != "" {
		runViewer(cfg, *join)
	} else {
		runHost(cfg)
	}
}

func newGenerator(cfg config.Config) *state.Generator {
	seed := cfg.Generator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return state.NewSeededGenerator(seed)
}

func runHost(cfg config.Config) {
	log.Println("Starting as HOST")
	c := ui.NewController(app.NewWithID("io.artboard"), cfg, newGenerator(cfg), false)

	if cfg.Share.Enabled {
		hub := share.NewHub()
		c.Board.Board().OnOp = hub.Publish

		stop, err := startHostServer(hub, cfg)
		if err != nil {
			c.HandleError(err)
		} else {
			defer stop()
			c.SetStatus("Sharing at " + share.URL(share.HostIP(), cfg.Share.Port))
		}
	}
	c.Run()
}

// startHostServer serves the mirror and, if configured, advertises it.
// The returned func shuts both down.
func startHostServer(hub *share.Hub, cfg config.Config) (func(), error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Share.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to start mirror on port %d: %w", cfg.Share.Port, err)
	}
	mux := http.NewServeMux()
	mux.Handle(share.BoardPath, hub)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Printf("Mirror listening on port %d", cfg.Share.Port)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Mirror server stopped: %v", err)
		}
	}()

	var stopMDNS func() error
	if cfg.Share.Advertise {
		server, err := share.Advertise(cfg.Share.Port)
		if err != nil {
			log.Printf("mDNS advertisement disabled: %v", err)
		} else {
			stopMDNS = server.Shutdown
		}
	}

	return func() {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		if stopMDNS != nil {
			stopMDNS()
		}
	}, nil
}

func runViewer(cfg config.Config, link string) {
	log.Println("Starting as VIEWER")
	a := app.NewWithID("io.artboard")
	c := ui.NewController(a, cfg, newGenerator(cfg), true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Lifecycle().SetOnStopped(cancel)

	go connectToHost(ctx, c, link)
	c.Run()
}

func connectToHost(ctx context.Context, c *ui.Controller, link string) {
	time.Sleep(500 * time.Millisecond) // Give UI time to launch

	if link == autoJoin {
		fyne.Do(func() { c.SetStatus("Looking for a shared board...") })
		urls, err := share.Browse(3 * time.Second)
		if err == nil && len(urls) == 0 {
			err = errors.New("no shared board found on the local network")
		}
		if err != nil {
			fyne.Do(func() { c.HandleError(err) })
			return
		}
		link = urls[0]
	}

	fyne.Do(func() { c.SetStatus("Connecting to " + link) })
	err := share.Join(ctx, link, func(op state.Op) {
		fyne.Do(func() { c.Board.Apply(op) })
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fyne.Do(func() {
			c.HandleError(fmt.Errorf("disconnected from host: %w", err))
		})
	}
}
