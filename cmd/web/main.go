package main

import (
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/byteblaster/internal/config"
	"github.com/tomz197/byteblaster/internal/store"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// pageData fills index.html.
type pageData struct {
	SSHHost   string
	SSHPort   string
	HighScore int
}

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "web server error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := cfg.Log.NewLogger(os.Stderr, "web")
	if err != nil {
		return err
	}
	defer closeLog()

	scores, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer scores.Close()

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	logger.Info("starting web server", "addr", "http://"+addr)
	return http.ListenAndServe(addr, newHandler(cfg, scores, logger))
}

// newHandler serves the landing page and the high score as JSON.
func newHandler(cfg config.Config, scores store.Store, logger *log.Logger) http.Handler {
	best := func() int {
		n, err := scores.Load()
		if err != nil {
			logger.Warn("could not load high score", "err", err)
			return 0
		}
		return n
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{
			SSHHost:   cfg.Web.DisplayHost,
			SSHPort:   cfg.SSH.Port,
			HighScore: best(),
		}
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})
	mux.HandleFunc("GET /api/highscore", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(store.Record{HighScore: best()})
	})
	return mux
}
