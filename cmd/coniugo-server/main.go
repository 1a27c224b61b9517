package main

import (
	"coniugo-backend/lib/configutil"
	"coniugo-backend/lib/scrapers/wordreference"
	"coniugo-backend/lib/scrapestore"
	"coniugo-backend/lib/serviceutil"
	"coniugo-backend/services/conjugation"
	"flag"

	"github.com/go-chi/chi/v5"
)

type Config struct {
	Port int `json:"port"`
	// ApiKey may be a literal or "env:NAME".
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
	Strict  bool   `json:"strict"`
	// Database is the optional scrape history sqlite file.
	Database string `json:"database"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	scraper, err := wordreference.NewClient(wordreference.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Strict:  cfg.Strict,
	})
	if err != nil {
		serviceutil.Fatal("init scraper", err)
	}

	opts := conjugation.Options{
		Scraper: scraper,
		ApiKey:  configutil.Secret(cfg.ApiKey),
	}
	if cfg.Database != "" {
		db, err := scrapestore.Open(cfg.Database)
		if err != nil {
			serviceutil.Fatal("open scrape history", err)
		}
		defer db.Close()
		store := scrapestore.NewStore(db)
		opts.Store = &store
	}

	service := conjugation.NewService(opts)
	router := chi.NewRouter()
	router.Mount("/", service.Routes())

	go serviceutil.StartHttpServer(cfg.Port, router)
	<-ctx.Done()
}
