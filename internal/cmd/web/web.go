// Package web parses site command configuration and starts the HTTP server.
package web

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/nirbhaysingh/portfolio/internal/blog"
	"github.com/nirbhaysingh/portfolio/internal/blog/source"
	"github.com/nirbhaysingh/portfolio/internal/contact"
	"github.com/nirbhaysingh/portfolio/internal/contact/resend"
	"github.com/nirbhaysingh/portfolio/internal/platform/config"
	"github.com/nirbhaysingh/portfolio/internal/platform/otel"
	"github.com/nirbhaysingh/portfolio/internal/platform/telemetry/metrics"
	"github.com/nirbhaysingh/portfolio/internal/platform/timeouts"
	"github.com/nirbhaysingh/portfolio/internal/portfolio"
	"github.com/nirbhaysingh/portfolio/internal/services/site"
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/ratelimit"
)

const serviceName = "portfolio-web"

// Version is stamped at build time.
var Version = "dev"

// Config holds the web command configuration.
type Config struct {
	HTTPAddr  string `env:"PORTFOLIO_HTTP_ADDR"    envDefault:":8080"`
	SiteName  string `env:"PORTFOLIO_SITE_NAME"    envDefault:"Nirbhay Singh"`
	SiteURL   string `env:"PORTFOLIO_SITE_URL"     envDefault:"http://localhost:8080"`
	PrintLogs bool   `env:"PORTFOLIO_REQUEST_LOGS" envDefault:"true"`

	ContentDir        string `env:"PORTFOLIO_CONTENT_DIR"         envDefault:"content/blog"`
	ExternalPostsFile string `env:"PORTFOLIO_EXTERNAL_POSTS_FILE" envDefault:"content/external-posts.json"`
	ProjectsFile      string `env:"PORTFOLIO_PROJECTS_FILE"       envDefault:"content/projects.yaml"`

	ResendAPIKey      string        `env:"RESEND_API_KEY"`
	ResendBaseURL     string        `env:"PORTFOLIO_RESEND_BASE_URL"`
	ContactFrom       string        `env:"PORTFOLIO_CONTACT_FROM"`
	ContactTo         []string      `env:"PORTFOLIO_CONTACT_TO"              envSeparator:","`
	ContactTimeout    time.Duration `env:"PORTFOLIO_CONTACT_TIMEOUT"`
	ContactRatePerMin int           `env:"PORTFOLIO_CONTACT_RATE_PER_MINUTE" envDefault:"5"`
	TrustedProxies    int           `env:"PORTFOLIO_TRUSTED_PROXIES"         envDefault:"0"`

	Otel otel.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ContactTimeout <= 0 {
		cfg.ContactTimeout = timeouts.EmailSend
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "public base URL used for canonical links")
	fs.StringVar(&cfg.ContentDir, "content-dir", cfg.ContentDir, "directory of local post documents")
	fs.StringVar(&cfg.ExternalPostsFile, "external-posts", cfg.ExternalPostsFile, "JSON file of external posts")
	fs.StringVar(&cfg.ProjectsFile, "projects", cfg.ProjectsFile, "YAML file of portfolio projects")
	fs.IntVar(&cfg.ContactRatePerMin, "contact-rate", cfg.ContactRatePerMin, "contact submissions per client per minute; 0 disables the limit")
	fs.IntVar(&cfg.TrustedProxies, "trusted-proxies", cfg.TrustedProxies, "reverse proxies in front of the site whose X-Forwarded-For hops are trusted")
	fs.BoolVar(&cfg.PrintLogs, "request-logs", cfg.PrintLogs, "log one line per HTTP request")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run wires content, contact delivery, and telemetry, then serves until ctx
// is cancelled.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, serviceName, Version, cfg.Otel)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	m := metrics.New()
	siteCfg := SiteConfig(cfg, m)
	server, err := site.NewServer(ctx, siteCfg)
	if err != nil {
		return fmt.Errorf("init site server: %w", err)
	}
	defer server.Close()

	if cfg.ResendAPIKey == "" {
		log.Printf("contact relay has no api key; submissions will fail until RESEND_API_KEY is set")
	}
	log.Printf("listening addr=%s content_dir=%s", server.Addr(), cfg.ContentDir)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve site: %w", err)
	}
	return nil
}

// SiteConfig builds the server configuration for cfg, reporting content
// problems to the log and to m.
func SiteConfig(cfg Config, m *metrics.Metrics) site.Config {
	reporter := blog.MultiReporter(blog.LogReporter(log.Default()), m.ContentReporter())
	catalog := blog.NewCatalog(
		source.LocalDir{Dir: cfg.ContentDir},
		source.ExternalFile{Path: cfg.ExternalPostsFile},
		reporter,
	)
	relay := contact.NewRelay(
		resend.NewClient(cfg.ResendAPIKey, resend.WithBaseURL(cfg.ResendBaseURL)),
		contact.Config{From: cfg.ContactFrom, To: cfg.ContactTo, Timeout: cfg.ContactTimeout},
	)

	siteCfg := site.Config{
		HTTPAddr: cfg.HTTPAddr,
		Dependencies: module.Dependencies{
			Site:           module.Site{Name: cfg.SiteName, URL: cfg.SiteURL},
			Posts:          catalog,
			Problems:       reporter,
			Projects:       portfolio.File{Path: cfg.ProjectsFile},
			Contact:        relay,
			ContactLimiter: ratelimit.PerMinute(cfg.ContactRatePerMin),
			RecordContact:  m.ContactSend,
			TrustedProxies: cfg.TrustedProxies,
		},
		Metrics: m,
	}
	if !cfg.PrintLogs {
		siteCfg.Logger = log.New(io.Discard, "", 0)
	}
	return siteCfg
}
