package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/evote/internal/auth"
	"github.com/abrezinsky/evote/internal/config"
	"github.com/abrezinsky/evote/internal/handlers"
	"github.com/abrezinsky/evote/internal/logger"
	"github.com/abrezinsky/evote/internal/metrics"
	"github.com/abrezinsky/evote/internal/repository"
	"github.com/abrezinsky/evote/internal/scheduler"
	"github.com/abrezinsky/evote/internal/services"
	"github.com/abrezinsky/evote/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

// App holds all application dependencies
type App struct {
	cfg       config.Config
	log       logger.Logger
	repo      *repository.Repository
	users     services.UserServicer
	settings  services.SettingsServicer
	scheduler *scheduler.Scheduler
	handlers  *handlers.Handlers
}

// New creates and initializes a new application instance
func New(cfg config.Config, log logger.Logger) (*App, error) {
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	metrics.Register()

	// Initialize services
	settingsService := services.NewSettingsService(log, repo)
	userService := services.NewUserService(log, repo, settingsService)
	electionService := services.NewElectionService(log, repo)
	candidateService := services.NewCandidateService(log, repo)
	resultsService := services.NewResultsService(log, repo)
	votingService := services.NewVotingService(log, repo, resultsService)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, electionService)
	hub.Start()
	electionService.SetBroadcaster(hub)
	votingService.SetBroadcaster(hub)

	h := handlers.New(
		userService,
		electionService,
		candidateService,
		votingService,
		resultsService,
		settingsService,
		auth.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		hub,
		log,
		handlers.Options{
			CORSOrigins: cfg.CORSOrigins,
			VoteRate:    cfg.VoteRate,
			VoteBurst:   cfg.VoteBurst,
			TrustProxy:  cfg.TrustProxy,
		},
	)

	return &App{
		cfg:       cfg,
		log:       log,
		repo:      repo,
		users:     userService,
		settings:  settingsService,
		scheduler: scheduler.New(log, electionService, cfg.ScheduleSpec),
		handlers:  h,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// EnsureAdmin creates the configured bootstrap admin if it does not exist yet
func (a *App) EnsureAdmin(ctx context.Context) (bool, error) {
	created, err := a.users.EnsureAdmin(ctx, a.cfg.AdminEmail, a.cfg.AdminPassword)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	return created, nil
}

// Close releases app resources
func (a *App) Close() error {
	a.scheduler.Stop()
	return a.repo.Close()
}

// Run listens on the configured port and serves until ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve starts the close scheduler and serves HTTP on ln. When ctx is
// cancelled the server drains in-flight requests before returning.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	baseURL := a.configureBaseURL(ctx, ln.Addr())

	if err := a.scheduler.Start(ctx); err != nil {
		ln.Close()
		return err
	}
	defer a.scheduler.Stop()

	srv := &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	a.log.Info("Server starting", "url", baseURL)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// configureBaseURL stores the configured base URL, or a detected LAN URL
// when none is stored. Returns the base URL in effect.
func (a *App) configureBaseURL(ctx context.Context, addr net.Addr) string {
	if a.cfg.BaseURL != "" {
		if err := a.settings.SetBaseURL(ctx, a.cfg.BaseURL); err != nil {
			a.log.Warn("Failed to set base_url", "error", err)
		}
		return strings.TrimSuffix(a.cfg.BaseURL, "/")
	}

	port := a.cfg.Port
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}
	detected := fmt.Sprintf("http://%s:%d", getPreferredIP(realNetworkProvider{}), port)
	baseURL, err := a.settings.EnsureBaseURL(ctx, detected)
	if err != nil {
		a.log.Warn("Failed to set default base_url", "error", err)
		return detected
	}
	return baseURL
}

// networkInterface is the part of net.Interface used for address detection
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags { return r.iface.Flags }

func (r realInterface) Addrs() ([]net.Addr, error) { return r.iface.Addrs() }

type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider lists the host's interfaces
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the IPv4 address voters on the LAN should use.
// Private addresses win over public ones; "localhost" when nothing is up.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var fallback net.IP
	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ip := addrIP(addr).To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip.IsPrivate() {
				return ip.String()
			}
			if fallback == nil {
				fallback = ip
			}
		}
	}

	if fallback != nil {
		return fallback.String()
	}
	return "localhost"
}

func addrIP(addr net.Addr) net.IP {
	switch v := addr.(type) {
	case *net.IPNet:
		return v.IP
	case *net.IPAddr:
		return v.IP
	}
	return nil
}
