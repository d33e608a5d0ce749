package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shashiranjanraj/vyapar/config"
	"github.com/shashiranjanraj/vyapar/internal/auth"
	"github.com/shashiranjanraj/vyapar/internal/categories"
	"github.com/shashiranjanraj/vyapar/internal/dashboard"
	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/guard"
	"github.com/shashiranjanraj/vyapar/internal/orders"
	"github.com/shashiranjanraj/vyapar/internal/products"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/internal/settings"
	"github.com/shashiranjanraj/vyapar/pkg/audit"
	"github.com/shashiranjanraj/vyapar/pkg/kvstore"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// console bundles the wired services one command invocation works with.
type console struct {
	sessions   *session.Store
	api        *gateway.Client
	auth       *auth.Service
	guard      *guard.Guard
	orders     *orders.Service
	products   *products.Service
	categories *categories.Service
	dashboard  *dashboard.Service
	settings   *settings.Service
}

var trail *audit.Trail

// boot loads config, opens the session store and wires every service.
func boot() (*console, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	kv, err := kvstore.Open()
	if err != nil {
		return nil, err
	}

	sessions := session.New(kv)
	api := gateway.New(config.APIBaseURL(), sessions)
	authSvc := auth.New(api, sessions)

	openAudit()

	return &console{
		sessions:   sessions,
		api:        api,
		auth:       authSvc,
		guard:      guard.New(sessions, authSvc),
		orders:     orders.New(api, sessions, promptYesNo),
		products:   products.New(api, sessions, promptYesNo),
		categories: categories.New(api, sessions, promptYesNo),
		dashboard:  dashboard.New(api),
		settings:   settings.New(api, sessions),
	}, nil
}

// bootProtected is boot plus the route guard. Commands that show or
// change store data go through here.
func bootProtected(ctx context.Context) (*console, error) {
	c, err := boot()
	if err != nil {
		return nil, err
	}

	res := c.guard.Check(ctx)
	if res.Decision == guard.RedirectLogin {
		return nil, fmt.Errorf("%s: run \"vyapar auth:login\" first", res.Reason)
	}
	if res.Deferred {
		fmt.Fprintln(os.Stderr, "warning: backend unreachable, using cached session")
	}
	return c, nil
}

func openAudit() {
	uri := config.AuditMongoURI()
	if uri == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t, err := audit.Open(ctx, uri, config.AuditMongoDB(), config.AuditMongoColl())
	if err != nil {
		logger.Warn("audit trail unavailable", "error", err)
		return
	}
	trail = t
	audit.Configure(t)

	// Fan warnings and errors into the trail next to the recorded actions.
	logger.SetHandler(logger.NewMultiHandler(
		logger.L.Handler(),
		audit.NewLogHandler(t, slog.LevelWarn),
	))
}

// closeAudit flushes the action trail before the process exits.
func closeAudit() {
	if trail == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := trail.Close(ctx); err != nil {
		logger.Warn("audit trail close failed", "error", err)
	}
}

// promptYesNo asks on the terminal and treats anything but y/yes as no.
func promptYesNo(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// promptLine reads one trimmed line, used for interactive login.
func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
