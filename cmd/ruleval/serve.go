package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrymomot/ruleval/pkg/logger"
	"github.com/dmitrymomot/ruleval/pkg/ruleset"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

var (
	errServerStart    = errors.New("failed to start HTTP server")
	errServerShutdown = errors.New("failed to shut down HTTP server gracefully")
)

const shutdownTimeout = 5 * time.Second

func runServe(ctx context.Context, env *environment, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	addr := fs.String("addr", env.cfg.HTTPAddr, "listen address")
	rulesPath := fs.String("rules", env.cfg.Rules, "rule set file or directory")
	translations := fs.String("translations", env.cfg.Translations, "directory of extra message catalogs")
	maxBody := fs.Int64("max-body", 10<<20, "maximum request body size in bytes")
	timeout := fs.Duration("timeout", defaultRequestTimeout, "per request validation timeout")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	sets, err := loadSets(ctx, *rulesPath)
	if err != nil {
		env.log.ErrorContext(ctx, "loading rule sets failed", logger.Error(err))
		return exitUsage
	}
	for _, name := range sortedNames(sets) {
		if unknown := sets[name].UnknownRules(env.registry); len(unknown) > 0 {
			env.log.WarnContext(ctx, "rule set uses unknown rules",
				slog.String("set", name),
				slog.Any("rules", unknown),
			)
		}
	}

	tr, err := env.translator(ctx, *translations)
	if err != nil {
		env.log.ErrorContext(ctx, "loading translations failed", logger.Error(err))
		return exitUsage
	}

	a := &api{
		sets:       sets,
		translator: tr,
		options: func(set *ruleset.Set, lang string) []validator.Option {
			return env.options(set, tr, lang)
		},
		log:     env.log,
		maxBody: *maxBody,
		timeout: *timeout,
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		env.log.ErrorContext(ctx, "listen failed", logger.Error(errors.Join(errServerStart, err)))
		return exitRuntime
	}
	env.log.InfoContext(ctx, "serving validation",
		slog.String("addr", ln.Addr().String()),
		slog.Any("sets", sortedNames(sets)),
		slog.Any("languages", tr.SupportedLanguages()),
	)

	if err := serve(ctx, ln, a.routes(), env.log); err != nil {
		env.log.ErrorContext(ctx, "server stopped", logger.Error(err))
		return exitRuntime
	}
	return exitOK
}

// serve runs handler on ln until ctx ends, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Join(errServerShutdown, err)
		}
		runErr = <-errCh
		log.InfoContext(shutdownCtx, "server shut down")
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(errServerStart, runErr)
	}
	return nil
}
