package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidyayathra/tutor/internal/diagnosis"
	"github.com/vidyayathra/tutor/internal/hints"
	"github.com/vidyayathra/tutor/internal/learner"
	"github.com/vidyayathra/tutor/internal/llm"
	"github.com/vidyayathra/tutor/internal/questiongen"
	"github.com/vidyayathra/tutor/internal/retrieval"
	"github.com/vidyayathra/tutor/internal/selector"
	"github.com/vidyayathra/tutor/internal/server"
	"github.com/vidyayathra/tutor/internal/store"
	"github.com/vidyayathra/tutor/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tutoring HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "Listen port (overrides VIDYA_PORT, default 3001)")
	serveCmd.Flags().String("origin", "", "CORS origin granted to the dashboard (default *)")
}

func runServe(cmd *cobra.Command) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := llm.NewProviderFromEnv(ctx, s.EventRepo())
	if err != nil {
		return fmt.Errorf("configure LLM provider: %w", err)
	}
	logger.Info("llm provider ready", "model", provider.ModelID())

	vectors := retrieval.NewVectorStore(resolveVectorsPath(dbPath))
	vectors.Load()

	// Retrieval is optional: without an embedding-capable provider the
	// tutor still runs, questions just carry no reference material.
	var retriever *retrieval.Retriever
	if embedder, eerr := llm.NewEmbedderFromEnv(ctx); eerr != nil {
		logger.Warn("retrieval disabled", "error", eerr)
	} else {
		retriever = retrieval.NewRetriever(vectors, embedder, logger)
	}

	diag := diagnosis.NewService(provider)
	defer diag.Close()

	svc := tutor.NewService(
		s.ProfileRepo(),
		selector.New(),
		retriever,
		questiongen.New(provider, questiongen.DefaultConfig(), logger),
		hints.NewService(provider, hints.DefaultConfig()),
		learner.LexicalEvaluator{},
		diag,
		logger,
	)

	cfg := server.DefaultConfig()
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		cfg.Port = p
	} else if env := os.Getenv("VIDYA_PORT"); env != "" {
		p, err := strconv.Atoi(env)
		if err != nil {
			return fmt.Errorf("invalid VIDYA_PORT %q: %w", env, err)
		}
		cfg.Port = p
	}
	if o, _ := cmd.Flags().GetString("origin"); o != "" {
		cfg.AllowedOrigin = o
	}

	srv := server.New(svc, cfg, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
