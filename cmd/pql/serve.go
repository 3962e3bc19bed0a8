package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kodegenix/pqlgo/internal/observability"
	"github.com/kodegenix/pqlgo/pkg/eval"
	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/parser"
	"github.com/kodegenix/pqlgo/pkg/serde"
	"github.com/kodegenix/pqlgo/pkg/version"
)

// Server timeout constants, matching a development HTTP server's needs
// rather than a tuned production profile.
const (
	serverReadTimeout  = 30 * time.Second
	serverWriteTimeout = 60 * time.Second
	serverIdleTimeout  = 120 * time.Second
)

// EvalRequest holds the request body for the /api/eval endpoint. Document
// is the raw text of a JSON/YAML/TOML document; Format names which.
type EvalRequest struct {
	Document string `json:"document"`
	Format   string `json:"format"`
	Query    string `json:"query"`
}

// EvalResponse holds the response body for the /api/eval endpoint.
type EvalResponse struct {
	Results []json.RawMessage `json:"results,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start an HTTP server exposing PQL query evaluation",
		Long: `Start an HTTP server exposing a /api/eval endpoint for evaluating PQL
queries against a posted document, plus a /metrics endpoint when
Prometheus is enabled in configuration.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")

	return cmd
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = observability.ModeServe
	obsCfg.PrometheusEnabled = cfg.Server.PrometheusEnabled

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}

	defer func() {
		if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	evalMetrics, err := observability.NewEvalMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create eval metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/eval", handleEval(evalMetrics))

	if cfg.Server.PrometheusEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	handler := observability.HTTPMiddleware(providers.Tracer, providers.Logger, mux)

	addr := fmt.Sprintf(":%d", port)
	if port == 0 {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	providers.Logger.Info("pql server starting", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func handleEval(metrics *observability.EvalMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

			return
		}

		var req EvalRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, EvalResponse{Error: fmt.Sprintf("invalid request body: %v", err)})

			return
		}

		resp := evalRequest(r.Context(), req, metrics)
		writeJSON(w, resp)
	}
}

func evalRequest(ctx context.Context, req EvalRequest, metrics *observability.EvalMetrics) EvalResponse {
	root, err := serde.FromBytes(fileinfo.ParseFileFormat(req.Format), []byte(req.Document))
	if err != nil {
		return EvalResponse{Error: fmt.Sprintf("failed to parse document: %v", err)}
	}

	e, err := parser.Parse(req.Query)
	if err != nil {
		return EvalResponse{Error: fmt.Sprintf("failed to parse query: %v", err)}
	}

	start := time.Now()

	set, err := newEvaluator().Apply(e, eval.New(root), eval.CtxExpr)

	metrics.RecordApply(ctx, observability.EvalStats{
		Duration:     time.Since(start),
		NodesVisited: int64(set.Len()),
	})

	if err != nil {
		return EvalResponse{Error: fmt.Sprintf("evaluation error: %v", err)}
	}

	nodes := set.Slice()
	results := make([]json.RawMessage, len(nodes))

	for i, n := range nodes {
		data, marshalErr := n.MarshalJSON()
		if marshalErr != nil {
			return EvalResponse{Error: fmt.Sprintf("failed to render result: %v", marshalErr)}
		}

		results[i] = data
	}

	return EvalResponse{Results: results}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode JSON response", "error", err)
	}
}
