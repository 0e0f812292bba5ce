package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/hotspot/internal/analysis"
	"github.com/sells-group/hotspot/internal/geo"
	"github.com/sells-group/hotspot/internal/report"
	"github.com/sells-group/hotspot/pkg/geocode"
)

const requestIDHeader = "X-Request-ID"

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		cfg.Server.Port = port
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           buildMux(newGeocoder(), serverOptionsFromConfig()),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// serverOptions carries the request defaults and limits for buildMux.
type serverOptions struct {
	InnerRadiusM      float64
	OuterRadiusM      float64
	ComparisonRadiusM float64
	CORSOrigins       []string
	MaxBodyBytes      int64
}

func serverOptionsFromConfig() serverOptions {
	return serverOptions{
		InnerRadiusM:      cfg.Analysis.InnerRadiusM,
		OuterRadiusM:      cfg.Analysis.OuterRadiusM,
		ComparisonRadiusM: cfg.Analysis.ComparisonRadiusM,
		CORSOrigins:       cfg.Server.CORSOrigins,
		MaxBodyBytes:      int64(cfg.Server.MaxBodyMB) << 20,
	}
}

// concentricRequest is the body of POST /v1/analyze/concentric. Zero radii
// take the server defaults.
type concentricRequest struct {
	Points       []geo.Point `json:"points"`
	Center       *geo.Point  `json:"center"`
	InnerRadiusM float64     `json:"inner_radius_m"`
	OuterRadiusM float64     `json:"outer_radius_m"`
}

// compareRequest is the body of POST /v1/analyze/compare.
type compareRequest struct {
	Points  []geo.Point `json:"points"`
	Center1 *geo.Point  `json:"center1"`
	Center2 *geo.Point  `json:"center2"`
	RadiusM float64     `json:"radius_m"`
}

// buildMux wires the API routes. gc may be nil, in which case the geocode
// route reports 503.
func buildMux(gc geocode.Client, opts serverOptions) http.Handler {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 32 << 20
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze/concentric", func(w http.ResponseWriter, req *http.Request) {
			var body concentricRequest
			if !decodeBody(w, req, opts.MaxBodyBytes, &body) {
				return
			}
			// Without a center the points' centroid is used, as on the CLI.
			center, ok := geo.Centroid(body.Points)
			if body.Center != nil {
				center, ok = *body.Center, true
			}
			if !ok {
				writeError(w, http.StatusBadRequest, "center is required when no points are given")
				return
			}
			inner := orDefault(body.InnerRadiusM, opts.InnerRadiusM)
			outer := orDefault(body.OuterRadiusM, opts.OuterRadiusM)
			if err := analysis.ValidateConcentric(center, inner, outer); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}

			res, ok := analysis.AnalyzeConcentric(body.Points, center, inner, outer)
			writeJSON(w, http.StatusOK, report.Concentric(res, ok))
		})

		r.Post("/analyze/compare", func(w http.ResponseWriter, req *http.Request) {
			var body compareRequest
			if !decodeBody(w, req, opts.MaxBodyBytes, &body) {
				return
			}
			if body.Center1 == nil || body.Center2 == nil {
				writeError(w, http.StatusBadRequest, "center1 and center2 are required")
				return
			}
			radius := orDefault(body.RadiusM, opts.ComparisonRadiusM)
			if err := analysis.ValidateComparison(*body.Center1, *body.Center2, radius); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}

			res, ok := analysis.CompareAreas(body.Points, *body.Center1, *body.Center2, radius)
			writeJSON(w, http.StatusOK, report.Comparison(res, ok))
		})

		r.Get("/geocode", func(w http.ResponseWriter, req *http.Request) {
			address := req.URL.Query().Get("address")
			if address == "" {
				writeError(w, http.StatusBadRequest, "address is required")
				return
			}
			if gc == nil {
				writeError(w, http.StatusServiceUnavailable, "geocoding is not configured")
				return
			}
			res, err := gc.Geocode(req.Context(), address)
			if err != nil {
				zap.L().Error("geocode failed", zap.String("address", address), zap.Error(err))
				writeError(w, http.StatusBadGateway, "geocoding service failed")
				return
			}
			writeJSON(w, http.StatusOK, res)
		})
	})

	return r
}

// requestID propagates or assigns an X-Request-ID and stores it where chi's
// middleware.GetReqID can read it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// decodeBody reads a JSON body into v, writing a 400 or 413 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
