package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lhartmann/guestree/pkg/cache"
	"github.com/lhartmann/guestree/pkg/guestlist"
	"github.com/lhartmann/guestree/pkg/render"
	"github.com/lhartmann/guestree/pkg/snapshot"
	"github.com/lhartmann/guestree/pkg/store"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only web view of the tree",
		Long: `Start an HTTP server exposing the family tree read-only.

Endpoints:
  GET /           index page with links
  GET /tree.svg   rendered tree (cached by snapshot contents)
  GET /tree.png   rendered tree as PNG
  GET /tree.dot   DOT source
  GET /snapshot.json  raw snapshot
  GET /guests.csv     invited guest list (?all=1 for everyone)
  GET /stats          counts as JSON

The snapshot file is re-read on every request, so edits made with the
CLI show up on refresh. Nothing here mutates the graph.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Serve.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

// server holds per-process state for the HTTP viewer.
type server struct {
	cli       *CLI
	artifacts cache.Cache
}

// runServe blocks until ctx is cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	srv := &server{cli: c, artifacts: c.serveCache(ctx)}
	defer srv.artifacts.Close()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(srv.requestID)
	r.Use(srv.accessLog)

	r.Get("/", srv.handleIndex)
	r.Get("/tree.svg", srv.handleTree(formatSVG, "image/svg+xml"))
	r.Get("/tree.png", srv.handleTree(formatPNG, "image/png"))
	r.Get("/tree.dot", srv.handleDOT)
	r.Get("/snapshot.json", srv.handleSnapshot)
	r.Get("/guests.csv", srv.handleGuests)
	r.Get("/stats", srv.handleStats)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving on http://%s", displayAddr(addr))
	printDetail("Data file: %s", c.dataPath())
	c.Logger.Info("server started", "addr", addr)

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve on %s: %w", addr, err)
	}
	c.Logger.Info("server stopped")
	return nil
}

// serveCache picks the artifact cache for the server. A configured redis
// address takes priority; if it is unreachable we fall back to the file cache
// rather than failing startup.
func (c *CLI) serveCache(ctx context.Context) cache.Cache {
	if c.cfg.Cache.Disabled {
		return cache.NewNullCache()
	}
	if c.cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, c.cfg.Cache.RedisAddr)
		if err == nil {
			c.Logger.Info("using redis artifact cache", "addr", c.cfg.Cache.RedisAddr)
			return rc
		}
		c.Logger.Warn("redis unavailable, falling back to file cache", "addr", c.cfg.Cache.RedisAddr, "err", err)
	}
	return c.newCache(false)
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestID tags every request with a UUID for log correlation.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// accessLog logs one line per request with timing.
func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		id, _ := r.Context().Value(requestIDKey).(string)
		s.cli.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"id", id,
		)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html>
<title>guestree</title>
<h1>guestree</h1>
<ul>
<li><a href="/tree.svg">tree.svg</a></li>
<li><a href="/tree.png">tree.png</a></li>
<li><a href="/tree.dot">tree.dot</a></li>
<li><a href="/snapshot.json">snapshot.json</a></li>
<li><a href="/guests.csv">guests.csv</a> (<a href="/guests.csv?all=1">everyone</a>)</li>
<li><a href="/stats">stats</a></li>
</ul>
`)
}

// handleTree renders the tree in the given format, going through the
// artifact cache keyed by the snapshot contents.
func (s *server) handleTree(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := s.load(w)
		if !ok {
			return
		}
		if st.PersonCount() == 0 {
			http.Error(w, "empty tree", http.StatusNotFound)
			return
		}

		ctx := r.Context()
		dot := render.ToDOT(st)

		snapBytes, err := snapshot.Marshal(st)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		key := cache.ArtifactKey(cache.Hash(snapBytes), format)

		if data, hit, err := s.artifacts.Get(ctx, key); err == nil && hit {
			w.Header().Set("Content-Type", contentType)
			w.Write(data)
			return
		}

		var data []byte
		switch format {
		case formatPNG:
			data, err = render.RenderPNG(ctx, dot)
		default:
			data, err = render.RenderSVG(ctx, dot)
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if err := s.artifacts.Set(ctx, key, data, s.cli.cacheTTL()); err != nil {
			s.cli.Logger.Debug("artifact cache write failed", "err", err)
		}

		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

func (s *server) handleDOT(w http.ResponseWriter, r *http.Request) {
	st, ok := s.load(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	fmt.Fprint(w, render.ToDOT(st))
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	st, ok := s.load(w)
	if !ok {
		return
	}
	data, err := snapshot.Marshal(st)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *server) handleGuests(w http.ResponseWriter, r *http.Request) {
	st, ok := s.load(w)
	if !ok {
		return
	}
	invitedOnly := r.URL.Query().Get("all") == ""
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="guests.csv"`)
	if err := guestlist.WriteCSV(st, invitedOnly, w); err != nil {
		s.cli.Logger.Error("csv write failed", "err", err)
	}
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, ok := s.load(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"people":        st.PersonCount(),
		"invited":       st.InvitedCount(),
		"guests":        st.UniqueGuestCount(),
		"relationships": st.RelationshipCount(),
	})
}

// load reads the snapshot for a request, writing a 500 on failure.
func (s *server) load(w http.ResponseWriter) (*store.Store, bool) {
	st, err := s.cli.loadStore()
	if err != nil {
		s.cli.Logger.Error("load snapshot failed", "err", err)
		http.Error(w, "failed to load data", http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	id, _ := r.Context().Value(requestIDKey).(string)
	s.cli.Logger.Error("request failed", "path", r.URL.Path, "id", id, "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// displayAddr makes ":8417" clickable in terminals.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
