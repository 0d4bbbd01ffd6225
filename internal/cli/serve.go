package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/engine"
	"github.com/griddeck/griddeck/pkg/engine/pack"
	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/layoutio"
	"github.com/griddeck/griddeck/pkg/store"
)

// newServeCmd creates the serve command. It exposes the layout engine
// and the layout store as a JSON HTTP API.
func newServeCmd() *cobra.Command {
	var addr string
	opts := &storeOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the engine as an HTTP API",
		Long: `Expose the layout engine and the layout store as a JSON HTTP API.

Endpoints:
  POST   /v1/arrange        compact a layout
  POST   /v1/place          find a free position
  GET    /v1/layouts        list saved layouts
  POST   /v1/layouts        save a layout (id generated)
  GET    /v1/layouts/{id}   fetch a saved layout
  PUT    /v1/layouts/{id}   replace a saved layout
  DELETE /v1/layouts/{id}   delete a saved layout

Examples:
  griddeck serve
  griddeck serve --addr :9090 --store redis`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c, addr, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	opts.register(cmd)

	return cmd
}

func runServe(c *cobra.Command, addr string, opts *storeOpts) error {
	ctx := c.Context()
	logger := loggerFromContext(ctx)

	s, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Infof("Listening on %s (%s store)", addr, opts.backend)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("Shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newRouter builds the HTTP routes over the given store.
func newRouter(s store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/arrange", handleArrange)
		r.Post("/place", handlePlace)

		r.Route("/layouts", func(r chi.Router) {
			r.Get("/", handleLayoutsList(s))
			r.Post("/", handleLayoutsCreate(s))
			r.Get("/{id}", handleLayoutsGet(s))
			r.Put("/{id}", handleLayoutsPut(s))
			r.Delete("/{id}", handleLayoutsDelete(s))
		})
	})

	return r
}

// arrangeRequest is the body of POST /v1/arrange.
type arrangeRequest struct {
	layoutio.Document
	SortOrder string `json:"sort_order,omitempty"`
	Gutter    int    `json:"gutter,omitempty"`
}

func handleArrange(w http.ResponseWriter, r *http.Request) {
	var req arrangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	eng, err := engine.New(engine.Config{Enabled: true, Grid: req.GridConfig()})
	if err != nil {
		writeError(w, err)
		return
	}
	defer eng.Close()

	order := pack.SortOrder(req.SortOrder)
	if order == "" {
		order = pack.SortPreserve
	}
	result, err := eng.AutoArrange(req.Layout(), engine.ArrangeOptions{SortOrder: order, Gutter: req.Gutter})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutio.FromLayout(req.Name, req.GridConfig(), result.Layout))
}

// placeRequest is the body of POST /v1/place.
type placeRequest struct {
	layoutio.Document
	W int `json:"w"`
	H int `json:"h"`
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`
}

func handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	eng, err := engine.New(engine.Config{Enabled: true, Grid: req.GridConfig()})
	if err != nil {
		writeError(w, err)
		return
	}
	defer eng.Close()

	pos, err := eng.Place(req.Layout(), req.W, req.H, pack.Point{X: req.X, Y: req.Y})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"x": pos.X, "y": pos.Y})
}

func handleLayoutsList(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if records == nil {
			records = []store.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func handleLayoutsCreate(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc layoutio.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request"))
			return
		}
		if err := doc.Validate(); err != nil {
			writeError(w, err)
			return
		}
		rec := &store.Record{ID: store.NewID(), Document: doc}
		if err := s.Put(r.Context(), rec); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func handleLayoutsGet(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleLayoutsPut(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc layoutio.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding request"))
			return
		}
		if err := doc.Validate(); err != nil {
			writeError(w, err)
			return
		}
		rec := &store.Record{ID: chi.URLParam(r, "id"), Document: doc}
		if err := s.Put(r.Context(), rec); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleLayoutsDelete(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeJSON serializes v with an application/json content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes the
// user-facing message as a JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidBounds,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidLayout:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodePlacementFailed:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
