package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"signdesk/internal/config"
	"signdesk/internal/http/handlers/clients"
	"signdesk/internal/http/handlers/docs"
	"signdesk/internal/http/handlers/session"
	"signdesk/internal/http/handlers/sign"
	"signdesk/internal/http/handlers/user"
	"signdesk/internal/http/middleware"
	"signdesk/internal/models"
	utils "signdesk/internal/utils/http_errors"

	"github.com/gorilla/mux"
)

func StartServer(
	ctx context.Context,
	cfg *config.HTTPServer,
	log *slog.Logger,
	documentService DocumentService,
	authService AuthService,
) error {
	r := mux.NewRouter()

	r.Use(middleware.Logger(log))

	setupRoutes(r, log, authService, documentService)

	srv := &http.Server{
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
		Handler:      r,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed gracefully")
			} else {
				log.Error("could not start server:", "error", err)
				errChan <- err
			}
		}
	}()
	select {
	case <-ctx.Done():
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down server", "error", err)
			return err
		}
		log.Info("server exited gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func setupRoutes(r *mux.Router, log *slog.Logger, auth AuthService, doc DocumentService) {
	// POST user
	r.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user.Add(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// POST session
	r.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session.Add(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// DELETE session
	r.HandleFunc("/api/auth/{token}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		token := vars["token"]
		session.Delete(ctx, log, w, r, token, auth)
	}).Methods(http.MethodDelete)

	// Public share surface: the share token is the only credential.
	r.HandleFunc("/api/share", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sign.Get(ctx, log, w, r, doc)
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/share/sign", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sign.Post(ctx, log, w, r, doc)
	}).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()

	protected.Use(middleware.Auth(log, auth))

	// POST doc
	protected.HandleFunc("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Upload(ctx, log, w, r, doc)
	}).Methods(http.MethodPost)

	// GET docs
	protected.HandleFunc("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Get(ctx, log, w, r, doc)
	}).Methods(http.MethodGet)

	// GET doc by id
	protected.HandleFunc("/api/docs/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docID := vars["id"]
		docs.GetByID(ctx, log, w, r, docID, doc)
	}).Methods(http.MethodGet)

	// DELETE doc by id
	protected.HandleFunc("/api/docs/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docID := vars["id"]
		docs.Delete(ctx, log, w, r, docID, doc)
	}).Methods(http.MethodDelete)

	// POST share link
	protected.HandleFunc("/api/docs/{id}/share", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docID := vars["id"]
		docs.Share(ctx, log, w, r, docID, doc)
	}).Methods(http.MethodPost)

	// GET doc events
	protected.HandleFunc("/api/docs/{id}/events", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docID := vars["id"]
		docs.Events(ctx, log, w, r, docID, doc)
	}).Methods(http.MethodGet)

	// GET doc content
	protected.HandleFunc("/api/docs/{id}/download", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docID := vars["id"]
		docs.Download(ctx, log, w, r, docID, doc)
	}).Methods(http.MethodGet)

	// POST client
	protected.HandleFunc("/api/clients", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clients.Add(ctx, log, w, r, doc)
	}).Methods(http.MethodPost)

	// GET clients
	protected.HandleFunc("/api/clients", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clients.Get(ctx, log, w, r, doc)
	}).Methods(http.MethodGet)

	// GET client by id
	protected.HandleFunc("/api/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		clientID := vars["id"]
		clients.GetByID(ctx, log, w, r, clientID, doc)
	}).Methods(http.MethodGet)

	// Not allowed
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, http.StatusMethodNotAllowed, models.ErrMethodNotAllowed.Error())
	})
}
