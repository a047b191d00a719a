package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	oauthjwt "golang.org/x/oauth2/jwt"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	adminapp "github.com/elysian-fields/feedback-services/api/internal/admin/application"
	"github.com/elysian-fields/feedback-services/api/internal/config"
	drivestore "github.com/elysian-fields/feedback-services/api/internal/infrastructure/drive"
	"github.com/elysian-fields/feedback-services/api/internal/infrastructure/gcs"
	mongodoc "github.com/elysian-fields/feedback-services/api/internal/infrastructure/mongo"
	sheetstore "github.com/elysian-fields/feedback-services/api/internal/infrastructure/sheets"
	adminhttp "github.com/elysian-fields/feedback-services/api/internal/interfaces/http/admin"
	commonhttp "github.com/elysian-fields/feedback-services/api/internal/interfaces/http/common"
	publichttp "github.com/elysian-fields/feedback-services/api/internal/interfaces/http/public"
	publicapp "github.com/elysian-fields/feedback-services/api/internal/public/application"
)

// Server is the composition root: it resolves the configured record-store
// and blob-store backends once at startup, builds the application services
// around them and manages the HTTP lifecycle.
type Server struct {
	logger         *zap.Logger
	client         *mongo.Client
	ping           func(ctx context.Context) error
	publicHandler  *publichttp.Handler
	adminHandler   *adminhttp.Handler
	addr           string
	allowedOrigins []string
	jwtSecret      []byte
	jwtIssuer      string
	jwtAudience    string
}

// New assembles the handler tree for the configured backends. Google API
// clients built here authenticate lazily, so missing credentials surface
// per request rather than at startup.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, client *mongo.Client) (*Server, error) {
	var db *mongo.Database
	if client != nil {
		db = client.Database(cfg.MongoDatabase)
	}

	var recorder publicapp.SubmissionRecorder
	var reader adminapp.SubmissionReader
	switch cfg.RecordStoreBackend {
	case config.RecordStoreMongo:
		repo := mongodoc.NewSubmissionRepository(db, cfg.SubmissionCollection)
		recorder, reader = repo, repo
	case config.RecordStoreSheets:
		service, err := newSheetsService(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("sheets service: %w", err)
		}
		repo := sheetstore.NewSubmissionRepository(service, cfg.SheetID)
		recorder, reader = repo, repo
	default:
		return nil, fmt.Errorf("unknown record store backend %q", cfg.RecordStoreBackend)
	}

	var attachments *publicapp.AttachmentService
	var tickets publicapp.TicketIssuer
	var mediaStore *mongodoc.GridFSBlobStore
	switch cfg.BlobStoreBackend {
	case config.BlobStoreGCS:
		var storageClient *storage.Client
		if cfg.GoogleClientEmail != "" && len(cfg.GooglePrivateKey) > 0 {
			var err error
			storageClient, err = newStorageClient(ctx, cfg)
			if err != nil {
				return nil, fmt.Errorf("storage client: %w", err)
			}
		}
		tickets = gcs.NewBlobStore(storageClient, gcs.Config{
			Bucket:      cfg.GCSBucket,
			ClientEmail: cfg.GoogleClientEmail,
			PrivateKey:  cfg.GooglePrivateKey,
			PublicRead:  cfg.GCSPublicRead,
		}, logger)
	case config.BlobStoreDrive:
		service, err := newDriveService(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("drive service: %w", err)
		}
		store := drivestore.NewBlobStore(service, cfg.DriveFolderID, logger)
		attachments = publicapp.NewAttachmentService(store, cfg.UploadGuard, logger)
	case config.BlobStoreGridFS:
		store, err := mongodoc.NewGridFSBlobStore(db, cfg.PublicBaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("gridfs store: %w", err)
		}
		attachments = publicapp.NewAttachmentService(store, cfg.UploadGuard, logger)
		mediaStore = store
	default:
		return nil, fmt.Errorf("unknown blob store backend %q", cfg.BlobStoreBackend)
	}

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:             logger,
		SubmissionCommands: publicapp.NewSubmissionCommandService(recorder),
		Attachments:        attachments,
		Tickets:            tickets,
		Media:              mediaStore,
	})
	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:            logger,
		SubmissionService: adminapp.NewSubmissionQueryService(reader, logger),
	})

	var ping func(ctx context.Context) error
	if client != nil {
		ping = func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}
	}

	return &Server{
		logger:         logger,
		client:         client,
		ping:           ping,
		publicHandler:  publicHandler,
		adminHandler:   adminHandler,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		jwtSecret:      cfg.AdminJWTSecret,
		jwtIssuer:      cfg.AdminJWTIssuer,
		jwtAudience:    cfg.AdminJWTAudience,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	s.publicHandler.Register(router)
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.adminAuthMiddleware)
		s.adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	s.waitForShutdown(httpServer, errChan)
	return nil
}

func newGoogleHTTPClient(ctx context.Context, cfg config.Config, scopes ...string) *http.Client {
	conf := &oauthjwt.Config{
		Email:      cfg.GoogleClientEmail,
		PrivateKey: cfg.GooglePrivateKey,
		Scopes:     scopes,
		TokenURL:   google.JWTTokenURL,
	}
	return conf.Client(ctx)
}

func newStorageClient(ctx context.Context, cfg config.Config) (*storage.Client, error) {
	return storage.NewClient(ctx, option.WithHTTPClient(newGoogleHTTPClient(ctx, cfg, storage.ScopeReadWrite)))
}

func newDriveService(ctx context.Context, cfg config.Config) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithHTTPClient(newGoogleHTTPClient(ctx, cfg, drive.DriveFileScope)))
}

func newSheetsService(ctx context.Context, cfg config.Config) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithHTTPClient(newGoogleHTTPClient(ctx, cfg, sheets.SpreadsheetsScope)))
}

// withCORS grants the configured origins access to the API.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			permitted := allowAll || origin == ""
			if !permitted {
				_, permitted = allowed[origin]
			}
			if origin == "" || !permitted {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// healthHandler answers monitoring probes with backend connectivity state.
// Probe failure detail stays in the logs; the response never carries it.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if s.ping != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.ping(ctx); err != nil {
				s.logger.Warn("health probe failed", zap.Error(err))
				commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
				})
				return
			}
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// adminAuthMiddleware verifies an HS256 bearer token when a secret is
// configured; the admin listing stays open otherwise. The public intake
// routes never pass through here.
func (s *Server) adminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.jwtSecret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		const bearerPrefix = "Bearer "
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "Bearer token required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if err := s.verifyAdminToken(tokenString); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "Invalid access token"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) verifyAdminToken(tokenString string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.jwtSecret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	if s.jwtIssuer != "" && claims.Issuer != s.jwtIssuer {
		return errors.New("issuer mismatch")
	}
	if s.jwtAudience != "" && !containsAudience(claims.Audience, s.jwtAudience) {
		return errors.New("audience mismatch")
	}
	return nil
}

func containsAudience(audience jwt.ClaimStrings, expected string) bool {
	for _, value := range audience {
		if value == expected {
			return true
		}
	}
	return false
}

// waitForShutdown watches ListenAndServe and OS signals for a graceful
// stop, then disconnects MongoDB.
func (s *Server) waitForShutdown(httpServer *http.Server, errChan <-chan error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatal("server exited abnormally", zap.Error(err))
		}
	case sig := <-sigChan:
		s.logger.Info("signal received; shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Warn("error during server shutdown", zap.Error(err))
		}
	}

	if s.client != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.client.Disconnect(disconnectCtx); err != nil {
			s.logger.Warn("error disconnecting MongoDB", zap.Error(err))
		}
	}
}
