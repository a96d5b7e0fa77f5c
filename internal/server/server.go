// Package server exposes the computed care schedule over localhost HTTP:
// the ICS feed for calendar subscriptions and the derived view models as
// JSON. Content is swapped in atomically by the refresh worker; request
// handling is lock-free.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-planty/internal/config"
)

// cacheItem stores one rendered payload and its HTTP caching metadata.
type cacheItem struct {
	data         []byte
	contentType  string
	etag         string
	lastModified string // RFC1123, as required by HTTP headers
}

// CareServer serves the care calendar and the schedule JSON. Each route has
// its own atomic.Pointer cache: clients poll frequently while content only
// changes when the schedule is recomputed, so lock-free reads beat a
// RWMutex on the hot path.
type CareServer struct {
	calendar atomic.Pointer[cacheItem]
	schedule atomic.Pointer[cacheItem]
	Port     string
}

// NewCareServer creates a server bound to the given port.
func NewCareServer(port string) *CareServer {
	return &CareServer{Port: port}
}

// Start runs the HTTP server and blocks until the context is cancelled or
// the listener fails.
func (s *CareServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return fmt.Errorf(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteCalendar, s.handleCalendar)
	mux.HandleFunc(config.RouteSchedule, s.handleSchedule)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdateCalendar atomically replaces the served ICS feed.
func (s *CareServer) UpdateCalendar(data []byte) {
	s.update(&s.calendar, data, config.MimeTextCalendar)
}

// UpdateSchedule atomically replaces the served schedule JSON.
func (s *CareServer) UpdateSchedule(data []byte) {
	s.update(&s.schedule, data, config.MimeJSON)
}

func (s *CareServer) update(slot *atomic.Pointer[cacheItem], data []byte, contentType string) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         data,
		contentType:  contentType,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	// Readers see either the old or the new complete item, never a partial
	// state.
	slot.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

func (s *CareServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, s.calendar.Load())
}

func (s *CareServer) handleSchedule(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, s.schedule.Load())
}

// serveCached writes a cached payload with conditional-request support.
func (s *CareServer) serveCached(w http.ResponseWriter, r *http.Request, item *cacheItem) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// Nothing computed yet: tell the client to come back, not that the
	// resource is missing.
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, item.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
