// Package server exposes the translator over HTTP. Responses follow JSend;
// upstream failures are reported as 502 and transport failures as 504.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"codeberg.org/snonux/gtranslate/internal"
	"codeberg.org/snonux/gtranslate/internal/language"
	"codeberg.org/snonux/gtranslate/internal/translation"
)

// Translator is the part of translation.Translator the server needs.
type Translator interface {
	Translate(ctx context.Context, timeout time.Duration, req translation.Request) (string, error)
}

type Options struct {
	Addr string
	// Timeout is passed to every Translate call.
	Timeout         time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	translator Translator
	defaults   translation.Request
	logger     zerolog.Logger
	opts       Options
	echo       *echo.Echo
}

type translateResponse struct {
	Translation string `json:"translation"`
	Variant     string `json:"variant"`
	SourceLang  string `json:"sl"`
	TargetLang  string `json:"tl"`
}

// New creates a server. defaults supplies variant, client and language pair
// for parameters the caller leaves out.
func New(translator Translator, defaults translation.Request, logger zerolog.Logger, opts Options) *Server {
	if strings.TrimSpace(opts.Addr) == "" {
		opts.Addr = ":8080"
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 30 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		translator: translator,
		defaults:   defaults,
		logger:     logger,
		opts:       opts,
	}
	s.echo = s.newEcho()

	return s
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := s.logger.Info()
			if v.Error != nil {
				event = s.logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	e.GET("/healthz", s.handleHealth)
	e.GET("/api/translate", s.handleTranslate)

	return e
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.echo,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		// echo.Shutdown only stops echo's own e.Server, not httpServer.
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", s.opts.Addr).Msg("gtranslate server started")

	if err := s.echo.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("gtranslate server stopped")
	return nil
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if text, ok := he.Message.(string); ok && strings.TrimSpace(text) != "" {
			message = text
		} else if text := http.StatusText(status); text != "" {
			message = text
		}
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "gtranslate",
		"version": internal.Version,
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	req, fieldErrors := s.requestFromQuery(c)
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	result, err := s.translator.Translate(c.Request().Context(), s.opts.Timeout, req)
	if err != nil {
		return s.translateError(c, err)
	}

	return success(c, translateResponse{
		Translation: result,
		Variant:     req.Variant().String(),
		SourceLang:  req.SourceLang(),
		TargetLang:  req.TargetLang(),
	})
}

func (s *Server) requestFromQuery(c echo.Context) (translation.Request, map[string]string) {
	fieldErrors := map[string]string{}

	query := c.QueryParam("q")
	if strings.TrimSpace(query) == "" {
		fieldErrors["q"] = "is required"
	}

	variant := s.defaults.Variant()
	if name := strings.TrimSpace(c.QueryParam("variant")); name != "" {
		parsed, err := translation.ParseVariant(name)
		if err != nil {
			fieldErrors["variant"] = err.Error()
		}
		variant = parsed
	}

	client := strings.TrimSpace(c.QueryParam("client"))
	if client == "" {
		client = variant.DefaultClient()
		if variant == s.defaults.Variant() {
			client = s.defaults.Client()
		}
	}

	sourceLang := s.defaults.SourceLang()
	if sl := strings.TrimSpace(c.QueryParam("sl")); sl != "" {
		sourceLang = language.Resolve(sl)
	}
	targetLang := s.defaults.TargetLang()
	if tl := strings.TrimSpace(c.QueryParam("tl")); tl != "" {
		targetLang = language.Resolve(tl)
	}

	req := translation.NewRequest(variant).
		WithClient(client).
		WithSourceLang(sourceLang).
		WithTargetLang(targetLang).
		WithDstTarget(s.defaults.DstTarget()).
		WithQuery(query)

	return req, fieldErrors
}

func (s *Server) translateError(c echo.Context, err error) error {
	var statusErr *translation.StatusError
	switch {
	case errors.As(err, &statusErr):
		return errorWithStatus(c, http.StatusBadGateway, "Upstream returned an invalid response", map[string]any{
			"upstream_status": statusErr.StatusCode,
		})
	case translation.IsFailedParsing(err):
		return errorWithStatus(c, http.StatusBadGateway, "Failed parsing upstream response", nil)
	case translation.IsTransport(err):
		return errorWithStatus(c, http.StatusGatewayTimeout, "Upstream unreachable", nil)
	default:
		s.logger.Error().Err(err).Msg("translate failed")
		return internalError(c, "Internal server error")
	}
}
