package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/streambox/streambox/constant"
	"github.com/streambox/streambox/log"
)

// ServerOptions configure the HTTP surface.
type ServerOptions struct {
	// Token is the shared secret; empty disables the gate.
	Token       string
	Metrics     bool
	ReadTimeout time.Duration
	// Index is the panel document served at / and /index.html.
	Index []byte
	// Mount registers additional routes ahead of the not-found handler.
	Mount func(fiber.Router)
}

// Server exposes a Gateway over HTTP.
type Server struct {
	app     *fiber.App
	gateway *Gateway
	index   []byte
	etag    string
}

// NewServer wires the routes and middlewares.
func NewServer(g *Gateway, opts ServerOptions) *Server {
	s := &Server{
		gateway: g,
		index:   opts.Index,
		etag:    fmt.Sprintf(`"%x"`, xxhash.Sum64(opts.Index)),
	}

	s.app = fiber.New(fiber.Config{
		AppName:     constant.Streambox,
		ReadTimeout: opts.ReadTimeout,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "An internal server error occurred"
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				msg = e.Message
			}
			log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(code).SendString(msg)
		},
	})

	// Middlewares

	s.app.Use(tokenMiddleware(opts.Token))
	s.app.Use(recover.New())
	s.app.Use(loggingMiddleware())
	if opts.Metrics {
		s.app.Use(metricsMiddleware())
	}

	// Endpoints

	s.app.Options(constant.APIPrefix+"/*", s.handlePreflight)
	s.app.All(constant.APIPrefix+"/*", s.handleProxy)
	s.app.Get("/", s.handleIndex)
	s.app.Get("/index.html", s.handleIndex)
	s.app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if opts.Metrics {
		s.app.Get("/metrics", adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			metrics.WritePrometheus(w, true)
		}))
	}
	if opts.Mount != nil {
		opts.Mount(s.app)
	}

	s.app.Use(func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	})

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on addr until ctx is done, then shuts down gracefully,
// waiting for in-flight requests to finish.
func (s *Server) Run(ctx context.Context, addr string) error {
	errs := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errs <- s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info("shutting down server")
		if err := s.app.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info("finished shutting down server")
		return nil
	}
}

func (s *Server) handlePreflight(c fiber.Ctx) error {
	if !isAPIPath(c.Path()) {
		return c.Next()
	}

	c.Set("Access-Control-Allow-Origin", AllowOrigin)
	c.Set("Access-Control-Allow-Methods", AllowMethods)
	c.Set("Access-Control-Allow-Headers", AllowHeaders)
	c.Status(fiber.StatusNoContent)
	return nil
}

func (s *Server) handleProxy(c fiber.Ctx) error {
	if !isAPIPath(c.Path()) {
		return c.Next()
	}

	query, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed query string")
	}

	header := make(http.Header)
	for k, vs := range c.GetReqHeaders() {
		for _, v := range vs {
			header.Add(k, v)
		}
	}

	req := &Request{
		Method: c.Method(),
		Path:   strings.TrimPrefix(c.Path(), constant.APIPrefix),
		Query:  query,
		Header: header,
		Body:   append([]byte(nil), c.Body()...),
	}

	resp, err := s.gateway.Forward(c.Context(), req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Upstream request failed")
	}

	for k, vs := range resp.Header {
		for _, v := range vs {
			c.Response().Header.Add(k, v)
		}
	}
	c.Status(resp.Status)

	size := -1
	if resp.ContentLength >= 0 {
		size = int(resp.ContentLength)
	}
	return c.SendStream(resp.Body, size)
}

func (s *Server) handleIndex(c fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderETag, s.etag)
	if c.Get(fiber.HeaderIfNoneMatch) == s.etag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(s.index)
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, constant.APIPrefix+"/")
}
