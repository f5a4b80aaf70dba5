package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rezonia/xrechnung-processor/internal/attachment"
	"github.com/rezonia/xrechnung-processor/internal/messages"
	"github.com/rezonia/xrechnung-processor/internal/model"
	"github.com/rezonia/xrechnung-processor/internal/processor"
	"github.com/rezonia/xrechnung-processor/internal/render"
)

// uploadField is the multipart form field name the original viewer posts
const uploadField = "xrechnung"

// Config holds server configuration
type Config struct {
	Address       string
	MaxUploadSize int64
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	Debug         bool
}

// DefaultMaxUploadSize bounds uploads before the engine sees them
const DefaultMaxUploadSize = 10 << 20 // 10 MB

// Server is the HTTP boundary around the processing pipeline
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
	logger   zerolog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config, logger zerolog.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = DefaultMaxUploadSize
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	s := &Server{
		config:   config,
		router:   router,
		pipeline: processor.NewPipeline(),
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoices", s.handleUpload)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/render", s.handleRender)
		v1.POST("/attachments", s.handleAttachments)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger attaches a request ID and logs one line per request
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		logger.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// readUpload accepts either a multipart upload (the viewer's form) or a
// raw XML body, applying the boundary checks the engine itself does not
// perform: file extension, declared MIME type and size limit
func (s *Server) readUpload(c *gin.Context) ([]byte, bool) {
	locale := messages.Negotiate(c.GetHeader("Accept-Language"))

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		fileHeader, err := c.FormFile(uploadField)
		if err != nil {
			s.hardFailure(c, http.StatusBadRequest, model.CodeParseError, locale, "document")
			return nil, false
		}
		if fileHeader.Size > s.config.MaxUploadSize {
			s.hardFailure(c, http.StatusRequestEntityTooLarge, model.CodeParseError, locale, "document")
			return nil, false
		}
		if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xml" {
			s.hardFailure(c, http.StatusUnsupportedMediaType, model.CodeInvalidRoot, locale, "document")
			return nil, false
		}
		declared := fileHeader.Header.Get("Content-Type")
		if declared != "" && declared != "application/xml" && declared != "text/xml" {
			s.hardFailure(c, http.StatusUnsupportedMediaType, model.CodeInvalidRoot, locale, "document")
			return nil, false
		}

		f, err := fileHeader.Open()
		if err != nil {
			s.hardFailure(c, http.StatusBadRequest, model.CodeParseError, locale, "document")
			return nil, false
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, s.config.MaxUploadSize))
		if err != nil {
			s.hardFailure(c, http.StatusBadRequest, model.CodeParseError, locale, "document")
			return nil, false
		}
		return data, true
	}

	// Raw body fallback for API clients.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxUploadSize)
	data, err := c.GetRawData()
	if err != nil || len(data) == 0 {
		s.hardFailure(c, http.StatusBadRequest, model.CodeParseError, locale, "document")
		return nil, false
	}
	return data, true
}

func (s *Server) handleUpload(c *gin.Context) {
	data, ok := s.readUpload(c)
	if !ok {
		return
	}
	locale := messages.Negotiate(c.GetHeader("Accept-Language"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.Process(ctx, data)
	if result.Error != nil {
		s.hardFailureFromResult(c, result, locale)
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{
		Invoice:    result.Invoice,
		Validation: newValidationOutput(messages.LocalizeResult(result.Validation, locale)),
		Dialect:    string(result.Dialect),
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	data, ok := s.readUpload(c)
	if !ok {
		return
	}
	locale := messages.Negotiate(c.GetHeader("Accept-Language"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	validation := s.pipeline.Validate(ctx, data)
	c.JSON(http.StatusOK, newValidationOutput(messages.LocalizeResult(validation, locale)))
}

func (s *Server) handleRender(c *gin.Context) {
	data, ok := s.readUpload(c)
	if !ok {
		return
	}
	locale := messages.Negotiate(c.GetHeader("Accept-Language"))

	format := render.Format(c.DefaultQuery("format", string(render.FormatHTML)))
	input, err := render.Prepare(data, format)
	if err != nil {
		code := model.CodeParseError
		var typeErr *model.InvalidDocumentTypeError
		if errors.As(err, &typeErr) {
			code = model.CodeInvalidRoot
		}
		s.hardFailure(c, http.StatusUnprocessableEntity, code, locale, "document")
		return
	}

	c.JSON(http.StatusOK, RenderResponse{
		Dialect:    string(input.Dialect),
		Stylesheet: input.Stylesheet,
		XML:        string(input.XML),
	})
}

func (s *Server) handleAttachments(c *gin.Context) {
	data, ok := s.readUpload(c)
	if !ok {
		return
	}
	locale := messages.Negotiate(c.GetHeader("Accept-Language"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.Process(ctx, data)
	if result.Error != nil {
		s.hardFailureFromResult(c, result, locale)
		return
	}

	response := AttachmentsResponse{Attachments: []AttachmentOutput{}}
	for _, a := range result.Invoice.Attachments {
		info, err := attachment.Inspect(a)
		if err != nil {
			s.logger.Warn().Err(err).Str("filename", a.Filename).Msg("attachment decode failed")
			continue
		}
		response.Attachments = append(response.Attachments, AttachmentOutput{
			Info:    info,
			Content: a.Content,
		})
	}

	c.JSON(http.StatusOK, response)
}

// hardFailureFromResult maps a pipeline hard failure to the error contract
func (s *Server) hardFailureFromResult(c *gin.Context, result *processor.Result, locale string) {
	code := model.CodeParseError
	var typeErr *model.InvalidDocumentTypeError
	if errors.As(result.Error, &typeErr) {
		code = model.CodeInvalidRoot
	}
	s.hardFailure(c, http.StatusUnprocessableEntity, code, locale, "document")
}

func (s *Server) hardFailure(c *gin.Context, status int, code model.ErrorCode, locale, location string) {
	m := messages.Lookup(code, locale)
	c.JSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:       string(code),
			Message:    m.Text,
			Suggestion: m.Suggestion,
			Severity:   string(model.SeverityCritical),
			Location:   location,
		},
	})
}
