// Package api serves compact binary validation over HTTP.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/cbtool/internal/cbfile"
	"github.com/samcharles93/cbtool/internal/logger"
	"github.com/samcharles93/cbtool/internal/report"
	"github.com/samcharles93/cbtool/internal/version"
	"github.com/samcharles93/cbtool/pkg/cb"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes = 64 << 20

type Config struct {
	MaxBodyBytes int64
	Store        *ReportStore
	Logger       logger.Logger
}

type Server struct {
	store   *ReportStore
	maxBody int64
	log     logger.Logger
	clock   func() time.Time
}

func NewServer(cfg Config) *Server {
	s := &Server{
		store:   cfg.Store,
		maxBody: cfg.MaxBodyBytes,
		log:     cfg.Logger,
		clock:   time.Now,
	}
	if s.store == nil {
		s.store = NewReportStore(DefaultStoreCapacity)
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)

	e.POST("/v1/validate/:kind", s.handleValidate)
	e.POST("/v1/packages", s.handlePackage)
	e.GET("/v1/reports/:id", s.handleGetReport)
	e.DELETE("/v1/reports/:id", s.handleDeleteReport)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, HealthResponse{Status: "ok", Version: version.String()})
}

func (s *Server) handleValidate(c *echo.Context) error {
	kind, err := report.ParseKind(c.Param("kind"))
	if err != nil {
		return writeRequestError(c, err)
	}
	mode, err := parseModeParam(kind, c.QueryParam("mode"))
	if err != nil {
		return writeRequestError(c, err)
	}
	rec, err := s.validate(c, kind, mode)
	if err != nil {
		return writeRequestError(c, err)
	}
	return writeJSON(c, http.StatusOK, s.response(rec))
}

// handlePackage always checks with every mode and answers 422 when the
// package is rejected.
func (s *Server) handlePackage(c *echo.Context) error {
	rec, err := s.validate(c, report.KindPackage, cb.ModeAll)
	if err != nil {
		return writeRequestError(c, err)
	}
	if r := rec.Report; !r.Valid {
		return writeJSON(c, http.StatusUnprocessableEntity, ErrorResponse{Error: ResponseError{
			Message:  "invalid package: " + strings.Join(r.Errors, "|"),
			Type:     "invalid_package_error",
			Code:     "invalid_package",
			ReportID: r.ID,
			Flags:    r.Errors,
		}})
	}
	return writeJSON(c, http.StatusOK, s.response(rec))
}

func (s *Server) validate(c *echo.Context, kind report.Kind, mode cb.Mode) (*reportRecord, error) {
	data, err := cbfile.ReadLimited(c.Request().Body, s.maxBody)
	if err != nil {
		return nil, err
	}
	r, err := report.Build("", kind, mode, data)
	if err != nil {
		return nil, err
	}
	rec := s.store.Save(r, s.clock())
	s.log.Debug("validated request body",
		"id", r.ID,
		"kind", string(kind),
		"mode", r.Mode,
		"size", r.Size,
		"valid", r.Valid,
	)
	return rec, nil
}

func (s *Server) handleGetReport(c *echo.Context) error {
	id := c.Param("id")
	if err := checkReportID(id); err != nil {
		return writeRequestError(c, err)
	}
	rec, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, "report not found")
	}
	return writeJSON(c, http.StatusOK, s.response(rec))
}

func (s *Server) handleDeleteReport(c *echo.Context) error {
	id := c.Param("id")
	if err := checkReportID(id); err != nil {
		return writeRequestError(c, err)
	}
	if !s.store.Delete(id) {
		return writeNotFound(c, "report not found")
	}
	return writeJSON(c, http.StatusOK, DeleteReportResp{
		ID:      id,
		Object:  "report",
		Deleted: true,
	})
}

func (s *Server) response(rec *reportRecord) ValidateResponse {
	return ValidateResponse{Report: rec.Report, CreatedAt: rec.CreatedAt.Unix()}
}
