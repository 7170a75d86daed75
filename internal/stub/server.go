// Package stub is an in-memory stand-in for the verification backend. It
// exists so the client can be exercised end to end (and integration-tested)
// without the real service; it is not a documented API surface.
package stub

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"letscheck-client/internal/common/middleware"
	"letscheck-client/internal/common/validation"
)

const csrfCookieName = "csrftoken"

// DocumentStatus drives the verdict the stub returns for a known hash.
type DocumentStatus string

const (
	StatusAuthentic DocumentStatus = "authentic"
	StatusRevoked   DocumentStatus = "revoked"
	StatusTampered  DocumentStatus = "tampered"
)

// Document is one registered entry of the verdict registry.
type Document struct {
	Hash        string
	Institution string
	LogoURL     string
	SignedAt    time.Time
	Status      DocumentStatus
}

// StoredReport is a received abuse report.
type StoredReport struct {
	ID            string    `json:"id"`
	DocumentHash  string    `json:"document_hash"`
	ReportType    string    `json:"report_type"`
	Reason        string    `json:"reason"`
	ReporterEmail string    `json:"reporter_email"`
	ReceivedAt    time.Time `json:"received_at"`
}

type Server struct {
	engine *gin.Engine

	mu        sync.Mutex
	documents map[string]Document
	reports   []StoredReport
}

// NewServer builds the stub router. origin is the allowed CORS origin of
// the web frontend during local development.
func NewServer(origin string, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		documents: make(map[string]Document),
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-CSRFToken"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/", s.handleRoot)

	v1 := router.Group("/api/v1/verifications")
	v1.Use(requireCSRF())
	{
		v1.POST("/verify/hash", s.handleVerify)
		v1.POST("/reports", s.handleReport)
	}

	s.engine = router
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Register adds or replaces a document in the verdict registry.
func (s *Server) Register(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.Hash] = doc
}

// Reports returns a copy of the received reports.
func (s *Server) Reports() []StoredReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredReport, len(s.reports))
	copy(out, s.reports)
	return out
}

// handleRoot mimics the page load that hands the browser its csrftoken.
func (s *Server) handleRoot(c *gin.Context) {
	if _, err := c.Cookie(csrfCookieName); err != nil {
		c.SetCookie(csrfCookieName, uuid.NewString(), 0, "/", "", false, false)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireCSRF enforces the Django-like contract: when the request carries a
// csrftoken cookie, the X-CSRFToken header must match it. Requests without
// the cookie pass so a fresh client can still talk to the stub.
func requireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(csrfCookieName)
		if err != nil {
			c.Next()
			return
		}
		if c.GetHeader("X-CSRFToken") != token {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "CSRF token missing or incorrect"})
			return
		}
		c.Next()
	}
}

type verifyRequest struct {
	DocumentHash string `json:"document_hash"`
	Method       string `json:"method"`
}

type institutionDoc struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

type documentDoc struct {
	Institution institutionDoc `json:"institution"`
	SignedAt    time.Time      `json:"signed_at"`
}

// verifyResponse deliberately omits document_hash: the real backend is not
// guaranteed to echo it and the client must overlay its own.
type verifyResponse struct {
	Result         string       `json:"result"`
	Document       *documentDoc `json:"document,omitempty"`
	CertificateURL string       `json:"certificate_url,omitempty"`
}

func (s *Server) handleVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.DocumentHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_hash is required"})
		return
	}
	switch req.Method {
	case "UPLOAD", "QR_SCAN", "HASH_INPUT":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown method"})
		return
	}

	s.mu.Lock()
	doc, known := s.documents[req.DocumentHash]
	s.mu.Unlock()

	if !known {
		c.JSON(http.StatusOK, verifyResponse{Result: "NOT_FOUND"})
		return
	}

	switch doc.Status {
	case StatusRevoked:
		c.JSON(http.StatusOK, verifyResponse{Result: "REVOKED"})
	case StatusTampered:
		c.JSON(http.StatusOK, verifyResponse{Result: "INVALID_SIGNATURE"})
	default:
		short := doc.Hash
		if len(short) > 8 {
			short = short[:8]
		}
		c.JSON(http.StatusOK, verifyResponse{
			Result: "AUTHENTIC",
			Document: &documentDoc{
				Institution: institutionDoc{Name: doc.Institution, LogoURL: doc.LogoURL},
				SignedAt:    doc.SignedAt,
			},
			CertificateURL: fmt.Sprintf("/certs/%s.pdf", short),
		})
	}
}

type reportRequest struct {
	DocumentHash  string `json:"document_hash"`
	ReportType    string `json:"report_type"`
	Reason        string `json:"reason"`
	ReporterEmail string `json:"reporter_email"`
}

func (s *Server) handleReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.DocumentHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_hash is required"})
		return
	}
	if !validation.IsReportType(req.ReportType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report_type"})
		return
	}
	if req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	report := StoredReport{
		ID:            uuid.NewString(),
		DocumentHash:  req.DocumentHash,
		ReportType:    req.ReportType,
		Reason:        req.Reason,
		ReporterEmail: req.ReporterEmail,
		ReceivedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.reports = append(s.reports, report)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"id": report.ID})
}
