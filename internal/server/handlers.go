package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"heropick/internal/domain"
	"heropick/internal/marvel"
)

const logBodyLimit = 300

// HandleHealth reports liveness and which keys are loaded
func (s *Server) HandleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, domain.Health{
			OK:            true,
			PublicLoaded:  s.upstream.PublicKeyLoaded(),
			PrivateLoaded: s.upstream.PrivateKeyLoaded(),
		})
	}
}

// HandleSearch serves GET /api/marvel/characters?query=&limit=
func (s *Server) HandleSearch() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("query"))
		if utf8.RuneCountInString(q) < MinQueryChars {
			s.metrics.ShortQueriesTotal.Inc()
			c.JSON(http.StatusOK, []domain.CharacterSummary{})
			return
		}
		if !s.upstream.HasCredentials() {
			s.logger.Error("missing MARVEL_PUBLIC or MARVEL_PRIVATE")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured"})
			return
		}

		limit := s.parseLimit(c.Query("limit"))
		start := time.Now()
		results, err := s.upstream.SearchByName(c.Request.Context(), q, limit)
		s.observe("search", start, err)
		if err != nil {
			s.writeUpstreamError(c, "search", err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

// HandleDetail serves GET /api/marvel/characters/:id
func (s *Server) HandleDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
			return
		}
		if !s.upstream.HasCredentials() {
			s.logger.Error("missing MARVEL_PUBLIC or MARVEL_PRIVATE")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured"})
			return
		}

		start := time.Now()
		detail, err := s.upstream.Character(c.Request.Context(), id)
		s.observe("detail", start, err)
		if err != nil {
			if errors.Is(err, marvel.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			s.writeUpstreamError(c, "detail", err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

// parseLimit clamps the caller's limit into 1..MaxSearchLimit, falling back
// to the configured default when absent or malformed.
func (s *Server) parseLimit(raw string) int {
	if raw == "" {
		return s.searchLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return s.searchLimit
	}
	if n < 1 {
		return 1
	}
	if n > MaxSearchLimit {
		return MaxSearchLimit
	}
	return n
}

// writeUpstreamError passes upstream non-2xx through verbatim and turns
// everything else into a generic 500.
func (s *Server) writeUpstreamError(c *gin.Context, op string, err error) {
	var se *marvel.StatusError
	if errors.As(err, &se) {
		s.logger.Error("upstream error",
			"op", op,
			"status", se.Status,
			"body", truncate(se.Body, logBodyLimit),
			"request_id", c.GetString(requestIDKey),
		)
		c.Data(se.Status, "text/plain; charset=utf-8", []byte(se.Body))
		return
	}
	s.logger.Error("server error", "op", op, "error", err, "request_id", c.GetString(requestIDKey))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}

func (s *Server) observe(op string, start time.Time, err error) {
	s.metrics.UpstreamDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
	s.metrics.UpstreamCallsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, marvel.ErrNotFound) {
		return "not_found"
	}
	var se *marvel.StatusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.Status)
	}
	return "error"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
