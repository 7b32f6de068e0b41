package api

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "github.com/cbu-recon/payscraper/docs"
	"github.com/cbu-recon/payscraper/internal/queue"
	"github.com/cbu-recon/payscraper/internal/scraper"
	"github.com/cbu-recon/payscraper/internal/session"
	"github.com/cbu-recon/payscraper/pkg/logger"
)

const serviceName = "payment-data-scraper"

type Scraper interface {
	Scrape(ctx context.Context, url string) (*scraper.Result, error)
}

// EventPublisher announces completed scrapes. Optional.
type EventPublisher interface {
	PublishScrapeCompleted(ctx context.Context, event queue.ScrapeCompleted) error
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	scraper       Scraper
	store         session.Store
	publisher     EventPublisher
	sessionTTL    time.Duration
	scrapeTimeout time.Duration
	locks         sessionLocks
}

type Option func(*Handler)

func WithPublisher(p EventPublisher) Option {
	return func(h *Handler) {
		h.publisher = p
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		if ttl > 0 {
			h.sessionTTL = ttl
		}
	}
}

func WithScrapeTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.scrapeTimeout = d
		}
	}
}

func NewHandler(s Scraper, store session.Store, opts ...Option) *Handler {
	h := &Handler{
		scraper:       s,
		store:         store,
		sessionTTL:    time.Hour,
		scrapeTimeout: 90 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) SetupRoutes(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Post("/scrape", h.Scrape)

	sessions := api.Group("/sessions")
	sessions.Get("/:id", h.Preview)
	sessions.Post("/:id/records", h.UpdateRecords)
	sessions.Post("/:id/reconcile", h.Reconcile)
	sessions.Get("/:id/export", h.Export)
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": serviceName,
	})
}

type ScrapeRequest struct {
	URL string `json:"url" form:"url"`
}

type ScrapeResponse struct {
	Found        bool   `json:"found"`
	SessionID    string `json:"session_id,omitempty"`
	TotalRecords int    `json:"total_records"`
	Message      string `json:"message,omitempty"`
}

// Scrape godoc
// @Summary Scrape payment records from a page
// @Description Fetches the page once, extracts payment rows and stores them in a new session
// @Tags scrape
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body ScrapeRequest true "Page to scrape"
// @Success 200 {object} ScrapeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Fetch or parse failed"
// @Router /api/scrape [post]
func (h *Handler) Scrape(c *fiber.Ctx) error {
	log := logger.Log

	var req ScrapeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(ErrorResponse{Error: "invalid request body"})
	}

	// Form values alias fasthttp's request buffer.
	target := strings.Clone(strings.TrimSpace(req.URL))
	if target == "" {
		return c.Status(400).JSON(ErrorResponse{Error: "url is required"})
	}
	if !validURL(target) {
		return c.Status(400).JSON(ErrorResponse{Error: "url must be absolute with http:// or https://"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.scrapeTimeout)
	defer cancel()

	result, err := h.scraper.Scrape(ctx, target)
	if err != nil {
		log.Error().Err(err).Str("url", target).Msg("scrape failed")
		return c.Status(502).JSON(ErrorResponse{Error: err.Error()})
	}

	if len(result.Records) == 0 {
		return c.JSON(ScrapeResponse{
			Found:   false,
			Message: "no payment data found on the page",
		})
	}

	sess := session.New(target, result.Records)
	if err := h.store.Save(c.Context(), sess, h.sessionTTL); err != nil {
		log.Error().Err(err).Str("url", target).Msg("failed to save session")
		return c.Status(500).JSON(ErrorResponse{Error: "failed to store scraped data"})
	}

	log.Info().
		Str("session_id", sess.ID).
		Str("url", target).
		Int("records", len(sess.Records)).
		Msg("scrape stored")

	h.publishCompleted(c.Context(), sess, result)

	return c.JSON(ScrapeResponse{
		Found:        true,
		SessionID:    sess.ID,
		TotalRecords: len(sess.Records),
	})
}

func (h *Handler) publishCompleted(ctx context.Context, sess *session.Session, result *scraper.Result) {
	if h.publisher == nil {
		return
	}
	event := queue.ScrapeCompleted{
		SessionID:    sess.ID,
		URL:          sess.URL,
		FinalURL:     result.FinalURL,
		TotalRecords: len(sess.Records),
		Blocked:      result.Blocked,
		ScrapedAt:    sess.CreatedAt,
	}
	if err := h.publisher.PublishScrapeCompleted(ctx, event); err != nil {
		logger.Log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to publish scrape event")
	}
}

func (h *Handler) loadSession(c *fiber.Ctx) (*session.Session, error) {
	sess, err := h.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, c.Status(404).JSON(ErrorResponse{Error: "session expired or invalid, please scrape again"})
		}
		logger.Log.Error().Err(err).Str("session_id", c.Params("id")).Msg("failed to load session")
		return nil, c.Status(500).JSON(ErrorResponse{Error: "failed to load session"})
	}
	return sess, nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
