package api

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cbu-recon/payscraper/internal/export"
	"github.com/cbu-recon/payscraper/pkg/logger"
	"github.com/cbu-recon/payscraper/pkg/payment"
)

type PreviewResponse struct {
	SessionID    string           `json:"session_id"`
	URL          string           `json:"url"`
	Columns      []string         `json:"columns"`
	Records      []payment.Record `json:"records"`
	TotalRecords int              `json:"total_records"`
}

// Preview godoc
// @Summary Preview a scrape session
// @Description Returns the stored records with their columns in export order
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} PreviewResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/sessions/{id} [get]
func (h *Handler) Preview(c *fiber.Ctx) error {
	// nil session: loadSession already wrote the error response
	sess, err := h.loadSession(c)
	if sess == nil {
		return err
	}

	return c.JSON(PreviewResponse{
		SessionID:    sess.ID,
		URL:          sess.URL,
		Columns:      sess.Columns,
		Records:      sess.Records,
		TotalRecords: len(sess.Records),
	})
}

type RejectedEdit struct {
	Row   string `json:"row"`
	Error string `json:"error"`
}

type UpdateResponse struct {
	Success  bool           `json:"success"`
	Updated  int            `json:"updated"`
	Rejected []RejectedEdit `json:"rejected"`
}

// UpdateRecords godoc
// @Summary Edit pass-book and variance columns
// @Description Body maps row index to column values. Each row is applied on its own; a rejected row leaves the others intact.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body map[string]map[string]string true "Edits by row index"
// @Success 200 {object} UpdateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/sessions/{id}/records [post]
func (h *Handler) UpdateRecords(c *fiber.Ctx) error {
	var edits map[string]map[string]any
	if err := c.BodyParser(&edits); err != nil {
		return c.Status(400).JSON(ErrorResponse{Error: "invalid request body"})
	}

	defer h.locks.lock(c.Params("id"))()

	sess, err := h.loadSession(c)
	if sess == nil {
		return err
	}

	rows := make([]string, 0, len(edits))
	for row := range edits {
		rows = append(rows, row)
	}
	sort.Strings(rows)

	resp := UpdateResponse{Success: true, Rejected: []RejectedEdit{}}
	for _, row := range rows {
		idx, err := strconv.Atoi(row)
		if err != nil {
			resp.Rejected = append(resp.Rejected, RejectedEdit{Row: row, Error: "row index must be an integer"})
			continue
		}
		if err := payment.UpdateRecord(sess.Records, idx, stringValues(edits[row])); err != nil {
			resp.Rejected = append(resp.Rejected, RejectedEdit{Row: row, Error: err.Error()})
			continue
		}
		resp.Updated++
	}

	if resp.Updated > 0 {
		if err := h.store.Save(c.Context(), sess, h.sessionTTL); err != nil {
			logger.Log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to save session")
			return c.Status(500).JSON(ErrorResponse{Error: "failed to store edits"})
		}
	}

	logger.Log.Debug().
		Str("session_id", sess.ID).
		Int("updated", resp.Updated).
		Int("rejected", len(resp.Rejected)).
		Msg("records updated")

	return c.JSON(resp)
}

func stringValues(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out
}

type ReconcileResponse struct {
	Success bool             `json:"success"`
	Updated int              `json:"updated"`
	Records []payment.Record `json:"records"`
}

// Reconcile godoc
// @Summary Recompute variances
// @Description Sets every variance to scraped minus pass-book amount where both parse
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ReconcileResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/sessions/{id}/reconcile [post]
func (h *Handler) Reconcile(c *fiber.Ctx) error {
	defer h.locks.lock(c.Params("id"))()

	sess, err := h.loadSession(c)
	if sess == nil {
		return err
	}

	n := payment.ReconcileAll(sess.Records)
	if n > 0 {
		if err := h.store.Save(c.Context(), sess, h.sessionTTL); err != nil {
			logger.Log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to save session")
			return c.Status(500).JSON(ErrorResponse{Error: "failed to store reconciliation"})
		}
	}

	return c.JSON(ReconcileResponse{
		Success: true,
		Updated: n,
		Records: sess.Records,
	})
}

// Export godoc
// @Summary Download the session as xlsx
// @Description Sends the workbook as an attachment and then drops the session
// @Tags sessions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /api/sessions/{id}/export [get]
func (h *Handler) Export(c *fiber.Ctx) error {
	log := logger.Log

	defer h.locks.lock(c.Params("id"))()

	sess, err := h.loadSession(c)
	if sess == nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, sess.Records); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID).Msg("error generating excel file")
		return c.Status(500).JSON(ErrorResponse{Error: "error generating excel file"})
	}

	filename := export.FileName(sess.URL, sess.ID)
	log.Info().Str("session_id", sess.ID).Str("file", filename).Msg("generated excel file")

	if err := h.store.Delete(c.Context(), sess.ID); err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to delete session after export")
	}

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(buf.Bytes())
}
