package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bizpilot/bizpilot_backend/internal/apperrors"
	portssvc "github.com/bizpilot/bizpilot_backend/internal/core/ports/services"
	"github.com/bizpilot/bizpilot_backend/internal/dto"
	"github.com/bizpilot/bizpilot_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// createJournalEntry validates and persists a draft journal entry with its lines.
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateJournalEntryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), createReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingField),
			errors.Is(err, apperrors.ErrStructural),
			errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrUnbalancedEntry):
			logger.Warn("Validation error creating journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Referenced record not found creating journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create journal entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
		}
		return
	}

	logger.Info("Journal entry created successfully", slog.String("journal_entry_id", entry.JournalEntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postJournalEntry applies a journal entry's balance effects exactly once.
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID := c.Param("journalEntryID")

	postReq := dto.PostJournalEntryRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		logger.Error("Failed to bind JSON for PostJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), journalEntryID, postReq.PostedBy)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyPosted):
			logger.Warn("Journal entry already posted", slog.String("journal_entry_id", journalEntryID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Journal entry not found for posting", slog.String("journal_entry_id", journalEntryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Concurrent posting conflict", slog.String("journal_entry_id", journalEntryID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Posting conflict, please retry"})
		case errors.Is(err, apperrors.ErrMissingField), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error posting journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post journal entry in service", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal entry"})
		}
		return
	}

	logger.Info("Journal entry posted successfully", slog.String("journal_entry_id", journalEntryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry retrieves a journal entry and its lines.
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")
	journalEntryID := c.Param("journalEntryID")

	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), businessID, journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal entry not found", slog.String("journal_entry_id", journalEntryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry from service", slog.String("error", err.Error()), slog.String("journal_entry_id", journalEntryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		return
	}

	logger.Debug("Journal entry retrieved successfully", slog.String("journal_entry_id", journalEntryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries retrieves recent journal entries for a business.
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID := c.Param("businessID")

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	var nextToken *string
	if tokenStr := c.Query("nextToken"); tokenStr != "" {
		nextToken = &tokenStr
	}

	entries, newNextToken, err := h.journalService.ListJournalEntries(c.Request.Context(), businessID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token listing journal entries", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken parameter"})
			return
		}
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()), slog.String("business_id", businessID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: newNextToken,
	})
}

// registerJournalRoutes registers journal entry specific routes
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	journalHandler := newJournalHandler(journalService)

	journals := group.Group("/journal-entries")
	{
		journals.POST("", journalHandler.createJournalEntry)
		journals.POST("/:journalEntryID/post", journalHandler.postJournalEntry)
	}

	businesses := group.Group("/businesses/:businessID")
	{
		businesses.GET("/journal-entries", journalHandler.listJournalEntries)
		businesses.GET("/journal-entries/:journalEntryID", journalHandler.getJournalEntry)
	}
}
