package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/ledger"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/transcript"
)

// transcriptState is the client-held transcript sent with every edit.
type transcriptState struct {
	Segments          []transcript.Segment    `json:"segments" validate:"required"`
	AuditLog          []transcript.AuditEntry `json:"auditLog"`
	AvailableSpeakers []string                `json:"availableSpeakers"`
}

type segmentEditRequest struct {
	transcriptState
	SegmentIndex *int    `json:"segmentIndex" validate:"required"`
	NewText      string  `json:"newText"`
	NewSpeaker   *string `json:"newSpeaker"`
}

type speakerEditRequest struct {
	transcriptState
	OldSpeaker    string `json:"oldSpeaker"`
	NewSpeaker    string `json:"newSpeaker"`
	OperationType string `json:"operationType" validate:"omitempty,oneof=rename reassign delete"`
}

type transcriptResponse struct {
	Success bool `json:"success"`
	*ledger.Result
}

func (h *Handler) updateSegment(c *gin.Context) {
	var req segmentEditRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.ledger.UpdateSegmentText(ledger.TextEdit{
		Segments:   req.Segments,
		AuditLog:   req.AuditLog,
		Roster:     req.AvailableSpeakers,
		Index:      *req.SegmentIndex,
		NewText:    req.NewText,
		NewSpeaker: req.NewSpeaker,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transcriptResponse{Success: true, Result: res})
}

// updateSpeakers applies a bulk speaker operation, or rebuilds a
// client-edited segment list when no operation is named.
func (h *Handler) updateSpeakers(c *gin.Context) {
	var req speakerEditRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.OperationType == "" {
		res := h.ledger.Refresh(req.Segments, req.AvailableSpeakers, req.AuditLog)
		c.JSON(http.StatusOK, transcriptResponse{Success: true, Result: res})
		return
	}

	res, err := h.ledger.BulkSpeakerOperation(ledger.BulkEdit{
		Segments:   req.Segments,
		AuditLog:   req.AuditLog,
		Roster:     req.AvailableSpeakers,
		OldSpeaker: req.OldSpeaker,
		NewSpeaker: req.NewSpeaker,
		Operation:  ledger.Operation(req.OperationType),
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transcriptResponse{Success: true, Result: res})
}
