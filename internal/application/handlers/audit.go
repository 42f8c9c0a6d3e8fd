package handlers

import (
	"context"

	"github.com/tkrendel/attest/internal/domain/services"
)

// AuditHandler handles vote integrity audit operations at the application
// layer.
type AuditHandler struct {
	auditor *services.Auditor
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditor *services.Auditor) *AuditHandler {
	return &AuditHandler{
		auditor: auditor,
	}
}

// HandleCheck runs the detect-only audit pass over every fact.
func (h *AuditHandler) HandleCheck(ctx context.Context) (*services.CheckReport, error) {
	return h.auditor.CheckAll(ctx)
}

// HandleConvert plans and applies repairs for every fact. Destructive;
// callers must have confirmed with the operator first.
func (h *AuditHandler) HandleConvert(ctx context.Context) ([]services.AppliedRepair, error) {
	return h.auditor.ConvertAll(ctx)
}
