package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/auth"
	"github.com/opencampus/doctrack/internal/service"
)

// SignatureController manages the caller's own signature.
type SignatureController struct {
	signatures service.SignatureService
}

// NewSignatureController creates a signature controller.
func NewSignatureController(signatures service.SignatureService) *SignatureController {
	return &SignatureController{signatures: signatures}
}

// UpsertSignatureRequest replaces the caller's signature.
type UpsertSignatureRequest struct {
	ImageURI string `json:"image_uri" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
}

// Upsert handles PUT /signature.
func (sc *SignatureController) Upsert(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req UpsertSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	signature, err := sc.signatures.Upsert(actor.ID, req.ImageURI, req.Passcode)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, signature)
}

// Get handles GET /signature.
func (sc *SignatureController) Get(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	signature, err := sc.signatures.Get(actor.ID)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, signature)
}
