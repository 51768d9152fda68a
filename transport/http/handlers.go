package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veridian-labs/walletproof/core"
	"github.com/veridian-labs/walletproof/ports"
	"github.com/veridian-labs/walletproof/service"
)

// Handlers contains HTTP handlers for the verification endpoints
type Handlers struct {
	issuer   *service.Issuer
	verifier *service.Verifier
	ledger   ports.Ledger
}

// NewHandlers creates new verification handlers. The ledger is optional.
func NewHandlers(issuer *service.Issuer, verifier *service.Verifier, ledger ports.Ledger) *Handlers {
	return &Handlers{
		issuer:   issuer,
		verifier: verifier,
		ledger:   ledger,
	}
}

// Challenge handles the challenge issuance request
func (h *Handlers) Challenge(c *gin.Context) {
	var req struct {
		WalletAddress  string   `json:"wallet_address" binding:"required"`
		PublicKey      string   `json:"public_key"`
		RequiredClaims []string `json:"required_claims" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	issued, err := h.issuer.IssueChallenge(req.WalletAddress, req.PublicKey, req.RequiredClaims)
	if err != nil {
		if errors.Is(err, core.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, core.ErrSigningUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Signing subsystem unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge":       issued.Canonical,
		"challenge_hash":  issued.Hash,
		"challenge_token": issued.Token,
		"signature":       issued.Signature,
		"did":             issued.DID,
		"did_document":    issued.DIDDocument,
		"verification_data": gin.H{
			"address":    issued.Challenge.Address,
			"public_key": issued.Challenge.PublicKey,
			"issued_at":  issued.Challenge.IssuedAt,
			"expiration": issued.Challenge.ExpiresAt,
			"expires_at": issued.Challenge.ExpiresAtTime().UTC().Format(time.RFC3339),
			"signed":     issued.Signature != "",
		},
		"status": "challenge_generated",
	})
}

// Verify handles the challenge verification request
func (h *Handlers) Verify(c *gin.Context) {
	var req struct {
		Challenge       string `json:"challenge" binding:"required"`
		ChallengeHash   string `json:"challenge_hash" binding:"required"`
		Signature       string `json:"signature"`
		DID             string `json:"did" binding:"required"`
		ChallengeToken  string `json:"challenge_token"`
		ExpectedAddress string `json:"expected_address"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resp := &core.ChallengeResponse{
		Challenge:      req.Challenge,
		ChallengeHash:  req.ChallengeHash,
		Signature:      req.Signature,
		DID:            req.DID,
		ChallengeToken: req.ChallengeToken,
	}

	result, err := h.verifier.Verify(c.Request.Context(), resp, req.ExpectedAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	c.JSON(statusForReason(result.Reason), gin.H{
		"verified":              result.Verified,
		"reason":                result.Reason,
		"did":                   result.DID,
		"address":               result.Address,
		"required_claims":       result.Claims,
		"verifiable_credential": result.Credential,
		"ledger":                result.Ledger,
		"status":                statusLabel(result),
	})
}

// Account handles the ledger corroboration lookup
func (h *Handlers) Account(c *gin.Context) {
	if h.ledger == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Ledger lookup not configured"})
		return
	}

	info, err := h.ledger.AccountInfo(c.Request.Context(), c.Param("address"))
	if err != nil {
		// Recoverable: the ledger being unreachable is not a verification
		// verdict, so the caller gets a distinct status.
		c.JSON(http.StatusBadGateway, gin.H{
			"status": core.LedgerUnavailable,
			"error":  "Ledger node unreachable",
		})
		return
	}

	status := core.LedgerConfirmed
	if !info.Exists {
		status = core.LedgerUnconfirmed
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"exists":   info.Exists,
		"balance":  info.Balance,
		"sequence": info.Sequence,
	})
}

// Health reports liveness
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusForReason maps reason codes to HTTP statuses deterministically:
// validation problems are 400, everything the holder got wrong is 401.
func statusForReason(reason core.ReasonCode) int {
	switch reason {
	case core.ReasonOK:
		return http.StatusOK
	case core.ReasonMissingFields:
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

func statusLabel(result *core.VerificationResult) string {
	if !result.Verified {
		return "verification_failed"
	}
	if result.Ledger != nil && result.Ledger.Status == core.LedgerUnavailable {
		return "verification_incomplete"
	}
	return "verified"
}
