package handler

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"agentgrind-service/bounty"
	"agentgrind-service/chain"
	"agentgrind-service/codec"
	"agentgrind-service/controller/respond"
	"agentgrind-service/database"
	model "agentgrind-service/models"
	"agentgrind-service/service/bounty_service"
)

// BountyHandler bounty query and action handler
type BountyHandler struct {
	bountyService *bounty_service.BountyService
}

// NewBountyHandler create bounty handler instance
func NewBountyHandler(bountyService *bounty_service.BountyService) *BountyHandler {
	return &BountyHandler{bountyService: bountyService}
}

// respondActionError map domain errors onto the response envelope
func respondActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chain.ErrAccountNotFound), errors.Is(err, database.ErrNotFound):
		respond.NotFound(c, err.Error())
	case errors.Is(err, bounty.ErrTransitionNotAllowed),
		errors.Is(err, bounty.ErrWrongActor),
		errors.Is(err, bounty.ErrDeadlinePassed),
		errors.Is(err, bounty.ErrReviewWindowActive),
		errors.Is(err, bounty.ErrEmptyReason),
		errors.Is(err, bounty.ErrNoClaimer),
		errors.Is(err, bounty.ErrAmountTooSmall),
		errors.Is(err, bounty.ErrAmountInvalid),
		errors.Is(err, codec.ErrStringTooLong):
		respond.InvalidParam(c, err.Error())
	default:
		respond.ServerError(c, err.Error())
	}
}

func parseKey(c *gin.Context, value, field string) (solana.PublicKey, bool) {
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		respond.InvalidParam(c, "invalid "+field+": "+err.Error())
		return solana.PublicKey{}, false
	}
	return key, true
}

// ListBounties list every bounty on the board
// @Summary List bounties
// @Description List all bounty accounts, open first, nearest deadline first
// @Tags Bounty
// @Accept json
// @Produce json
// @Success 200 {object} respond.Response{data=respond.BountyListResponse}
// @Router /api/v1/bounties [get]
func (h *BountyHandler) ListBounties(c *gin.Context) {
	views, err := h.bountyService.ListBounties(c.Request.Context())
	if err != nil {
		respondActionError(c, err)
		return
	}
	respond.Success(c, respond.ToBountyListResponse(views))
}

// GetBounty fetch one bounty by creator and bounty id
// @Summary Get bounty
// @Description Fetch and decode one bounty account by its PDA seeds
// @Tags Bounty
// @Accept json
// @Produce json
// @Param creator path string true "Creator wallet address"
// @Param bountyId path string true "Bounty ID"
// @Success 200 {object} respond.Response{data=bounty_service.BountyView}
// @Router /api/v1/bounties/{creator}/{bountyId} [get]
func (h *BountyHandler) GetBounty(c *gin.Context) {
	creator, ok := parseKey(c, c.Param("creator"), "creator")
	if !ok {
		return
	}
	view, err := h.bountyService.GetBounty(c.Request.Context(), creator, c.Param("bountyId"))
	if err != nil {
		respondActionError(c, err)
		return
	}
	respond.Success(c, view)
}

// CreateBountyRequest create bounty request body. The gross amount arrives
// either as raw atoms (gross_amount) or as a decimal token amount (gross_ui);
// atoms win when both are set.
type CreateBountyRequest struct {
	Creator     string  `json:"creator" binding:"required"`
	BountyID    string  `json:"bounty_id" binding:"required"`
	GrossAmount uint64  `json:"gross_amount"`
	GrossUi     float64 `json:"gross_ui"`
	Deadline    int64   `json:"deadline" binding:"required"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// CreateBounty build an unsigned create-bounty transaction
// @Summary Create bounty
// @Description Build the unsigned create transaction (escrow + platform fee legs) for wallet signing
// @Tags Bounty
// @Accept json
// @Produce json
// @Param request body CreateBountyRequest true "Create parameters"
// @Success 200 {object} respond.Response{data=respond.TxResponse}
// @Router /api/v1/bounties [post]
func (h *BountyHandler) CreateBounty(c *gin.Context) {
	var reqBody CreateBountyRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}
	creator, ok := parseKey(c, reqBody.Creator, "creator")
	if !ok {
		return
	}

	gross := reqBody.GrossAmount
	if gross == 0 {
		var err error
		gross, err = bounty.AtomsFromUi(reqBody.GrossUi)
		if err != nil {
			respond.InvalidParam(c, err.Error())
			return
		}
	}

	tx, err := h.bountyService.BuildCreate(c.Request.Context(), bounty_service.CreateParams{
		Creator:     creator,
		BountyID:    reqBody.BountyID,
		GrossAmount: gross,
		Deadline:    reqBody.Deadline,
		Title:       reqBody.Title,
		Description: reqBody.Description,
	})
	if err != nil {
		respondActionError(c, err)
		return
	}
	encoded, err := h.bountyService.EncodeBase64(c.Request.Context(), tx)
	if err != nil {
		respondActionError(c, err)
		return
	}

	fee, net, _ := bounty.SplitFee(gross)
	respond.Success(c, &respond.TxResponse{TxBase64: encoded, Fee: fee, Net: net})
}

// ActionRequest lifecycle action request body
type ActionRequest struct {
	Caller   string `json:"caller" binding:"required"`
	ProofURI string `json:"proof_uri"`
	Reason   string `json:"reason"`
}

// BountyAction build an unsigned lifecycle transaction
// @Summary Perform bounty action
// @Description Build the unsigned transaction for a lifecycle action (claim, abandon, proof, approve, reject, finalize, cancel)
// @Tags Bounty
// @Accept json
// @Produce json
// @Param creator path string true "Creator wallet address"
// @Param bountyId path string true "Bounty ID"
// @Param action path string true "Action" Enums(claim, abandon, proof, approve, reject, finalize, cancel)
// @Param request body ActionRequest true "Action parameters"
// @Success 200 {object} respond.Response{data=respond.TxResponse}
// @Router /api/v1/bounties/{creator}/{bountyId}/{action} [post]
func (h *BountyHandler) BountyAction(c *gin.Context) {
	var reqBody ActionRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}
	creator, ok := parseKey(c, c.Param("creator"), "creator")
	if !ok {
		return
	}
	caller, ok := parseKey(c, reqBody.Caller, "caller")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	bountyID := c.Param("bountyId")

	var tx *chain.UnsignedTx
	var err error
	switch c.Param("action") {
	case "claim":
		tx, err = h.bountyService.BuildClaim(ctx, caller, creator, bountyID)
	case "abandon":
		tx, err = h.bountyService.BuildAbandon(ctx, caller, creator, bountyID)
	case "proof":
		tx, err = h.bountyService.BuildSubmitProof(ctx, caller, creator, bountyID, reqBody.ProofURI)
	case "approve":
		tx, err = h.bountyService.BuildApprove(ctx, caller, creator, bountyID)
	case "reject":
		tx, err = h.bountyService.BuildReject(ctx, caller, creator, bountyID, reqBody.Reason)
	case "finalize":
		tx, err = h.bountyService.BuildFinalize(ctx, caller, creator, bountyID)
	case "cancel":
		tx, err = h.bountyService.BuildCancel(ctx, caller, creator, bountyID)
	default:
		respond.InvalidParam(c, "unknown action: "+c.Param("action"))
		return
	}
	if err != nil {
		respondActionError(c, err)
		return
	}

	encoded, err := h.bountyService.EncodeBase64(ctx, tx)
	if err != nil {
		respondActionError(c, err)
		return
	}
	respond.Success(c, &respond.TxResponse{TxBase64: encoded})
}

// MetadataRequest metadata upsert request body
type MetadataRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SaveMetadata store off-chain title/description for a bounty
// @Summary Save bounty metadata
// @Description Store off-chain title and description for a bounty
// @Tags Bounty
// @Accept json
// @Produce json
// @Param creator path string true "Creator wallet address"
// @Param bountyId path string true "Bounty ID"
// @Param request body MetadataRequest true "Metadata"
// @Success 200 {object} respond.Response
// @Router /api/v1/bounties/{creator}/{bountyId}/metadata [put]
func (h *BountyHandler) SaveMetadata(c *gin.Context) {
	var reqBody MetadataRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}
	if _, ok := parseKey(c, c.Param("creator"), "creator"); !ok {
		return
	}
	if len(reqBody.Title) > model.MaxTitleLen || len(reqBody.Description) > model.MaxDescriptionLen {
		respond.InvalidParam(c, "title or description too long")
		return
	}

	err := h.bountyService.SaveMetadata(&model.BountyMetadata{
		Creator:     c.Param("creator"),
		BountyID:    c.Param("bountyId"),
		Title:       reqBody.Title,
		Description: reqBody.Description,
	})
	if err != nil {
		respondActionError(c, err)
		return
	}
	respond.Success(c, nil)
}

// BatchMetadataRequest batch metadata lookup request body
type BatchMetadataRequest struct {
	Keys []bounty_service.MetadataKey `json:"keys"`
}

// BatchMetadata resolve off-chain metadata for many bounties in one call
// @Summary Batch get bounty metadata
// @Description Resolve off-chain metadata for a list of (creator, bounty_id) keys; unknown keys are omitted
// @Tags Bounty
// @Accept json
// @Produce json
// @Param request body BatchMetadataRequest true "Metadata keys"
// @Success 200 {object} respond.Response{data=respond.MetadataBatchResponse}
// @Router /api/v1/bounties/metadata/batch [post]
func (h *BountyHandler) BatchMetadata(c *gin.Context) {
	var reqBody BatchMetadataRequest
	if err := c.ShouldBindJSON(&reqBody); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}
	items, err := h.bountyService.GetMetadataBatch(reqBody.Keys)
	if err != nil {
		respondActionError(c, err)
		return
	}
	respond.Success(c, &respond.MetadataBatchResponse{Items: items, Total: len(items)})
}

// GetMetadata fetch off-chain metadata for a bounty
// @Summary Get bounty metadata
// @Description Fetch off-chain title and description for a bounty
// @Tags Bounty
// @Accept json
// @Produce json
// @Param creator path string true "Creator wallet address"
// @Param bountyId path string true "Bounty ID"
// @Success 200 {object} respond.Response{data=model.BountyMetadata}
// @Router /api/v1/bounties/{creator}/{bountyId}/metadata [get]
func (h *BountyHandler) GetMetadata(c *gin.Context) {
	meta, err := h.bountyService.GetMetadata(c.Param("creator"), c.Param("bountyId"))
	if err != nil {
		respondActionError(c, err)
		return
	}
	respond.Success(c, meta)
}
