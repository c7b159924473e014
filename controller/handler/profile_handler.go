package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"agentgrind-service/controller/respond"
	"agentgrind-service/service/profile_service"
	"agentgrind-service/service/xauth_service"
)

// ProfileHandler creator profile and X linking handler
type ProfileHandler struct {
	profileService *profile_service.ProfileService
	xauthService   *xauth_service.XAuthService
}

// NewProfileHandler create profile handler instance
func NewProfileHandler(profileService *profile_service.ProfileService, xauthService *xauth_service.XAuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		xauthService:   xauthService,
	}
}

// GetProfile fetch a creator profile with its access tier
// @Summary Get creator profile
// @Description Fetch on-chain reputation and derived access tier for a wallet
// @Tags Profile
// @Accept json
// @Produce json
// @Param wallet path string true "Wallet address"
// @Success 200 {object} respond.Response{data=profile_service.ProfileView}
// @Router /api/v1/profiles/{wallet} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	wallet, ok := parseKey(c, c.Param("wallet"), "wallet")
	if !ok {
		return
	}
	view, err := h.profileService.GetProfile(c.Request.Context(), wallet)
	if err != nil {
		respondActionError(c, err)
		return
	}
	respond.Success(c, view)
}

// InitProfile build an unsigned init-profile transaction
// @Summary Initialize profile
// @Description Build the unsigned transaction creating the wallet's profile at initial reputation
// @Tags Profile
// @Accept json
// @Produce json
// @Param wallet path string true "Wallet address"
// @Success 200 {object} respond.Response{data=respond.TxResponse}
// @Router /api/v1/profiles/{wallet}/init [post]
func (h *ProfileHandler) InitProfile(c *gin.Context) {
	wallet, ok := parseKey(c, c.Param("wallet"), "wallet")
	if !ok {
		return
	}
	tx, err := h.profileService.BuildInitProfile(wallet)
	if err != nil {
		respondActionError(c, err)
		return
	}
	encoded, err := h.profileService.EncodeBase64(c.Request.Context(), tx)
	if err != nil {
		respondActionError(c, err)
		return
	}
	respond.Success(c, &respond.TxResponse{TxBase64: encoded})
}

// StartXLink begin the X OAuth PKCE flow for a wallet
// @Summary Start X linking
// @Description Begin the OAuth2 PKCE flow; redirects the user to the X authorization page
// @Tags Profile
// @Accept json
// @Produce json
// @Param wallet query string true "Wallet address"
// @Success 302
// @Router /api/v1/x/start [get]
func (h *ProfileHandler) StartXLink(c *gin.Context) {
	wallet, ok := parseKey(c, c.Query("wallet"), "wallet")
	if !ok {
		return
	}
	authURL, err := h.xauthService.StartLink(wallet.String())
	if err != nil {
		if errors.Is(err, xauth_service.ErrNotConfigured) {
			respond.ServerError(c, err.Error())
			return
		}
		respondActionError(c, err)
		return
	}
	c.Redirect(302, authURL)
}

// XCallback finish the X OAuth flow and build the link transaction
// @Summary X OAuth callback
// @Description Exchange the OAuth code, resolve the verified handle, and build the unsigned link_x transaction
// @Tags Profile
// @Accept json
// @Produce json
// @Param state query string true "OAuth state"
// @Param code query string true "OAuth code"
// @Success 200 {object} respond.Response{data=respond.LinkXResponse}
// @Router /api/v1/x/callback [get]
func (h *ProfileHandler) XCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.InvalidParam(c, "missing state or code")
		return
	}

	result, err := h.xauthService.HandleCallback(state, code)
	if err != nil {
		if errors.Is(err, xauth_service.ErrInvalidState) {
			respond.InvalidParam(c, err.Error())
			return
		}
		respond.ServerError(c, err.Error())
		return
	}

	wallet, ok := parseKey(c, result.Wallet, "wallet")
	if !ok {
		return
	}
	tx, err := h.profileService.BuildLinkX(wallet, result.XHandle)
	if err != nil {
		respondActionError(c, err)
		return
	}
	encoded, err := h.profileService.EncodeBase64(c.Request.Context(), tx)
	if err != nil {
		respondActionError(c, err)
		return
	}

	respond.Success(c, &respond.LinkXResponse{
		Wallet:   result.Wallet,
		XHandle:  result.XHandle,
		TxBase64: encoded,
	})
}
