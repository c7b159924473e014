package respond

import (
	model "agentgrind-service/models"
	"agentgrind-service/service/bounty_service"
)

// BountyListResponse bounty board listing
type BountyListResponse struct {
	List  []*bounty_service.BountyView `json:"list"`
	Total int                          `json:"total"`
}

// ToBountyListResponse build a bounty listing response
func ToBountyListResponse(views []*bounty_service.BountyView) *BountyListResponse {
	return &BountyListResponse{
		List:  views,
		Total: len(views),
	}
}

// TxResponse an unsigned transaction awaiting a wallet signature
type TxResponse struct {
	TxBase64 string `json:"tx_base64"`
	// Fee and Net only populated for create transactions
	Fee uint64 `json:"fee,omitempty"`
	Net uint64 `json:"net,omitempty"`
}

// MetadataBatchResponse metadata rows resolved by a batch key lookup
type MetadataBatchResponse struct {
	Items []*model.BountyMetadata `json:"items"`
	Total int                     `json:"total"`
}

// LinkXResponse outcome of the X OAuth callback plus the link transaction
type LinkXResponse struct {
	Wallet   string `json:"wallet"`
	XHandle  string `json:"x_handle"`
	TxBase64 string `json:"tx_base64"`
}
