package vaultrec

import (
	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
)

// recordDTO is the plaintext JSON shape sealed into the vault.
type recordDTO struct {
	EndpointURL    string `json:"endpoint_url"`
	APIKey         string `json:"api_key"`
	CollectionName string `json:"collection_name"`
	Identity       string `json:"identity"`
}

func toDTO(rec domain.VaultRecord) recordDTO {
	return recordDTO{
		EndpointURL:    rec.EndpointURL(),
		APIKey:         rec.APIKey(),
		CollectionName: rec.CollectionName(),
		Identity:       rec.Identity(),
	}
}

func fromDTO(dto recordDTO) domain.VaultRecord {
	return domain.ReconstructVaultRecord(dto.EndpointURL, dto.APIKey, dto.CollectionName, dto.Identity)
}
