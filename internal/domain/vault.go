package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultIdentity tags inserted vectors when setup omits an identity.
const DefaultIdentity = "David Lowe"

// VaultRecord is the singleton connection record (immutable value object).
// It exists decrypted only in memory; the api key never leaves this process.
type VaultRecord struct {
	endpointURL    string
	apiKey         string
	collectionName string
	identity       string
}

// NewVaultRecord validates and creates a VaultRecord.
// The endpoint must be an absolute http(s) URL. An empty identity
// falls back to DefaultIdentity before validation runs.
func NewVaultRecord(endpointURL, apiKey, collectionName, identity string) (VaultRecord, error) {
	endpointURL = strings.TrimSpace(endpointURL)
	apiKey = strings.TrimSpace(apiKey)
	collectionName = strings.TrimSpace(collectionName)
	identity = strings.TrimSpace(identity)
	if identity == "" {
		identity = DefaultIdentity
	}

	if endpointURL == "" {
		return VaultRecord{}, fmt.Errorf("%w: cloudflare_url is required", ErrValidation)
	}
	u, err := url.Parse(endpointURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return VaultRecord{}, fmt.Errorf("%w: cloudflare_url must be an absolute http(s) URL", ErrValidation)
	}
	if apiKey == "" {
		return VaultRecord{}, fmt.Errorf("%w: api_key is required", ErrValidation)
	}
	if collectionName == "" {
		return VaultRecord{}, fmt.Errorf("%w: collection_name is required", ErrValidation)
	}

	return VaultRecord{
		endpointURL:    strings.TrimRight(endpointURL, "/"),
		apiKey:         apiKey,
		collectionName: collectionName,
		identity:       identity,
	}, nil
}

// ReconstructVaultRecord creates a VaultRecord without validation (storage hydration).
func ReconstructVaultRecord(endpointURL, apiKey, collectionName, identity string) VaultRecord {
	return VaultRecord{
		endpointURL:    endpointURL,
		apiKey:         apiKey,
		collectionName: collectionName,
		identity:       identity,
	}
}

// EndpointURL returns the vector store endpoint.
func (r *VaultRecord) EndpointURL() string { return r.endpointURL }

// APIKey returns the vector store credential.
func (r *VaultRecord) APIKey() string { return r.apiKey }

// CollectionName returns the target collection.
func (r *VaultRecord) CollectionName() string { return r.collectionName }

// Identity returns the identity tag applied to inserted vectors.
func (r *VaultRecord) Identity() string { return r.identity }

// Target derives the store connection parameters for one upload.
func (r *VaultRecord) Target() StoreTarget {
	return StoreTarget{
		Endpoint:   r.endpointURL,
		APIKey:     r.apiKey,
		Collection: r.collectionName,
	}
}

// VaultStatus is the redacted public view of the vault.
// Identity and collection are empty when not configured.
type VaultStatus struct {
	Configured     bool
	Identity       string
	CollectionName string
}

// StatusFor builds the redacted status view of a record.
func StatusFor(r VaultRecord) VaultStatus {
	return VaultStatus{
		Configured:     true,
		Identity:       r.identity,
		CollectionName: r.collectionName,
	}
}
