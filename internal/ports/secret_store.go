package ports

import "context"

// SecretStore holds key material for the wallet and the local KMS, addressed
// by slash-separated refs. Get wraps domain.ErrSecretNotFound for absent refs.
type SecretStore interface {
	Get(ctx context.Context, ref string) (string, error)
	Put(ctx context.Context, ref string, value string) error
	Delete(ctx context.Context, ref string) error
}
