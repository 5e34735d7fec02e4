package service

import (
	"context"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/wopihost/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// OpenKeeper opens the content encryption keeper at keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
// An empty keyURI disables encryption and returns a nil Keeper.
func OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	if keyURI == "" {
		return nil, nil
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open content keeper")
	}
	return keeper, nil
}
