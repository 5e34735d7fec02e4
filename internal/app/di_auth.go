package app

import (
	"fmt"

	authService "github.com/allisson/wopihost/internal/auth/service"
)

type authComponents struct {
	tokenService lazy[authService.TokenService]
}

// TokenService returns the host user JWT service.
func (c *Container) TokenService() (authService.TokenService, error) {
	return c.tokenService.get(c.initTokenService)
}

func (c *Container) initTokenService() (authService.TokenService, error) {
	tokenService, err := authService.NewTokenService(c.config.AuthJWTSecret, c.config.AuthJWTExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	return tokenService, nil
}
