package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/kiddoland/backend/internal/config"
	"github.com/kiddoland/backend/internal/model"
)

// OIDCVerifier accepts ID tokens from an external identity provider. Role and mode are
// read from the "role" and "mode" claims and default to Parent/home.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

type oidcClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Mode  string `json:"mode"`
}

// NewOIDCVerifier fetches the provider discovery document from cfg.IssuerURL.
func NewOIDCVerifier(ctx context.Context, cfg config.OIDCConfig) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to discover OIDC issuer: %v", ErrMisconfigured, err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func newOIDCVerifierFromKeySet(issuer, clientID string, keySet oidc.KeySet) *OIDCVerifier {
	return &OIDCVerifier{verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{ClientID: clientID})}
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*model.AuthUser, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		var expired *oidc.TokenExpiredError
		if errors.As(err, &expired) {
			return nil, &TokenError{Detail: "Token has expired."}
		}
		return nil, &TokenError{Detail: "Invalid token."}
	}

	var claims oidcClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, &TokenError{Detail: "Invalid token payload."}
	}

	role := claims.Role
	if role == "" {
		role = model.RoleParent
	}
	mode := claims.Mode
	if mode == "" {
		mode = model.ModeHome
	}
	if !model.IsValidRole(role) {
		return nil, &TokenError{Detail: "Token has an invalid role."}
	}
	if !model.IsValidMode(mode) {
		return nil, &TokenError{Detail: "Token has an invalid mode."}
	}

	return &model.AuthUser{UserID: idToken.Subject, Role: role, Mode: mode}, nil
}
