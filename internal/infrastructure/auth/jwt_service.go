package auth

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/RPleshkov/SessionVault/domain"
)

// signedClaims is the wire form of domain.TokenClaims.
type signedClaims struct {
	Purpose   string `json:"purpose"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService using RS256. The private key
// signs, the public key verifies; verifiers only ever need the public half.
type JWTServiceImpl struct {
	privateKey      *rsa.PrivateKey
	publicKey       *rsa.PublicKey
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service. Key material is loaded once at
// process start and held immutably here.
func NewJWTService(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		privateKey:      privateKey,
		publicKey:       publicKey,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// IssuePair implements domain.TokenService. Both tokens of the pair share one
// freshly minted session id and one issued-at instant.
func (j *JWTServiceImpl) IssuePair(userID, role string) (*domain.TokenPair, error) {
	// JWT numeric dates carry second precision; truncate so issued claims
	// round-trip exactly through parse.
	iat := time.Now().UTC().Truncate(time.Second)
	sid := uuid.NewString()
	accessExp := iat.Add(j.accessTokenTTL)
	refreshExp := iat.Add(j.refreshTokenTTL)

	accessToken, err := j.sign(signedClaims{
		Purpose:   domain.PurposeAccessToken,
		Role:      role,
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := j.sign(signedClaims{
		Purpose:   domain.PurposeRefreshToken,
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
		},
	})
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		SessionID:        sid,
		IssuedAt:         iat,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (j *JWTServiceImpl) sign(claims signedClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}

// Parse implements domain.TokenService. Any malformed, mis-signed or expired
// token collapses to domain.ErrTokenInvalid; callers never learn which.
func (j *JWTServiceImpl) Parse(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&signedClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*signedClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Purpose != domain.PurposeAccessToken && claims.Purpose != domain.PurposeRefreshToken {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.TokenClaims{
		Subject:   claims.Subject,
		SessionID: claims.SessionID,
		Role:      claims.Role,
		Purpose:   claims.Purpose,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
