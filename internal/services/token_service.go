package services

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"github.com/mbuchoff/niche-todo-backend/internal/config"
	"github.com/mbuchoff/niche-todo-backend/internal/constants"
	"github.com/mbuchoff/niche-todo-backend/internal/models"
)

var ErrInvalidAccessToken = errors.New("invalid access token")

// AccessClaims is the payload carried by signed access tokens.
type AccessClaims struct {
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	GoogleSubject string `json:"gsub"`
	DeviceID      string `json:"did,omitempty"`
	Role          string `json:"role"`
	jwt.RegisteredClaims
}

// IssuedTokens is the result of one issuance. RefreshTokenRaw is handed to
// the caller exactly once; only RefreshTokenHash is ever persisted.
type IssuedTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshTokenRaw  string
	RefreshTokenHash string
	RefreshExpiresAt time.Time
}

// TokenService issues signed access tokens and opaque refresh tokens.
type TokenService struct {
	privateKey  ed25519.PrivateKey
	publicKey   ed25519.PublicKey
	keyID       string
	refreshSalt []byte
	accessTTL   time.Duration
	refreshTTL  time.Duration
	now         func() time.Time
}

// NewTokenService builds a TokenService from config. An unset signing key is
// a development convenience: an ephemeral key pair is generated, so tokens do
// not survive a restart.
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	var privateKey ed25519.PrivateKey
	var publicKey ed25519.PublicKey

	if cfg.TokenSigningKey == "" {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		privateKey = priv
		publicKey = pub
	} else {
		seed, err := base64.StdEncoding.DecodeString(cfg.TokenSigningKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TOKEN_SIGNING_KEY: %w", err)
		}
		if len(seed) != ed25519.SeedSize {
			return nil, fmt.Errorf("TOKEN_SIGNING_KEY must be %d bytes, got %d", ed25519.SeedSize, len(seed))
		}
		privateKey = ed25519.NewKeyFromSeed(seed)
		publicKey = privateKey.Public().(ed25519.PublicKey)
	}

	return &TokenService{
		privateKey:  privateKey,
		publicKey:   publicKey,
		keyID:       cfg.TokenKeyID,
		refreshSalt: []byte(cfg.RefreshTokenSalt),
		accessTTL:   time.Duration(cfg.AccessTokenTTLMinutes) * time.Minute,
		refreshTTL:  time.Duration(cfg.RefreshTokenTTLDays) * 24 * time.Hour,
		now:         time.Now,
	}, nil
}

// IssueTokens creates a signed access token and a fresh refresh token for the
// user on one device.
func (s *TokenService) IssueTokens(user *models.User, deviceID string) (*IssuedTokens, error) {
	now := s.now()
	accessExpiry := now.Add(s.accessTTL)

	claims := &AccessClaims{
		Email:         user.Email,
		Name:          user.Name,
		GoogleSubject: user.GoogleSubject,
		DeviceID:      deviceID,
		Role:          constants.TokenRoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = s.keyID

	accessToken, err := token.SignedString(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	rawBytes := make([]byte, constants.RefreshTokenByteLength)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshRaw := base64.RawURLEncoding.EncodeToString(rawBytes)

	return &IssuedTokens{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshTokenRaw:  refreshRaw,
		RefreshTokenHash: s.HashRefreshToken(refreshRaw),
		RefreshExpiresAt: now.Add(s.refreshTTL),
	}, nil
}

// HashRefreshToken maps a raw refresh token to its stored form. The HMAC salt
// keeps leaked hashes useless without the server secret while staying
// deterministic so rows can be looked up by equality.
func (s *TokenService) HashRefreshToken(raw string) string {
	mac := hmac.New(sha3.New256, s.refreshSalt)
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func (s *TokenService) ParseAccessToken(raw string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.publicKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}
