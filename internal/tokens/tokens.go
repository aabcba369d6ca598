// internal/tokens/tokens.go
// Signed link tokens for the not-logged-in flows: a host clicking a CV
// link from an email, a nanny responding to a match, or either side
// opening chat. The token is the whole authorization: once signature
// and expiry validate, the embedded claims are trusted.

package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Token types. Each type authorizes exactly one flow.
const (
	TypeCVReview    = "cv_review"    // host reviewing a shortlist of CVs
	TypeProceedPass = "proceed_pass" // one party's proceed/pass decision on a match
	TypeInterview   = "interview"    // nanny selecting an interview slot
	TypeChat        = "chat"         // either party opening a match conversation
)

// Roles embedded in proceed-pass and chat tokens.
const (
	RoleHost  = "host"
	RoleNanny = "nanny"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the payload carried by every link token. Which IDs are set
// depends on the token type.
type Claims struct {
	Type           string `json:"type"`
	MatchID        string `json:"match_id,omitempty"`
	HostID         string `json:"host_id,omitempty"`
	NannyID        string `json:"nanny_id,omitempty"`
	ShortlistID    string `json:"shortlist_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Role           string `json:"role,omitempty"`
	ExpiresAt      int64  `json:"exp"`
	IssuedAt       int64  `json:"iat"`
}

// Issuer mints and validates link tokens.
type Issuer struct {
	secret string
	expiry time.Duration
}

// NewIssuer creates a token issuer. Expiry applies to every token type
// (7 days in production).
func NewIssuer(secret string, expiry time.Duration) *Issuer {
	return &Issuer{secret: secret, expiry: expiry}
}

// GenerateCVReviewToken authorizes a host to review one shortlist.
func (i *Issuer) GenerateCVReviewToken(hostID, shortlistID string) (string, error) {
	return i.sign(&Claims{
		Type:        TypeCVReview,
		HostID:      hostID,
		ShortlistID: shortlistID,
	})
}

// GenerateProceedPassToken authorizes one party's decision on one match.
func (i *Issuer) GenerateProceedPassToken(matchID, role string) (string, error) {
	if role != RoleHost && role != RoleNanny {
		return "", fmt.Errorf("invalid role %q", role)
	}
	return i.sign(&Claims{
		Type:    TypeProceedPass,
		MatchID: matchID,
		Role:    role,
	})
}

// GenerateInterviewToken authorizes a nanny to respond to one interview request.
func (i *Issuer) GenerateInterviewToken(matchID, nannyID string) (string, error) {
	return i.sign(&Claims{
		Type:    TypeInterview,
		MatchID: matchID,
		NannyID: nannyID,
	})
}

// GenerateChatToken authorizes one party to read and post in one conversation.
func (i *Issuer) GenerateChatToken(conversationID, role string) (string, error) {
	if role != RoleHost && role != RoleNanny {
		return "", fmt.Errorf("invalid role %q", role)
	}
	return i.sign(&Claims{
		Type:           TypeChat,
		ConversationID: conversationID,
		Role:           role,
	})
}

// ValidateToken checks signature and expiry and returns the claims.
// Any failure returns ErrInvalidToken; callers must not learn which
// part of the check failed.
func (i *Issuer) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(i.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		Type:           getStringClaim(mapClaims, "type"),
		MatchID:        getStringClaim(mapClaims, "match_id"),
		HostID:         getStringClaim(mapClaims, "host_id"),
		NannyID:        getStringClaim(mapClaims, "nanny_id"),
		ShortlistID:    getStringClaim(mapClaims, "shortlist_id"),
		ConversationID: getStringClaim(mapClaims, "conversation_id"),
		Role:           getStringClaim(mapClaims, "role"),
		ExpiresAt:      getInt64Claim(mapClaims, "exp"),
		IssuedAt:       getInt64Claim(mapClaims, "iat"),
	}
	if claims.Type == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateTokenOfType validates and additionally requires a specific type.
func (i *Issuer) ValidateTokenOfType(tokenString, wantType string) (*Claims, error) {
	claims, err := i.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (i *Issuer) sign(claims *Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"type":            claims.Type,
		"match_id":        claims.MatchID,
		"host_id":         claims.HostID,
		"nanny_id":        claims.NannyID,
		"shortlist_id":    claims.ShortlistID,
		"conversation_id": claims.ConversationID,
		"role":            claims.Role,
		"exp":             now.Add(i.expiry).Unix(),
		"iat":             now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(i.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Helper functions to safely extract claims
func getStringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64Claim(claims jwt.MapClaims, key string) int64 {
	if val, ok := claims[key].(float64); ok {
		return int64(val)
	}
	return 0
}
