package linkedin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// stateTTL bounds how long an issued state token stays redeemable.
const stateTTL = 10 * time.Minute

// stateCodec issues and verifies the OAuth state parameter. The token is
// self-describing: it carries the employee ID and issue time, signed with
// HMAC-SHA256 so a crafted state cannot target another employee.
type stateCodec struct {
	secret []byte
}

func newStateCodec(secret string) *stateCodec {
	return &stateCodec{secret: []byte(secret)}
}

func (c *stateCodec) Encode(employeeID string, issuedAt time.Time) string {
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s|%d", employeeID, issuedAt.Unix())))
	return payload + "." + c.sign(payload)
}

// Decode verifies the signature and expiry and recovers the employee ID.
func (c *stateCodec) Decode(state string, now time.Time) (string, error) {
	payload, signature, found := strings.Cut(state, ".")
	if !found {
		return "", fmt.Errorf("state token has invalid format")
	}

	if !hmac.Equal([]byte(c.sign(payload)), []byte(signature)) {
		return "", fmt.Errorf("state token signature mismatch")
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode state token payload: %w", err)
	}

	idx := strings.LastIndex(string(raw), "|")
	if idx <= 0 {
		return "", fmt.Errorf("state token payload is malformed")
	}
	employeeID := string(raw[:idx])

	issuedUnix, err := strconv.ParseInt(string(raw[idx+1:]), 10, 64)
	if err != nil {
		return "", fmt.Errorf("state token has invalid issue time: %w", err)
	}

	issuedAt := time.Unix(issuedUnix, 0)
	if issuedAt.After(now.Add(time.Minute)) {
		return "", fmt.Errorf("state token issued in the future")
	}
	if now.Sub(issuedAt) > stateTTL {
		return "", fmt.Errorf("state token expired")
	}

	return employeeID, nil
}

func (c *stateCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
