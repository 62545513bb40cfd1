package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "flight-booking"
	testSignKey = "test-sign-key"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "a@x", 24*time.Hour, testSignKey)
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "a@x", token.Subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		signKey  string
	}{
		{name: "empty issuer", subject: "a@x", duration: time.Hour, signKey: testSignKey},
		{name: "empty subject", issuer: testIssuer, duration: time.Hour, signKey: testSignKey},
		{name: "zero duration", issuer: testIssuer, subject: "a@x", signKey: testSignKey},
		{name: "empty sign key", issuer: testIssuer, subject: "a@x", duration: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.signKey)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, "a@x", time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, "a@x", parsed.Subject)
	assert.Equal(t, "a@x", parsed.GetEmail())
}

func TestValidateAndParseJWTToken_WrongSignKey(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, "a@x", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(issued.SignedString, "another-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, "a@x", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(issued.SignedString, testSignKey, "someone-else")
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	issued, err := GenerateJWTToken(testIssuer, "a@x", -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(issued.SignedString, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not-a-jwt", testSignKey, testIssuer)
	assert.Error(t, err)
}
