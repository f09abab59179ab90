package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "fleet-mileage-monitor/pkg/errors"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Fleet report", SanitizeString("  <b>Fleet</b> report\x00 "))
	assert.Equal(t, "Tom &amp; Jerry", SanitizeString("Tom & Jerry"))
}

func TestSanitizeOptional(t *testing.T) {
	assert.Nil(t, SanitizeOptional(nil))
	blank := "   "
	assert.Nil(t, SanitizeOptional(&blank))
	area := " North "
	require.NotNil(t, SanitizeOptional(&area))
	assert.Equal(t, "North", *SanitizeOptional(&area))
}

func TestSanitizePlate(t *testing.T) {
	assert.Equal(t, "PEC-9829", SanitizePlate(" pec-98 29 "))
}

type sample struct {
	Title string  `json:"title" validate:"required,max=5"`
	IDs   []int64 `json:"ids" validate:"required,min=1,unique"`
}

func TestValidationDetails(t *testing.T) {
	err := ValidateStruct(&sample{Title: "too long", IDs: []int64{1, 1}})
	require.Error(t, err)

	details := ValidationDetails(appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err))
	require.Len(t, details, 2)
	assert.Equal(t, "title", details[0].Field)
	assert.Equal(t, "must be at most 5", details[0].Message)
	assert.Equal(t, "ids", details[1].Field)
	assert.Equal(t, "must not contain duplicates", details[1].Message)

	assert.Nil(t, ValidationDetails(appErrors.ErrInvalidInput))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("u-1", "ops@example.com", "admin", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "u-1", claims.UserID)

	_, err = ValidateToken(token, "other")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	expired, err := GenerateToken("u-1", "ops@example.com", "admin", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.ErrorIs(t, err, appErrors.ErrTokenExpired)
}
