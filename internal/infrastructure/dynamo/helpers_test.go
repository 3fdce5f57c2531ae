package dynamo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateExpr_SetOnly(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{"name": "Goa Getaway"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(expr, "SET "))
	assert.Len(t, names, 1)
	assert.Len(t, values, 1)
}

func TestBuildUpdateExpr_NilValueBecomesRemove(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		fieldOTP:          nil,
		fieldOTPExpiresAt: nil,
		fieldVerified:     true,
	})
	require.NoError(t, err)
	assert.Contains(t, expr, "SET ")
	assert.Contains(t, expr, "REMOVE ")
	assert.Len(t, names, 3)
	assert.Len(t, values, 1) // only the SET operand carries a value
}

func TestBuildUpdateExpr_RemoveOnly_NoValues(t *testing.T) {
	expr, _, values, err := buildUpdateExpr(map[string]interface{}{fieldOTP: nil})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(expr, "REMOVE "))
	assert.Nil(t, values)
}

func TestBuildUpdateExpr_Empty_Errors(t *testing.T) {
	_, _, _, err := buildUpdateExpr(map[string]interface{}{})
	require.Error(t, err)
}
