package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verdict struct {
	UserID  string `json:"userId"`
	IsValid bool   `json:"isValid"`
}

func TestJSONArray_NilWritesEmptyArray(t *testing.T) {
	var a JSONArray[verdict]
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestJSONArray_Scan(t *testing.T) {
	var a JSONArray[verdict]
	require.NoError(t, a.Scan([]byte(`[{"userId":"u1","isValid":true}]`)))
	assert.Equal(t, JSONArray[verdict]{{UserID: "u1", IsValid: true}}, a)

	require.NoError(t, a.Scan(nil))
	assert.NotNil(t, a)
	assert.Empty(t, a)

	require.NoError(t, a.Scan("null"))
	assert.NotNil(t, a)

	assert.Error(t, a.Scan(42))
}

func TestSerializeModel(t *testing.T) {
	var missing *verdict
	_, err := SerializeModel(missing)
	assert.Error(t, err)

	data, err := SerializeModel(&verdict{UserID: "u2"})
	require.NoError(t, err)

	var out verdict
	require.NoError(t, DeserializeModel(data, &out))
	assert.Equal(t, "u2", out.UserID)

	assert.Error(t, DeserializeModel([]byte{}, &out))
}
