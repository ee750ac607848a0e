package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusNotFound, "NO_DATASET", "No dataset has been uploaded")
	assert.Equal(t, "No dataset has been uploaded", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "NO_DATASET", err.ErrorCode)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("format", "must be csv or xlsx")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "format", detail.Field)
	assert.Equal(t, "must be csv or xlsx", detail.Message)
}

func TestMalformedUploadError(t *testing.T) {
	cause := assert.AnError
	err := MalformedUploadError(cause)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "MALFORMED_UPLOAD", err.ErrorCode)
	assert.Equal(t, cause.Error(), err.Details)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	pd := NewProblemDetails(422, TypeEmptyDataset, "Unprocessable Entity", "no rows", "/api/dataset")
	pd.WithExtension("trace_id", "abc-123")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, TypeEmptyDataset, decoded["type"])
	assert.Equal(t, float64(422), decoded["status"])
	assert.Equal(t, "no rows", decoded["detail"])
	assert.Equal(t, "/api/dataset", decoded["instance"])
	assert.Equal(t, "abc-123", decoded["trace_id"])
}
