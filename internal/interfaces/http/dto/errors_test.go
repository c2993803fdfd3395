package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidPrice, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeReturnExceedsOutstanding, http.StatusUnprocessableEntity},
		{ErrCodeInvalidTransition, http.StatusUnprocessableEntity},
		{ErrCodeImportInUse, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode_CoversDomainCodes(t *testing.T) {
	domainCodes := map[string]string{
		shared.CodeNotFound:                 ErrCodeNotFound,
		shared.CodeValidation:               ErrCodeValidation,
		shared.CodeInsufficientStock:        ErrCodeInsufficientStock,
		shared.CodeInvalidPrice:             ErrCodeInvalidPrice,
		shared.CodeReturnExceedsOutstanding: ErrCodeReturnExceedsOutstanding,
		shared.CodeInvalidTransition:        ErrCodeInvalidTransition,
		shared.CodeConcurrencyConflict:      ErrCodeConcurrencyConflict,
		shared.CodeImportInUse:              ErrCodeImportInUse,
		shared.CodeProductInUse:             ErrCodeProductInUse,
		shared.CodeDuplicateRequest:         ErrCodeDuplicateRequest,
		shared.CodeAlreadyExists:            ErrCodeAlreadyExists,
	}

	for code, want := range domainCodes {
		t.Run(code, func(t *testing.T) {
			normalized := NormalizeErrorCode(code)
			assert.Equal(t, want, normalized)
			_, ok := ErrorCodeHTTPStatus[normalized]
			assert.True(t, ok, "%s has no HTTP status", normalized)
		})
	}
}

func TestNormalizeErrorCode_PassThrough(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM_ERROR", NormalizeErrorCode("CUSTOM_ERROR"))
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode("INTERNAL_ERROR"))
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Resource not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewErrorResponseWithDetails(t *testing.T) {
	details := map[string]any{"productId": "p-1", "availableStock": 3}
	resp := NewErrorResponseWithDetails("INSUFFICIENT_STOCK", "Insufficient stock", "req-1", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInsufficientStock, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, details, resp.Error.Details)
}

func TestNewValidationErrorResponse(t *testing.T) {
	fields := []ValidationDetail{
		{Field: "quantity", Message: "Must be at least 1"},
		{Field: "product_id", Message: "This field is required"},
	}

	resp := NewValidationErrorResponse("Validation failed", "req-789", fields)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	require.Len(t, resp.Error.Fields, 2)
	assert.Equal(t, "quantity", resp.Error.Fields[0].Field)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithDetails(ErrCodeImportInUse, "Import stock has already been consumed", "req-test-123",
		map[string]any{"importId": "imp-1"})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, false, raw["success"])
	assert.NotContains(t, raw, "data")

	errObj := raw["error"].(map[string]any)
	assert.Equal(t, ErrCodeImportInUse, errObj["code"])
	assert.Equal(t, "req-test-123", errObj["request_id"])
	assert.Equal(t, "imp-1", errObj["details"].(map[string]any)["importId"])
	assert.NotContains(t, errObj, "fields")
}

func TestErrorResponseTimestamp(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponse(ErrCodeInternal, "Server error")
	after := time.Now()

	assert.False(t, resp.Error.Timestamp.Before(before))
	assert.False(t, resp.Error.Timestamp.After(after))
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"name": "test"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMetaPagination(t *testing.T) {
	tests := []struct {
		total         int64
		page          int
		pageSize      int
		expectedPages int
		expectedSize  int
	}{
		{100, 1, 10, 10, 10},
		{101, 1, 10, 11, 10},
		{0, 1, 10, 0, 10},
		{9, 1, 10, 1, 10},
		{11, 1, 10, 2, 10},
		// zero or negative page size falls back to the default
		{100, 1, 0, 5, DefaultPageSize},
		{100, 1, -1, 5, DefaultPageSize},
	}

	for _, tt := range tests {
		resp := NewSuccessResponseWithMeta(nil, tt.total, tt.page, tt.pageSize)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, tt.expectedPages, resp.Meta.TotalPages)
		assert.Equal(t, tt.expectedSize, resp.Meta.PageSize)
		assert.Equal(t, tt.total, resp.Meta.Total)
	}
}
