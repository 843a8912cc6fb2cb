package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/valve-catalog/internal/domain"
)

func TestErrorStatus_MapeoDeErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, 404, "NOT_FOUND"},
		{fmt.Errorf("documento doc-1: %w", domain.ErrFileMissing), 404, "FILE_MISSING"},
		{domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{domain.ErrCategoryInUse, 409, "CATEGORY_IN_USE"},
		{domain.ErrDuplicate, 409, "CONFLICT"},
		{domain.ErrInvalidInput, 400, "INVALID_INPUT"},
		{fmt.Errorf("query products: %w: %w", errors.New("dial tcp"), domain.ErrStoreUnavailable), 503, "STORE_UNAVAILABLE"},
		{errors.New("boom"), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := errorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}
