package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantParam  string
	}{
		{
			name:       "invalid argument",
			err:        &domain.Error{Kind: domain.KindInvalidArgument, Message: "Task title cannot be empty.", Param: "title"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeInvalidInput,
			wantParam:  "title",
		},
		{
			name:       "null argument",
			err:        &domain.Error{Kind: domain.KindNullArgument, Message: "Value cannot be null.", Param: "projectId"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeMissingField,
			wantParam:  "projectId",
		},
		{
			name:       "rule violation wrapped",
			err:        fmt.Errorf("failed to move task: %w", &domain.Error{Kind: domain.KindRuleViolation, Message: "WIP limit reached."}),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   ErrCodeRuleViolation,
		},
		{
			name:       "forbidden",
			err:        &domain.Error{Kind: domain.KindForbidden, Message: "Only admins can do that."},
			wantStatus: http.StatusForbidden,
			wantCode:   ErrCodeInsufficientPermissions,
		},
		{
			name:       "not found",
			err:        &domain.Error{Kind: domain.KindNotFound, Message: "Column 9 was not found."},
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			require.True(t, RespondDomainError(c, tt.err))
			assert.Equal(t, tt.wantStatus, w.Code)

			var body struct {
				Code    string `json:"code"`
				Message string `json:"message"`
				Details *struct {
					Param string `json:"param"`
				} `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
			if tt.wantParam != "" {
				require.NotNil(t, body.Details)
				assert.Equal(t, tt.wantParam, body.Details.Param)
			} else {
				assert.Nil(t, body.Details)
			}
		})
	}
}

func TestRespondDomainError_IgnoresOtherErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.False(t, RespondDomainError(c, assert.AnError))
	assert.False(t, c.Writer.Written())
}
