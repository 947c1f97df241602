package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected map[string]any
	}{
		{
			name:     "plain data",
			result:   Result{Data: []string{"a", "b"}},
			expected: map[string]any{"err": 0, "data": []string{"a", "b"}},
		},
		{
			name:     "message only",
			result:   Result{Msg: "Deleted"},
			expected: map[string]any{"err": 0, "msg": "Deleted"},
		},
		{
			name:     "message with data",
			result:   Result{Msg: "Created", Data: map[string]any{"id": "1"}, HasData: true},
			expected: map[string]any{"err": 0, "msg": "Created", "data": map[string]any{"id": "1"}},
		},
		{
			name:     "message with explicit nil data",
			result:   Result{Msg: "Done", HasData: true},
			expected: map[string]any{"err": 0, "msg": "Done", "data": nil},
		},
		{
			name:   "access token wins over message with data",
			result: Result{Msg: "Logged in", AccessToken: "tok", Data: "u", HasData: true},
			expected: map[string]any{
				"err": 0, "msg": "Logged in", "accessToken": "tok", "data": "u",
			},
		},
		{
			name:     "access token without data omits the data key",
			result:   Result{Msg: "Refreshed", AccessToken: "tok", Data: "ignored"},
			expected: map[string]any{"err": 0, "msg": "Refreshed", "accessToken": "tok"},
		},
		{
			name:   "page wins over access token",
			result: Result{AccessToken: "tok", Data: "rows", Page: &PageInfo{Page: 2, PageSize: 10, TotalCount: 41}},
			expected: map[string]any{
				"err": 0, "data": "rows", "page": 2, "pageSize": 10, "totalCount": 41,
			},
		},
		{
			name:     "count wins over page",
			result:   Result{Count: intPtr(3), Data: "rows", Page: &PageInfo{Page: 1, PageSize: 10, TotalCount: 3}},
			expected: map[string]any{"err": 0, "count": 3, "data": "rows"},
		},
		{
			name:     "zero count still renders the count shape",
			result:   Result{Count: intPtr(0)},
			expected: map[string]any{"err": 0, "count": 0, "data": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.result))
		})
	}
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, map[string]any{"err": 1, "msg": "Coupon not found"}, FormatError("Coupon not found"))
}
