package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hotel-reservation/internal/model"
)

func TestGetEnrollment(t *testing.T) {
	enrollments := newFakeEnrollments()
	_, err := enrollments.Create(context.Background(), 7, "Ada Lovelace")
	require.NoError(t, err)
	h := NewEnrollmentHandler(enrollments)

	c, rec := newTestContext(http.MethodGet, "/v1/enrollments", "", 99)
	require.NoError(t, h.GetEnrollment(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/v1/enrollments", "", 7)
	require.NoError(t, h.GetEnrollment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Enrollment
	require.NoError(t, decodeBody(rec, &got))
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, uint64(7), got.UserID)
}

func TestGetUserIDTypes(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want uint64
	}{
		{"uint64", uint64(7), 7},
		{"int", int(7), 7},
		{"int64", int64(7), 7},
		{"float64 from jwt claims", float64(7), 7},
		{"numeric string", "7", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, "/", "", 0)
			c.Set("user_id", tc.val)
			got, err := getUserID(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	c, _ := newTestContext(http.MethodGet, "/", "", 0)
	c.Set("user_id", "not-a-number")
	_, err := getUserID(c)
	assert.Error(t, err)

	c, _ = newTestContext(http.MethodGet, "/", "", 0)
	_, err = getUserID(c)
	assert.Error(t, err, "missing user_id")
}
