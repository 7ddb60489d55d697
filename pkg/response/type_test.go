package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-relay/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	saigon := time.FixedZone("ICT", 7*3600)
	tm := time.Date(2024, 5, 1, 22, 30, 0, 0, saigon)

	b, err := json.Marshal(response.DateTime(tm))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-05-01 15:30:00"`, string(b))
}

func TestDateTimeZeroIsNull(t *testing.T) {
	b, err := json.Marshal(struct {
		At response.DateTime `json:"at"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at": null}`, string(b))
}
