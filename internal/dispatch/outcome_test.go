package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultMarshalJSON_BothDelivered(t *testing.T) {
	res := Result{
		Owner:    Delivered(json.RawMessage(`{"messages":[{"id":"wamid.owner"}]}`)),
		Customer: Delivered(json.RawMessage(`{"messages":[{"id":"wamid.customer"}]}`)),
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Contains(t, got, "owner")
	assert.Contains(t, got, "customer")
	assert.NotContains(t, got, "owner_error")
	assert.NotContains(t, got, "customer_error")

	owner, ok := got["owner"].(map[string]any)
	require.True(t, ok, "owner must carry the raw transport response object")
	assert.Contains(t, owner, "messages")
}

func TestResultMarshalJSON_SkippedLegsReportMarkers(t *testing.T) {
	res := Result{
		Owner:    Skipped(SkipNoOwner),
		Customer: Skipped(SkipNoPhone),
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "skipped_no_owner", got["owner"])
	assert.Equal(t, "skipped_no_phone", got["customer"])
	assert.NotContains(t, got, "owner_error")
	assert.NotContains(t, got, "customer_error")
}

func TestResultMarshalJSON_FailedLegUsesErrorKey(t *testing.T) {
	res := Result{
		Owner:    Failed(`messaging API returned 401: {"error":{"code":190}}`),
		Customer: Delivered(json.RawMessage(`{"messages":[{"id":"wamid.1"}]}`)),
	}

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	// A failed leg moves its detail to the _error key and omits the role key.
	assert.NotContains(t, got, "owner")
	assert.Equal(t, `messaging API returned 401: {"error":{"code":190}}`, got["owner_error"])
	assert.Contains(t, got, "customer")
	assert.NotContains(t, got, "customer_error")
}

func TestResultMarshalJSON_NonJSONDeliveredPayload(t *testing.T) {
	cases := []struct {
		name     string
		response json.RawMessage
		want     any
	}{
		{"empty body", json.RawMessage(""), ""},
		{"nil body", nil, ""},
		{"plain text body", json.RawMessage("OK"), "OK"},
		{"truncated json", json.RawMessage(`{"messages":[{"id":`), `{"messages":[{"id":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Result{
				Owner:    Delivered(tc.response),
				Customer: Delivered(json.RawMessage(`{"messages":[{"id":"wamid.1"}]}`)),
			}

			raw, err := json.Marshal(res)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, tc.want, got["owner"])
			assert.NotContains(t, got, "owner_error")
			assert.Contains(t, got, "customer")
		})
	}
}

func TestOutcomeConstructors(t *testing.T) {
	d := Delivered(json.RawMessage(`{}`))
	assert.Equal(t, OutcomeDelivered, d.Kind)
	assert.NotNil(t, d.Response)

	s := Skipped(SkipNoPhone)
	assert.Equal(t, OutcomeSkipped, s.Kind)
	assert.Equal(t, SkipNoPhone, s.SkipReason)

	f := Failed("boom")
	assert.Equal(t, OutcomeFailed, f.Kind)
	assert.Equal(t, "boom", f.Failure)
}
