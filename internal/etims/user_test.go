package etims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSubmitIssuesExactlyOneCall(t *testing.T) {
	recorder := &methodRecorder{
		t: t,
		docs: map[string]map[string]interface{}{
			"/api/resource/eTims User/ETIMS-USR-0001": {
				"name":             "ETIMS-USR-0001",
				"company":          "Savanna Traders Ltd",
				"system_user":      "jane@example.co.ke",
				"users_full_names": "Jane Wanjiku",
				"branch_id":        "01",
				"owner":            "admin@example.co.ke",
				"modified_by":      "clerk@example.co.ke",
			},
		},
	}
	client := newTestClient(t, recorder)

	require.NoError(t, client.userSubmit("ETIMS-USR-0001"))

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodSaveBranchUserDetails, call.method)

	payload := requestDataOf(t, call)
	assert.Equal(t, map[string]interface{}{
		"name":            "ETIMS-USR-0001",
		"company_name":    "Savanna Traders Ltd",
		"user_id":         "jane@example.co.ke",
		"full_names":      "Jane Wanjiku",
		"branch_id":       "01",
		"registration_id": "admin@example.co.ke",
		"modifier_id":     "clerk@example.co.ke",
	}, payload)
}

func TestUserBulkCreateSendsCompany(t *testing.T) {
	recorder := &methodRecorder{t: t}
	client := newTestClient(t, recorder)

	require.NoError(t, client.userBulkCreate())

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodCreateBranchUser, call.method)
	assert.Equal(t, map[string]interface{}{
		"company_name": "Savanna Traders Ltd",
	}, requestDataOf(t, call))
}

func TestBranchSearchSendsCompany(t *testing.T) {
	recorder := &methodRecorder{t: t}
	client := newTestClient(t, recorder)

	require.NoError(t, client.branchSearch())

	require.Len(t, recorder.calls, 1)
	call := recorder.calls[0]
	assert.Equal(t, MethodSearchBranchRequest, call.method)
	assert.Equal(t, map[string]interface{}{
		"company_name": "Savanna Traders Ltd",
	}, requestDataOf(t, call))
}
