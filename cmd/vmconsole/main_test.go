package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeService(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/settings", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"retentionDays": 60})
	})
	r.GET("/api/projects", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{
			{"id": "a", "name": "Sales", "dids": []gin.H{{"number": "555-0100", "startDate": "2020-01-01"}}},
		})
	})
	r.GET("/api/voicemails", func(c *gin.Context) { c.JSON(http.StatusOK, []gin.H{}) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GATEWAY_BASE_URL", fakeService(t))
	t.Setenv("JOURNAL_BACKEND", "none")
	t.Setenv("VMC_CONFIG", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProjectsCmd(t *testing.T) {
	out, err := run(t, "projects")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Sales", got[0]["name"])
}

func TestReviewCmd_ReportsOverdue(t *testing.T) {
	out, err := run(t, "review")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "overdue"`)
	assert.Contains(t, out, "555-0100")
}

func TestSettingsCmd(t *testing.T) {
	out, err := run(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, `"retentionDays": 60`)
}

func TestResolveCmd_Unassigned(t *testing.T) {
	_, err := run(t, "resolve", "555-4444")
	require.Error(t, err)
}
