//go:build e2e

package recon_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

// TestProtectedRoutes verifies scans and logs need a valid token.
func TestProtectedRoutes(t *testing.T) {
	c := setupReconContainer(t, nil)
	client := c.client()

	_, err := client.NewSession("", time.Time{}).ListScans(t.Context(), reconsdk.ScanFilter{})
	require.ErrorIs(t, err, reconsdk.ErrMissingToken)

	_, err = client.NewSession("not-a-token", time.Time{}).ListLogs(t.Context())
	require.ErrorIs(t, err, reconsdk.ErrInvalidToken)
}

// TestScanEveryCategory submits one scan per category and checks what was
// saved against the fake engine output.
func TestScanEveryCategory(t *testing.T) {
	c := setupReconContainer(t, nil)
	session := registerAndLogin(t, c.client(), "ada@example.com")

	saved := 0
	for _, category := range reconsdk.Categories {
		t.Run(category, func(t *testing.T) {
			res, err := session.SubmitScan(t.Context(), "example.com", category)
			if category == reconsdk.CategoryCrawl {
				// The fake engine reports an error for crawls.
				var apiErr *reconsdk.APIError
				require.ErrorAs(t, err, &apiErr)
				require.Equal(t, reconsdk.ErrorCodeScanFailed, apiErr.Code)
				require.Equal(t, "robots.txt unreachable", apiErr.Description)
				return
			}

			require.NoError(t, err)
			saved++
			require.Equal(t, "Processed link: example.com", res.Message)
			require.Equal(t, category, res.SavedScan.ScanCategory)
			require.Equal(t, reconsdk.ScanTypeActive, res.SavedScan.ScanType)
			require.JSONEq(t, engineResponses[enginePath(category)], string(res.SavedScan.ScanResults))
		})
	}

	scans, err := session.ListScans(t.Context(), reconsdk.ScanFilter{})
	require.NoError(t, err)
	require.Len(t, scans, saved)

	shodan, err := session.ListScans(t.Context(), reconsdk.ScanFilter{ScanCategory: reconsdk.CategoryShodan})
	require.NoError(t, err)
	require.Len(t, shodan, 1)

	var payload struct {
		IP string `json:"ip"`
	}
	require.NoError(t, json.Unmarshal(shodan[0].ScanResults, &payload))
	require.Equal(t, "93.184.216.34", payload.IP)

	_, err = session.ListScans(t.Context(), reconsdk.ScanFilter{ScanType: "sideways"})
	require.ErrorIs(t, err, reconsdk.ErrInvalidFilter)
}

// TestScanLogs verifies each saved scan and each appended action show up in
// the activity log.
func TestScanLogs(t *testing.T) {
	c := setupReconContainer(t, nil)
	session := registerAndLogin(t, c.client(), "ada@example.com")

	_, err := session.SubmitScan(t.Context(), "93.184.216.34", reconsdk.CategoryShodan)
	require.NoError(t, err)

	entry, err := session.AppendLog(t.Context(), "reviewed shodan results")
	require.NoError(t, err)
	require.Equal(t, "reviewed shodan results", entry.Action)

	logs, err := session.ListLogs(t.Context())
	require.NoError(t, err)

	var actions []string
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	require.Contains(t, actions, "shodan scan: 93.184.216.34")
	require.Contains(t, actions, "reviewed shodan results")

	_, err = session.AppendLog(t.Context(), "   ")
	require.ErrorIs(t, err, reconsdk.ErrInvalidRequest)
}

func enginePath(category string) string {
	switch category {
	case reconsdk.CategorySocial:
		return "/socials"
	case reconsdk.CategoryShodan:
		return "/osint"
	case reconsdk.CategoryPasswords:
		return "/passwords"
	case reconsdk.CategoryCrawl:
		return "/crawl"
	default:
		return "/web-scan"
	}
}
