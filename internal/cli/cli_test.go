package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runArka executes one CLI invocation against the given database and
// returns its combined output.
func runArka(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append(args, "--db", db))

	err := cmd.Execute()
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "arka.db")
}

func TestNodeAdd(t *testing.T) {
	db := tempDB(t)

	out, err := runArka(t, db, "node", "add", "--node", "courier-1", "--type", "logistics")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered node courier-1 (logistics)")
}

func TestNodeAdd_InvalidType(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "node", "add", "--node", "x", "--type", "satellite")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestNeedAddAndList(t *testing.T) {
	db := tempDB(t)

	out, err := runArka(t, db, "need", "add",
		"--node", "shelter-7",
		"--item", "insulin:2:vials",
		"--urgency", "0.9")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded need")

	out, err = runArka(t, db, "need", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "shelter-7")
	assert.Contains(t, out, "insulin:2")
}

func TestNeedAdd_InvalidUrgency(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "need", "add",
		"--node", "shelter-7",
		"--item", "insulin:2",
		"--urgency", "1.5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestOfferAddAndList(t *testing.T) {
	db := tempDB(t)

	out, err := runArka(t, db, "offer", "add",
		"--node", "depot-2",
		"--item", "insulin:5:cold_chain",
		"--availability-hours", "48")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded offer")

	out, err = runArka(t, db, "offer", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "depot-2")
	assert.Contains(t, out, "insulin:5")
}

func TestMatch_AdHocQuery(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "offer", "add", "--node", "depot-2", "--item", "Insulin:5")
	require.NoError(t, err)
	_, err = runArka(t, db, "offer", "add", "--node", "depot-3", "--item", "bandages:50")
	require.NoError(t, err)

	out, err := runArka(t, db, "match", "--item", "insulin:2", "--no-routes")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 depot-2 score=0.70")
	assert.NotContains(t, out, "depot-3")
}

func TestMatch_RouteEnrichment(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "offer", "add", "--node", "depot-2", "--item", "insulin:5")
	require.NoError(t, err)
	for _, courier := range []string{"courier-1", "courier-2"} {
		_, err = runArka(t, db, "node", "add", "--node", courier, "--type", "logistics")
		require.NoError(t, err)
	}

	out, err := runArka(t, db, "match", "--item", "insulin:2")
	require.NoError(t, err)
	assert.Contains(t, out, "route: 2 logistics nodes, travel=60m risk=0.50")
}

func TestMatch_StoredNeed(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "need", "add", "--node", "shelter-7", "--item", "insulin:2")
	require.NoError(t, err)
	_, err = runArka(t, db, "offer", "add", "--node", "depot-2", "--item", "insulin:5")
	require.NoError(t, err)

	out, err := runArka(t, db, "match", "--need-node", "shelter-7", "--no-routes")
	require.NoError(t, err)
	assert.Contains(t, out, "depot-2")
}

func TestMatch_UnknownNeedNode(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "match", "--need-node", "never-seen")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no stored need")
}

func TestMatch_ItemAndNeedNodeExclusive(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "match", "--item", "insulin:2", "--need-node", "shelter-7")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = runArka(t, db, "match")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMatch_NoMatches(t *testing.T) {
	db := tempDB(t)

	out, err := runArka(t, db, "match", "--item", "insulin:2", "--no-routes")
	require.NoError(t, err)
	assert.Contains(t, out, "(no matches)")
}

func TestMatch_ColdChainBonusFlag(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "offer", "add", "--node", "depot-cold", "--item", "insulin:5:cold_chain")
	require.NoError(t, err)

	out, err := runArka(t, db, "match",
		"--item", "insulin:2", "--cold-chain", "--cold-chain-bonus", "--no-routes")
	require.NoError(t, err)
	assert.Contains(t, out, "score=0.80")
}

func TestMatch_JSONEnvelope(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "offer", "add", "--node", "depot-2", "--item", "insulin:5")
	require.NoError(t, err)

	out, err := runArka(t, db, "match", "--item", "insulin:2", "--no-routes", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestTrustAddScoreHistory(t *testing.T) {
	db := tempDB(t)

	out, err := runArka(t, db, "trust", "add", "--node", "depot-2", "--kind", "relief_action",
		"--reason", "delivered insulin")
	require.NoError(t, err)
	assert.Contains(t, out, "score is now 0.500")

	_, err = runArka(t, db, "trust", "add", "--node", "depot-2", "--kind", "consent_revoked")
	require.NoError(t, err)
	_, err = runArka(t, db, "trust", "add", "--node", "depot-2", "--kind", "relief_action")
	require.NoError(t, err)

	out, err = runArka(t, db, "trust", "score", "--node", "depot-2")
	require.NoError(t, err)
	assert.Equal(t, "0.000\n", out)

	out, err = runArka(t, db, "trust", "history", "--node", "depot-2")
	require.NoError(t, err)
	assert.Contains(t, out, "relief_action +0.500 delivered insulin")
	assert.Contains(t, out, "consent_revoked -1.000")
}

func TestTrustAdd_ExplicitDelta(t *testing.T) {
	db := tempDB(t)

	out, err := runArka(t, db, "trust", "add", "--node", "depot-2", "--kind", "warn", "--delta", "-0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "score is now -0.500")
}

func TestTrustAdd_UnknownKindNeedsDelta(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "trust", "add", "--node", "depot-2", "--kind", "mystery")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, err := runArka(t, db, "trust", "add", "--node", "depot-2", "--kind", "mystery", "--delta", "0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "score is now 0.100")
}

func TestTrustScore_UnknownNode(t *testing.T) {
	db := tempDB(t)

	out, err := runArka(t, db, "trust", "score", "--node", "never-seen")
	require.NoError(t, err)
	assert.Equal(t, "0.000\n", out)
}

func TestTrustVerify(t *testing.T) {
	db := tempDB(t)

	for _, kind := range []string{"relief_action", "warn", "commend"} {
		_, err := runArka(t, db, "trust", "add", "--node", "depot-2", "--kind", kind)
		require.NoError(t, err)
	}

	out, err := runArka(t, db, "trust", "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   depot-2 (3 events) score=0.500")
	assert.Contains(t, out, "1 node(s) verified, 0 failure(s)")
}

func TestRoute_NoLogistics(t *testing.T) {
	db := tempDB(t)

	out, err := runArka(t, db, "route", "--need-node", "shelter-7", "--offer-node", "depot-2")
	require.NoError(t, err)
	assert.Contains(t, out, "logistics: (none known)")
	assert.Contains(t, out, "travel:    unknown")
	assert.Contains(t, out, "risk:      1.00")
}

func TestRoute_TwoLogisticsNodes(t *testing.T) {
	db := tempDB(t)

	for _, courier := range []string{"courier-1", "courier-2"} {
		_, err := runArka(t, db, "node", "add", "--node", courier, "--type", "logistics")
		require.NoError(t, err)
	}

	out, err := runArka(t, db, "route", "--need-node", "shelter-7", "--offer-node", "depot-2")
	require.NoError(t, err)
	assert.Contains(t, out, "logistics: courier-1, courier-2")
	assert.Contains(t, out, "travel:    60m")
	assert.Contains(t, out, "risk:      0.50")
}

func TestInvalidFormat(t *testing.T) {
	db := tempDB(t)

	_, err := runArka(t, db, "need", "list", "--format", "xml")
	require.Error(t, err)
}
