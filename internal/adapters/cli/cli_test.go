package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hideout-go/internal/adapters/cli"
)

const boltsID = "57347c5b245977448d35f6e1"

// setupEnv points config at a throwaway sqlite file and home directory
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	stations, err := filepath.Abs(filepath.Join("..", "snapshot", "testdata", "stations.json"))
	require.NoError(t, err)

	t.Setenv("HOME", dir)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("HT_DATABASE_TYPE", "sqlite")
	t.Setenv("HT_DATABASE_PATH", filepath.Join(dir, "hideout.db"))
	t.Setenv("HT_HIDEOUT_STATIONS_FILE", stations)
	t.Setenv("HT_LOGGING_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute(), out.String())
	return out.String()
}

func runErr(t *testing.T, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	return root.Execute()
}

func TestProfileLifecycle(t *testing.T) {
	dir := setupEnv(t)

	out := run(t, "profile", "create", "main", "--edition", "edge-of-darkness")
	assert.Contains(t, out, "Profile created successfully")
	assert.Contains(t, out, "Edge of Darkness")

	out = run(t, "profile", "use", "main")
	assert.Contains(t, out, "Default profile set to main")
	_, err := os.Stat(filepath.Join(dir, ".hideout", "config.json"))
	require.NoError(t, err)

	out = run(t, "profile", "list")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "Edge of Darkness")

	out = run(t, "profile", "show")
	assert.Contains(t, out, "Profile main")

	run(t, "profile", "rename", "primary")
	out = run(t, "profile", "list")
	assert.Contains(t, out, "primary")

	out = run(t, "profile", "delete", "primary")
	assert.Contains(t, out, "deleted")
	out = run(t, "profile", "list")
	assert.Contains(t, out, "No profiles found.")
}

func TestNeedsAndStations(t *testing.T) {
	setupEnv(t)
	run(t, "profile", "create", "main")

	out := run(t, "--profile", "main", "needs")
	assert.Contains(t, out, "Pooled needs for main (nextLevel, regular)")
	assert.Contains(t, out, "Bolts")

	out = run(t, "-p", "main", "item", "set", boltsID, "--have", "2")
	assert.Contains(t, out, "have 2 (FIR 0)")

	out = run(t, "-p", "main", "item", "add", boltsID, "--have", "-5")
	assert.Contains(t, out, "have 0 (FIR 0)")

	out = run(t, "-p", "main", "station", "set", "vents", "9")
	assert.Contains(t, out, "vents is now level 2")
	assert.Contains(t, out, "clamped")

	out = run(t, "-p", "main", "station", "list")
	assert.Contains(t, out, "vents")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "generator")

	out = run(t, "-p", "main", "station", "hide", "generator")
	assert.Contains(t, out, "generator hidden")
	out = run(t, "-p", "main", "station", "list")
	assert.NotContains(t, out, "generator")
}

func TestPreferencesAndLevels(t *testing.T) {
	setupEnv(t)
	run(t, "profile", "create", "main")

	out := run(t, "-p", "main", "prefs", "--view-mode", "all", "--item-size", "small")
	assert.Contains(t, out, "View mode:   all")
	assert.Contains(t, out, "Item size:   small")

	out = run(t, "-p", "main", "trader", "mechanic", "2")
	assert.Contains(t, out, "mechanic is now level 2")

	out = run(t, "-p", "main", "skill", "endurance", "3")
	assert.Contains(t, out, "endurance is now level 3")

	assert.Error(t, runErr(t, "-p", "main", "trader", "mechanic", "9"))
	assert.Error(t, runErr(t, "-p", "main", "prefs", "--view-mode", "sideways"))

	out = run(t, "-p", "main", "edition", "Left Behind")
	assert.Contains(t, out, "Edition set to Left Behind")
}

func TestExportImportReset(t *testing.T) {
	dir := setupEnv(t)
	run(t, "profile", "create", "main")
	run(t, "-p", "main", "item", "set", boltsID, "--have", "3")

	exportPath := filepath.Join(dir, "main.json")
	out := run(t, "-p", "main", "progress", "export", "--out", exportPath)
	assert.Contains(t, out, "Progress exported")

	assert.Error(t, runErr(t, "progress", "import", exportPath), "same profile id without --overwrite")

	out = run(t, "progress", "import", exportPath, "--overwrite")
	assert.Contains(t, out, "Replaced the existing profile.")

	assert.Error(t, runErr(t, "-p", "main", "progress", "reset"), "reset needs --yes")
	out = run(t, "-p", "main", "progress", "reset", "--yes")
	assert.Contains(t, out, "Progress of main reset")
}

func TestMissingProfile(t *testing.T) {
	setupEnv(t)

	err := runErr(t, "needs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profile specified")

	err = runErr(t, "-p", "ghost", "needs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}
