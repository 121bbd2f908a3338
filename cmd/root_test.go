package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patii/workcity/internal/config"
	"github.com/patii/workcity/internal/theme"
)

const testSiteURL = "https://workcity.example"

// execute runs the CLI in a scratch directory with a fresh config file.
func execute(t *testing.T, themeDir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(cfgPath))

	renderPage, renderDiff, initForce, debug = false, "", false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{
		"--config", cfgPath,
		"--site-url", testSiteURL,
		"--theme-dir", themeDir,
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRender_LinkTags(t *testing.T) {
	out, err := execute(t, "", "render")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "id='"+theme.ParentHandle+"-css'")
	require.Contains(t, lines[1], "id='"+theme.Handle+"-css'")
	require.Contains(t, lines[1], testSiteURL+"/wp-content/themes/workcity/style.css?ver="+theme.Version)
}

func TestRender_Page(t *testing.T) {
	out, err := execute(t, "", "render", "--page")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	require.Contains(t, out, theme.Handle)
}

func TestRender_DiffUpToDate(t *testing.T) {
	head, err := execute(t, "", "render")
	require.NoError(t, err)

	snapshot := filepath.Join(t.TempDir(), "head.html")
	require.NoError(t, os.WriteFile(snapshot, []byte(head), 0o600))

	out, err := execute(t, "", "render", "--diff", snapshot)
	require.NoError(t, err)
	require.Contains(t, out, "is up to date")
}

func TestRender_DiffChanged(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "head.html")
	stale := "<link rel='stylesheet' id='" + theme.Handle + "-css' href='" + testSiteURL +
		"/wp-content/themes/workcity/style.css?ver=0.9.0' media='all' />\n"
	require.NoError(t, os.WriteFile(snapshot, []byte(stale), 0o600))

	out, err := execute(t, "", "render", "--diff", snapshot)
	require.ErrorIs(t, err, errRenderDiffers)

	current := "<link rel='stylesheet' id='" + theme.Handle + "-css' href='" + testSiteURL +
		"/wp-content/themes/workcity/style.css?ver=" + theme.Version + "' media='all' />\n"
	require.Contains(t, out, "-"+stale)
	require.Contains(t, out, "+"+current)
}

func TestDiffText(t *testing.T) {
	_, changed := diffText("same", "same")
	require.False(t, changed)

	previous := "<head>\n<link href='style.css?ver=0.9.0' />\n</head>\n"
	current := "<head>\n<link href='style.css?ver=1.0.0' />\n</head>\n"
	patch, changed := diffText(previous, current)
	require.True(t, changed)
	require.Equal(t, " <head>\n-<link href='style.css?ver=0.9.0' />\n+<link href='style.css?ver=1.0.0' />\n </head>\n", patch)

	patch, changed = diffText("a", "a\nb")
	require.True(t, changed)
	require.Equal(t, "-a\n+a\n+b\n", patch)
}

func TestAssets_ListsInOrder(t *testing.T) {
	out, err := execute(t, "", "assets")
	require.NoError(t, err)

	parent := strings.Index(out, theme.ParentHandle)
	child := strings.Index(out, theme.Handle)
	require.GreaterOrEqual(t, parent, 0)
	require.Greater(t, child, parent)
	require.NotContains(t, out, "warning")
}

func TestCheck_Embedded(t *testing.T) {
	out, err := execute(t, "", "check")
	require.NoError(t, err)
	require.Contains(t, out, "ok: "+theme.Handle+" "+theme.Version)
}

func TestCheck_StaleThemeDir(t *testing.T) {
	dir := t.TempDir()
	css := "/*\nTheme Name: workcity landing page by patii\nVersion: 0.9.0\nTemplate: astra\n*/\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, theme.Stylesheet), []byte(css), 0o600))

	out, err := execute(t, dir, "check")
	require.ErrorIs(t, err, errCheckFailed)
	require.Contains(t, out, `Version: want "1.0.0", got "0.9.0"`)
}

func TestCheck_MissingStylesheet(t *testing.T) {
	_, err := execute(t, t.TempDir(), "check")
	require.Error(t, err)
}

func TestInvalidSiteURL(t *testing.T) {
	t.Setenv("WORKCITY_SITE_URL", "ftp://nope")
	_, err := execute(t, "", "render")
	require.ErrorContains(t, err, "invalid configuration")
}

func TestInitConfig_WritesFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "", "init-config", target)
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(data), "site_url: "+testSiteURL)

	_, err = execute(t, "", "init-config", target)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "", "init-config", "--force", target)
	require.NoError(t, err)
}
