package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv writes a config enabling every reporting sink under a temp dir.
func testEnv(t *testing.T) (configPath, dir string) {
	t.Helper()
	dir = t.TempDir()
	configPath = filepath.Join(dir, "marketsim.yaml")
	body := fmt.Sprintf(`
logging:
  level: error
store:
  enabled: true
  path: %[1]s/runs.db
trace:
  enabled: true
  dir: %[1]s/traces
metrics:
  enabled: true
  textfile_path: %[1]s/metrics/marketsim.prom
`, dir)
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))
	return configPath, dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	cmd := newRootCommand(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := a.execute(cmd)
	return out.String(), err
}

type countingCloser struct{ closed int }

func (c *countingCloser) Close() error {
	c.closed++
	return nil
}

func TestFailedCommandClosesLogFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "marketsim.yaml")
	logPath := filepath.Join(dir, "logs", "marketsim.log")
	body := fmt.Sprintf("logging:\n  level: info\n  output: file\n  file_path: %s\n", logPath)
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))

	a := &app{}
	cmd := newRootCommand(a)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--config", configPath, "--periods", "-1"})

	err := a.execute(cmd)

	assert.ErrorContains(t, err, "must not be negative")
	assert.Nil(t, a.logCloser, "log output is released after a failed run")
}

func TestCloseReleasesLogOutputOnce(t *testing.T) {
	c := &countingCloser{}
	a := &app{logCloser: c}

	a.close()
	a.close()

	assert.Equal(t, 1, c.closed)
}

func TestRunFeedsEverySink(t *testing.T) {
	cfg, dir := testEnv(t)

	out, err := execute(t, "run", "--config", cfg, "--periods", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "=== Period 1 (1st) ===")
	assert.Contains(t, out, "=== Period 3 (3rd) ===")
	assert.Contains(t, out, "Market Value: $")
	assert.NotContains(t, out, "=== Period 4")
	assert.Contains(t, out, "Performance Report")
	assert.Contains(t, out, "Beta Industries:")

	traces, err := filepath.Glob(filepath.Join(dir, "traces", "trace-*.jsonl.zst"))
	require.NoError(t, err)
	assert.Len(t, traces, 1)

	prom, err := os.ReadFile(filepath.Join(dir, "metrics", "marketsim.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), "marketsim_periods_simulated_total 3")

	out, err = execute(t, "runs", "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "builtin")
	assert.Contains(t, out, "PHASE")
}

func TestRunQuietPrintsOnlyReport(t *testing.T) {
	cfg, _ := testEnv(t)

	out, err := execute(t, "run", "--config", cfg, "--periods", "2", "--quiet")
	require.NoError(t, err)

	assert.NotContains(t, out, "=== Period")
	assert.Contains(t, out, "Periods: 2")
}

func TestRunDefaultsToScenarioLength(t *testing.T) {
	cfg, _ := testEnv(t)

	out, err := execute(t, "run", "--config", cfg, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "Periods: 10")
}

func TestScenarioInitAndValidate(t *testing.T) {
	cfg, dir := testEnv(t)
	path := filepath.Join(dir, "scenario.yaml")

	out, err := execute(t, "scenario", "init", path, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = execute(t, "scenario", "init", path, "--config", cfg)
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "scenario", "validate", path, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "ok    Acme Corp (aggressive, capital $10,000.00)")
	assert.Contains(t, out, "3 firms, oligopoly market over 10 periods")

	out, err = execute(t, "run", "--config", cfg, "--scenario", path, "--periods", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Gamma Ltd:")
}

func TestScenarioValidateReportsBadFirms(t *testing.T) {
	cfg, dir := testEnv(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
market:
  market_type: monopoly
demand:
  base_price: 100
firms:
  - name: Lonely
    params:
      strategy: balanced
`), 0o644))

	out, err := execute(t, "scenario", "validate", path, "--config", cfg)
	assert.ErrorContains(t, err, "1 of 1 firms invalid")
	assert.Contains(t, out, "FAIL  Lonely")

	_, err = execute(t, "run", "--config", cfg, "--scenario", path)
	assert.ErrorContains(t, err, "no valid firms")
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "$10,183.50", money(10183.5))
	assert.Equal(t, "-$1,010.00", money(-1010))
	assert.Equal(t, "-$0.50", money(-0.5))
	assert.Equal(t, "$0.00", money(-0.001))
	assert.Equal(t, "$23.52", money(23.519999))
}
