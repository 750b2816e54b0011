package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"SalesDashboard/app/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SALESDASH_HOME", t.TempDir())
	t.Cleanup(func() { cfgFile = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.DefaultConfig()
	cfg.Activity.DSN = "file:" + t.Name() + "?mode=memory&cache=shared"
	if err := config.SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStatsCommand(t *testing.T) {
	path := writeConfig(t)

	out, err := run(t, "stats", "--config", path, "--employees")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Total Sales", "KES 2,600", "James Webb", "Sarah Johnson", "Recent Sales"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExportRequiresConfiguration(t *testing.T) {
	path := writeConfig(t)

	if _, err := run(t, "export-sheets", "--config", path); err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("err = %v", err)
	}
}

func TestInitRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	out, err := run(t, "init", "--config", path)
	if err != nil || !strings.Contains(out, "Wrote") {
		t.Fatalf("init = %q, %v", out, err)
	}
	if _, err := run(t, "init", "--config", path); err == nil {
		t.Error("second init should fail without --force")
	}
	if _, err := run(t, "init", "--config", path, "--force"); err != nil {
		t.Errorf("forced init = %v", err)
	}
}
