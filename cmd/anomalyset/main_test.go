package main

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ohler55/ojg/oj"

	"anomalyset/internal/config"
	"anomalyset/internal/dataset"
	"anomalyset/internal/testsupport"
)

func TestIndexCommandRendersTable(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populate(t, "fan")

	out, _, err := runCLI(t, []string{"index", "--machine", "fan"}, env.configPath)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	requireContains(t, out, "== fan ==")
	requireContains(t, out, "Abnormal")
	requireContains(t, out, "DCASE/2020/dev/test")
	requireContains(t, out, "DCASE/2020/add/train")
	requireContains(t, out, "MIMII/data_0_db/id_00/abnormal")
	requireContains(t, out, "6 leaves, 12 files")
	if strings.Contains(out, "DCASE/2020/eval/train") {
		t.Fatalf("eval/train must not be indexed:\n%s", out)
	}
}

func TestIndexCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populate(t, "fan")

	out, _, err := runCLI(t, []string{"index", "--machine", "fan", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("index --json: %v", err)
	}
	doc, err := oj.ParseString(out)
	if err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	leaf := dig(t, doc, "DCASE", "2020", "dev", "test")
	// sample_abnormal_0003.wav is labelled normal by the reference rules.
	if got := len(leaf["normal"].([]any)); got != 2 {
		t.Fatalf("normal count = %d, want 2", got)
	}
	if got := len(leaf["abnormal"].([]any)); got != 1 {
		t.Fatalf("abnormal count = %d, want 1", got)
	}
	if got := len(leaf["unknown"].([]any)); got != 1 {
		t.Fatalf("unknown count = %d, want 1", got)
	}

	mimii := dig(t, doc, "MIMII", "data_0_db", "id_00", "normal")
	want := env.cfg.Paths.DataDir + "MIMII/data_0_db/fan/id_00/normal/00000000.wav"
	if paths := mimii["normal"].([]any); len(paths) != 1 || paths[0] != want {
		t.Fatalf("MIMII normal paths = %v, want [%s]", paths, want)
	}
}

func TestIndexCommandCorrectedRules(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populate(t, "fan")

	out, _, err := runCLI(t, []string{"index", "--machine", "fan", "--json", "--rules", "corrected"}, env.configPath)
	if err != nil {
		t.Fatalf("index --rules corrected: %v", err)
	}
	doc, err := oj.ParseString(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	leaf := dig(t, doc, "DCASE", "2020", "eval", "test")
	if got := len(leaf["abnormal"].([]any)); got != 2 {
		t.Fatalf("abnormal count = %d, want 2", got)
	}
}

func TestIndexCommandSelect(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populate(t, "fan")

	out, _, err := runCLI(t, []string{"index", "--machine", "fan", "--select", "$.MIMII.data_0_db.id_00.abnormal.abnormal[*]"}, env.configPath)
	if err != nil {
		t.Fatalf("index --select: %v", err)
	}
	doc, err := oj.ParseString(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	selected, ok := doc.([]any)
	if !ok || len(selected) != 1 {
		t.Fatalf("unexpected selection: %v", doc)
	}
	if !strings.HasSuffix(selected[0].(string), "MIMII/data_0_db/fan/id_00/abnormal/00000000.wav") {
		t.Fatalf("unexpected selected path: %v", selected[0])
	}

	if _, _, err := runCLI(t, []string{"index", "--machine", "fan", "--select", "$[[["}, env.configPath); err == nil {
		t.Fatal("expected invalid jsonpath to fail")
	}
}

func TestIndexCommandAllMachines(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithMachineTypes("fan", "valve"))
	env.populate(t, "fan")
	env.populate(t, "valve")

	out, _, err := runCLI(t, []string{"index", "--all", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("index --all: %v", err)
	}
	doc, err := oj.ParseString(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	dig(t, doc, "fan", "DCASE", "2020", "dev", "train")
	dig(t, doc, "valve", "MIMII", "data_0_db", "id_00", "abnormal")

	if _, _, err := runCLI(t, []string{"index", "--all", "--machine", "fan"}, env.configPath); err == nil {
		t.Fatal("expected --all with --machine to fail")
	}
}

func TestIndexCommandRejectsUnknownMachine(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"index", "--machine", "pump"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unconfigured machine")
	}
	requireContains(t, err.Error(), `unknown machine type "pump"`)

	_, _, err = runCLI(t, []string{"index"}, env.configPath)
	if err == nil {
		t.Fatal("expected error without --machine")
	}
	requireContains(t, err.Error(), "--machine is required")
}

func TestIndexCommandFailsOnMissingLeaf(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"index", "--machine", "fan"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing dataset tree")
	}
	requireContains(t, err.Error(), "directory not found")
	requireContains(t, err.Error(), env.cfg.Paths.DataDir+"DCASE/2020/dev/fan/train/")
}

func TestIndexCommandDataDirFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populate(t, "fan")

	elsewhere := filepath.Join(t.TempDir(), "moved")
	relocated := *env.cfg
	relocated.Paths.DataDir = elsewhere + "/"
	moved := &cliTestEnv{cfg: &relocated}
	moved.populate(t, "fan")

	out, _, err := runCLI(t, []string{"index", "--machine", "fan", "--data-dir", elsewhere, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("index --data-dir: %v", err)
	}
	requireContains(t, out, elsewhere+"/DCASE/2020/dev/fan/train/normal_id_00_0000.wav")
}

func TestLabelsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.populate(t, "fan")

	out, _, err := runCLI(t, []string{"labels", "--machine", "fan"}, env.configPath)
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 label lines, got %d:\n%s", len(lines), out)
	}
	dir := env.cfg.Paths.DataDir + "DCASE/2020/dev/fan/test/"
	requireContains(t, out, dir+"anomaly_id_00_0002.wav\t-1\n")
	requireContains(t, out, dir+"sample_abnormal_0003.wav\t1\n")
	requireContains(t, out, dir+"section_00_0004.wav\t0\n")

	out, _, err = runCLI(t, []string{"labels", "--machine", "fan", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("labels --json: %v", err)
	}
	doc, err := oj.ParseString(out)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	labels := doc.(map[string]any)
	if len(labels) != 12 {
		t.Fatalf("expected 12 labels, got %d", len(labels))
	}
	if got := labels[dir+"anomaly_id_00_0002.wav"]; got != int64(-1) {
		t.Fatalf("anomaly label = %v, want -1", got)
	}
}

func TestPlanCommandReportsMissingLeaves(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteDiskTree(t, env.cfg.Paths.DataDir, "DCASE/2020/dev/fan/train/")

	out, _, err := runCLI(t, []string{"plan", "--machine", "fan"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "DCASE/2020/eval/test")
	requireContains(t, out, "yes")
	requireContains(t, out, "6 leaves, 5 missing")
}

func TestConfigInitValidateShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Config path: "+env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, target)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# resolved from "+target)
	requireContains(t, out, "rule_set")
	requireContains(t, out, "reference")
}

func TestLayoutFromDefaultConfigMatchesDefaultLayout(t *testing.T) {
	cfg := config.Default()
	if got, want := layoutFromConfig(&cfg), dataset.DefaultLayout(); !reflect.DeepEqual(got, want) {
		t.Fatalf("layout mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func dig(t *testing.T, doc any, keys ...string) map[string]any {
	t.Helper()
	current, ok := doc.(map[string]any)
	if !ok {
		t.Fatalf("expected object at root, got %T", doc)
	}
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			t.Fatalf("missing object at %q (path %v)", key, keys)
		}
		current = next
	}
	return current
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteDiskTree(t, env.cfg.Paths.DataDir, "DCASE/2020/dev/fan/", "MIMII/data_0_db/fan/")

	out, _, err := runCLI(t, []string{"check", "--machine", "fan"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "== Dataset ==")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "2/2 machine directories present")

	out, _, err = runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail while valve directories are missing")
	}
	requireContains(t, err.Error(), "one or more checks failed")
	requireContains(t, out, "[ERROR]")
}
