package cli

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/daryltucker/epoch-viz/internal/model"
	"github.com/daryltucker/epoch-viz/internal/output"
	"github.com/daryltucker/epoch-viz/internal/parser"
)

const sampleLog = "Epoch: 0\n[1.0, -2.0]\n[2.0, -5.0]\nEpoch: 1\n[0.5, -1.0]\n"

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI in a scratch directory so no local epoch_viz.yaml
// is picked up.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prev := output.Logger
	t.Cleanup(func() { output.SetLogger(prev) })
	t.Chdir(t.TempDir())

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	outDir := filepath.Join(t.TempDir(), "charts")

	stdout, _, err := execute(t, "render", logPath, "-o", outDir, "--log-level", "error")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"minTimes.png", "maxProfits.png"} {
		path := filepath.Join(outDir, name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
		if !strings.Contains(stdout, path) {
			t.Errorf("expected %s in output %q", path, stdout)
		}
	}
}

func TestRenderCommand_AveragesSVG(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	outDir := t.TempDir()

	_, _, err := execute(t, "render", logPath, "-o", outDir, "--averages", "--format", "svg",
		"--renderer", "gochart", "--mean-profit", "corrected", "--log-level", "error")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 charts, got %d", len(entries))
	}
}

func TestRenderCommand_Malformed(t *testing.T) {
	logPath := writeLog(t, "Epoch:\n")
	_, _, err := execute(t, "render", logPath, "-o", t.TempDir())
	if !errors.Is(err, parser.ErrMalformedMarker) {
		t.Fatalf("expected ErrMalformedMarker, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected line number in %q", err.Error())
	}
}

func TestRenderCommand_MismatchDiagnostic(t *testing.T) {
	logPath := writeLog(t, "[9, -9]\n"+sampleLog)
	_, stderr, err := execute(t, "render", logPath, "-o", t.TempDir(), "--log-level", "error")
	if err != nil {
		t.Fatalf("mismatch must not fail the run, got %v", err)
	}
	if !strings.Contains(stderr, "Warning:") {
		t.Errorf("expected diagnostic on stderr, got %q", stderr)
	}
}

func TestSummaryCommand_CSV(t *testing.T) {
	logPath := writeLog(t, sampleLog+"Epoch: 2\n")
	stdout, _, err := execute(t, "summary", logPath, "--format", "csv", "--log-level", "error")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv %q: %v", stdout, err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %v", rows)
	}
	if rows[1][2] != "1" || rows[1][3] != "5" {
		t.Errorf("epoch 0: expected min_time=1 max_profit=5, got %v", rows[1])
	}
	if rows[2][2] != "0.5" || rows[2][3] != "1" {
		t.Errorf("epoch 1: expected min_time=0.5 max_profit=1, got %v", rows[2])
	}
	if rows[3][6] != "no_data" {
		t.Errorf("epoch 2: expected no_data, got %v", rows[3])
	}
}

func TestSummaryCommand_OutFile(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	out := filepath.Join(t.TempDir(), "summary.jsonl")

	stdout, _, err := execute(t, "summary", logPath, "--format", "json", "--out", out, "--log-level", "error")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("expected 2 json lines, got %d", got)
	}
}

func TestSummaryCommand_OutFileBadFormat(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	out := filepath.Join(t.TempDir(), "summary.txt")

	_, _, err := execute(t, "summary", logPath, "--format", "xml", "--out", out, "--log-level", "error")
	if err == nil || !strings.Contains(err.Error(), "unknown summary format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no file for a rejected format, got %v", err)
	}
}

type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errors.New("disk full")
}

func TestWriteSummaryFile_CloseError(t *testing.T) {
	summaries := []model.Summary{{
		EpochID: "0", Candidates: 1,
		MinTime: model.MeasuredValue(1), MaxProfit: model.MeasuredValue(2),
		MeanTime: model.MeasuredValue(1), MeanProfit: model.MeasuredValue(1),
	}}

	f := &closeFailer{}
	err := writeSummaryFile(f, "csv", summaries)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected close error, got %v", err)
	}
	if !f.closed {
		t.Error("expected file to be closed")
	}
	if !strings.Contains(f.String(), "epoch") {
		t.Errorf("expected summaries written before close, got %q", f.String())
	}

	f = &closeFailer{}
	if err := writeSummaryFile(f, "xml", summaries); err == nil || !strings.Contains(err.Error(), "unknown summary format") {
		t.Errorf("expected format error to win over close error, got %v", err)
	}
	if !f.closed {
		t.Error("expected file to be closed on format error")
	}
}

func TestSummaryCommand_DefaultLogFromConfig(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	cfgPath := filepath.Join(t.TempDir(), "viz.yaml")
	if err := os.WriteFile(cfgPath, []byte("log_file: "+logPath+"\nlog_level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "summary", "--config", cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "EPOCH") || !strings.Contains(stdout, "5.0000") {
		t.Errorf("unexpected table:\n%s", stdout)
	}
}

func TestSummaryCommand_MissingDefaultLog(t *testing.T) {
	_, _, err := execute(t, "summary", "--log-level", "error")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected missing default log error, got %v", err)
	}
}

func TestConfigCommand(t *testing.T) {
	stdout, _, err := execute(t, "config", "--log-format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"log_file: ./a280-n1395.txt", "log_format: json", "EPOCHVIZ_MEAN_PROFIT"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in:\n%s", want, stdout)
		}
	}
}

func TestInvalidLogFlags(t *testing.T) {
	if _, _, err := execute(t, "config", "--log-level", "loud"); err == nil {
		t.Error("expected error for invalid log level")
	}
}
