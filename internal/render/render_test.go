package render

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/daryltucker/epoch-viz/internal/model"
)

func testChart(values ...model.Value) Chart {
	xs := make([]string, len(values))
	for i := range values {
		xs[i] = string(rune('a' + i))
	}
	return Chart{
		Title: "minTimes-Epoch Graph", XLabel: "epoch", YLabel: "minTimes", SeriesLabel: "times",
		X: xs, Y: values,
	}
}

func TestTickIndices(t *testing.T) {
	tests := []struct {
		n, want int
		expect  []int
	}{
		{0, 10, nil},
		{1, 10, []int{0}},
		{5, 10, []int{0, 1, 2, 3, 4}},
		{20, 10, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}},
		{25, 10, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24}},
		{100, 10, []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}},
		{6, 0, []int{0, 1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		if got := TickIndices(tt.n, tt.want); !reflect.DeepEqual(got, tt.expect) {
			t.Errorf("TickIndices(%d, %d) = %v, want %v", tt.n, tt.want, got, tt.expect)
		}
	}
}

func TestNewChart(t *testing.T) {
	s := model.Series{Metric: "maxProfits", Label: "profits", Points: []model.Point{
		{EpochID: "0", Value: model.MeasuredValue(5)},
		{EpochID: "1", Value: model.MeasuredValue(1)},
	}}
	c := NewChart(s)
	if c.Title != "maxProfits-Epoch Graph" || c.XLabel != "epoch" || c.YLabel != "maxProfits" || c.SeriesLabel != "profits" {
		t.Errorf("unexpected labels: %+v", c)
	}
	if !reflect.DeepEqual(c.X, []string{"0", "1"}) {
		t.Errorf("unexpected x: %v", c.X)
	}
}

func TestSplit(t *testing.T) {
	c := testChart(
		model.MeasuredValue(4),
		model.Value{State: model.NoSolution},
		model.MeasuredValue(2),
		model.Value{State: model.NoData},
	)
	measured, missing := split(c)

	wantMeasured := []xy{{0, 4}, {2, 2}}
	wantMissing := []xy{{1, 2}, {3, 2}}
	if !reflect.DeepEqual(measured, wantMeasured) {
		t.Errorf("measured = %v, want %v", measured, wantMeasured)
	}
	if !reflect.DeepEqual(missing, wantMissing) {
		t.Errorf("missing = %v, want %v", missing, wantMissing)
	}

	_, missing = split(testChart(model.Value{State: model.NoData}))
	if len(missing) != 1 || missing[0].Y != 0 {
		t.Errorf("expected baseline 0 with nothing measured, got %v", missing)
	}
}

func TestYRange(t *testing.T) {
	lo, hi := yRange([]xy{{0, 1}, {1, 3}})
	if lo != 1 || hi != 3 {
		t.Errorf("expected [1,3], got [%v,%v]", lo, hi)
	}
	lo, hi = yRange([]xy{{0, 100}})
	if lo >= 100 || hi <= 100 {
		t.Errorf("expected padding around flat series, got [%v,%v]", lo, hi)
	}
	lo, hi = yRange(nil)
	if lo != 0 || hi != 1 {
		t.Errorf("expected [0,1] for no points, got [%v,%v]", lo, hi)
	}
}

func TestNew(t *testing.T) {
	opts := Options{OutputDir: t.TempDir(), Width: 300, Height: 200}

	if r, err := New("plot", opts); err != nil {
		t.Errorf("plot: %v", err)
	} else if _, ok := r.(*PlotRenderer); !ok {
		t.Errorf("expected *PlotRenderer, got %T", r)
	}
	if r, err := New("GoChart", opts); err != nil {
		t.Errorf("gochart: %v", err)
	} else if _, ok := r.(*GoChartRenderer); !ok {
		t.Errorf("expected *GoChartRenderer, got %T", r)
	}

	if _, err := New("matplotlib", opts); err == nil {
		t.Error("expected error for unknown renderer")
	}
	pdf := opts
	pdf.Format = "pdf"
	if _, err := New("gochart", pdf); err == nil {
		t.Error("expected gochart to reject pdf")
	}
	if _, err := New("plot", Options{}); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestRender_Backends(t *testing.T) {
	chartFor := func() Chart {
		return testChart(
			model.MeasuredValue(3),
			model.MeasuredValue(2.5),
			model.Value{State: model.NoSolution},
			model.MeasuredValue(1),
		)
	}

	tests := []struct {
		backend string
		format  string
	}{
		{"plot", "png"},
		{"plot", "svg"},
		{"plot", "pdf"},
		{"gochart", "png"},
		{"gochart", "svg"},
	}

	for _, tt := range tests {
		t.Run(tt.backend+"/"+tt.format, func(t *testing.T) {
			dir := t.TempDir()
			r, err := New(tt.backend, Options{OutputDir: dir, Format: tt.format, Width: 400, Height: 300, Ticks: 10})
			if err != nil {
				t.Fatal(err)
			}

			path, err := r.Render(chartFor())
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if want := filepath.Join(dir, "minTimes."+tt.format); path != want {
				t.Errorf("expected %s, got %s", want, path)
			}
			info, err := os.Stat(path)
			if err != nil || info.Size() == 0 {
				t.Errorf("expected non-empty chart file, got %v (%v)", info, err)
			}

			again, err := r.Render(chartFor())
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(dir, "minTimes.1."+tt.format); again != want {
				t.Errorf("expected versioned file %s, got %s", want, again)
			}
		})
	}
}

func TestRender_SingleEpoch(t *testing.T) {
	for _, backend := range Backends {
		t.Run(backend, func(t *testing.T) {
			r, err := New(backend, Options{OutputDir: t.TempDir(), Width: 300, Height: 200})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := r.Render(testChart(model.MeasuredValue(7))); err != nil {
				t.Errorf("single epoch: %v", err)
			}
			if _, err := r.Render(testChart(model.Value{State: model.NoData})); err != nil {
				t.Errorf("single empty epoch: %v", err)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	r, err := New("plot", Options{OutputDir: t.TempDir(), Width: 300, Height: 200})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Render(Chart{YLabel: "minTimes"}); !errors.Is(err, ErrEmptyChart) {
		t.Errorf("expected ErrEmptyChart, got %v", err)
	}

	bad := testChart(model.MeasuredValue(1))
	bad.X = append(bad.X, "extra")
	if _, err := r.Render(bad); err == nil || !strings.Contains(err.Error(), "values") {
		t.Errorf("expected length mismatch error, got %v", err)
	}
}
