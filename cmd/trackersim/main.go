// Command trackersim exercises the space-point builder end to end on a
// synthetic double-sided strip module. It throws straight tracks from
// the vertex through a stereo pair of planar sensors, digitizes the
// crossings into strip hits, reconstructs space points and reports the
// residuals against truth, optionally writing a PNG scatter and an
// interactive HTML chart.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/strip.report/internal/config"
	"github.com/banshee-data/strip.report/internal/geom"
	"github.com/banshee-data/strip.report/internal/spacepoint"
	"github.com/banshee-data/strip.report/internal/strip"
	"github.com/banshee-data/strip.report/internal/version"
)

const (
	// Sensor layout: half-width of the active area, strip pitch and the
	// z positions of the two surfaces.
	halfWidth  = 30.0
	stripPitch = 0.1
	zFront     = 10.0
	zBack      = 11.0

	// chargeSharingProb is the fraction of crossings that also fire the
	// neighbouring strip.
	chargeSharingProb = 0.3
)

func main() {
	events := flag.Int("events", 500, "number of simulated tracks")
	seed := flag.Int64("seed", 1, "random seed")
	stereo := flag.Float64("stereo", 0.04, "stereo angle between the surfaces (radians)")
	outDir := flag.String("out", ".", "output directory for plots")
	configPath := flag.String("config", "", "optional tuning JSON (defaults when empty)")
	writePlots := flag.Bool("plots", true, "write PNG and HTML plots")
	flag.Parse()

	cfg := spacepoint.DefaultConfig()
	if *configPath != "" {
		tuning, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("[TrackerSim] Failed to load tuning config: %v", err)
		}
		cfg = tuning.ToBuilderConfig()
	}

	runID := uuid.New().String()[:8]
	log.Printf("[TrackerSim] Version %s (%s)", version.Version, version.GitSHA)
	log.Printf("[TrackerSim] Run %s: events=%d stereo=%.0fmrad seed=%d", runID, *events, *stereo*1e3, *seed)

	front, back := buildStereoPair(*stereo)
	rng := rand.New(rand.NewSource(*seed))

	var (
		pairs    int
		resolved int
		truthXY  plotter.XYs
		reconXY  plotter.XYs
		residual []float64
	)

	for ev := 0; ev < *events; ev++ {
		truth, frontHits, backHits := throwTrack(rng, front, back)

		// Each event is an independent batch: hits on one module pair.
		points := spacepoint.AddHits(nil, frontHits, backHits, cfg)
		spacepoint.CalculateSpacePoints(points, cfg)

		pairs += len(points)
		for _, sp := range points {
			if !sp.Resolved {
				continue
			}
			resolved++
			res := r3.Norm(r3.Sub(sp.Position, truth))
			residual = append(residual, res)
			truthXY = append(truthXY, plotter.XY{X: truth.X, Y: truth.Y})
			reconXY = append(reconXY, plotter.XY{X: sp.Position.X, Y: sp.Position.Y})
		}
	}

	if len(residual) == 0 {
		log.Printf("[TrackerSim] No space points resolved (pairs=%d); nothing to report", pairs)
		return
	}

	mean := stat.Mean(residual, nil)
	stddev := stat.StdDev(residual, nil)
	log.Printf("[TrackerSim] Reconstructed %d/%d candidate pairs from %d events", resolved, pairs, *events)
	log.Printf("[TrackerSim] Residual |reco-truth|: mean=%.4f stddev=%.4f", mean, stddev)

	if !*writePlots {
		return
	}
	pngPath := filepath.Join(*outDir, fmt.Sprintf("spacepoints_%s.png", runID))
	if err := writeScatterPNG(pngPath, truthXY, reconXY); err != nil {
		log.Fatalf("[TrackerSim] Failed to write PNG: %v", err)
	}
	htmlPath := filepath.Join(*outDir, fmt.Sprintf("spacepoints_%s.html", runID))
	if err := writeScatterHTML(htmlPath, reconXY, runID); err != nil {
		log.Fatalf("[TrackerSim] Failed to write HTML: %v", err)
	}
	log.Printf("[TrackerSim] Plots written: %s %s", pngPath, htmlPath)
}

// buildStereoPair places two strip sensors back to back: the front one
// axis-aligned at zFront, the back one rotated by the stereo angle at
// zBack. Both have fine pitch along local X and a single full-length
// bin along local Y, so the strips run along Y.
func buildStereoPair(stereo float64) (*strip.PlanarModule, *strip.PlanarModule) {
	seg := strip.CartesianSegmentation{
		X: strip.UniformBinning(-halfWidth, halfWidth, int(2*halfWidth/stripPitch)),
		Y: strip.UniformBinning(-halfWidth, halfWidth, 1),
	}
	front := strip.NewPlanarModule("front", seg, geom.Translate(0, 0, zFront))
	back := strip.NewPlanarModule("back", seg, geom.Mul(geom.Translate(0, 0, zBack), geom.RotZ(stereo)))
	return front, back
}

// throwTrack samples a straight track from the origin, digitizes its
// crossings on both surfaces and returns the truth crossing on the
// front surface together with the hits. A fraction of crossings shares
// charge into the neighbouring front strip.
func throwTrack(rng *rand.Rand, front, back *strip.PlanarModule) (r3.Vec, []*strip.Hit, []*strip.Hit) {
	dx := (rng.Float64() - 0.5) * 0.4
	dy := (rng.Float64() - 0.5) * 0.4

	truth := r3.Vec{X: zFront * dx, Y: zFront * dy, Z: zFront}
	crossBack := r3.Vec{X: zBack * dx, Y: zBack * dy, Z: zBack}

	frontHits := []*strip.Hit{{Surface: front, Local: front.GlobalToLocal(truth)}}
	backHits := []*strip.Hit{{Surface: back, Local: back.GlobalToLocal(crossBack)}}

	if rng.Float64() < chargeSharingProb {
		shared := frontHits[0].Local
		shared.X += stripPitch
		if shared.X < halfWidth {
			frontHits = append(frontHits, &strip.Hit{Surface: front, Local: shared})
		}
	}

	return truth, frontHits, backHits
}

func writeScatterPNG(path string, truth, recon plotter.XYs) error {
	p := plot.New()
	p.Title.Text = "Space points: truth vs reconstructed"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	truthScatter, err := plotter.NewScatter(truth)
	if err != nil {
		return err
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	truthScatter.GlyphStyle.Radius = vg.Points(1.5)

	reconScatter, err := plotter.NewScatter(recon)
	if err != nil {
		return err
	}
	reconScatter.GlyphStyle.Color = color.RGBA{R: 220, G: 60, B: 40, A: 255}
	reconScatter.GlyphStyle.Radius = vg.Points(1.5)

	p.Add(truthScatter, reconScatter)
	p.Legend.Add("truth", truthScatter)
	p.Legend.Add("reco", reconScatter)

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}

func writeScatterHTML(path string, recon plotter.XYs, runID string) error {
	data := make([]opts.ScatterData, 0, len(recon))
	for _, xy := range recon {
		data = append(data, opts.ScatterData{Value: []interface{}{xy.X, xy.Y}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Space Points", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Reconstructed space points", Subtitle: fmt.Sprintf("run=%s points=%d", runID, len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -halfWidth, Max: halfWidth, Name: "X"}),
		charts.WithYAxisOpts(opts.YAxis{Min: -halfWidth, Max: halfWidth, Name: "Y"}),
	)
	scatter.AddSeries("reco", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scatter.Render(f)
}
