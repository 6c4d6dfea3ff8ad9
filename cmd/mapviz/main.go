// Command mapviz renders loaded road/building geometry, and optionally a
// sampled ray fan traced from a transmitter position, to a PNG for visual
// sanity-checking during development. It is a peripheral developer aid, not
// part of the core propagation contract.
package main

import (
	"flag"
	"image/color"
	"log"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/raytrace"
	"github.com/banshee-data/radiosim/internal/world"
)

var (
	buildingColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	linkColor     = color.RGBA{R: 120, G: 120, B: 220, A: 255}
	rayColor      = color.RGBA{R: 220, G: 90, B: 40, A: 160}
)

func main() {
	nodesPath := flag.String("nodes", "", "nodes input file")
	linksPath := flag.String("links", "", "links input file")
	classPath := flag.String("classification", "", "classification input file")
	buildingsPath := flag.String("buildings", "", "buildings input file")
	namesPath := flag.String("names", "", "link-name mapping input file")
	outPath := flag.String("out", "mapviz.png", "output PNG path")

	txX := flag.Float64("tx-x", 0, "transmitter X; only traced when -trace is set")
	txY := flag.Float64("tx-y", 0, "transmitter Y; only traced when -trace is set")
	trace := flag.Bool("trace", false, "trace and draw a ray fan from (-tx-x,-tx-y)")
	rayCount := flag.Int("rays", 72, "rays in the fan (kept low for a readable plot)")
	workerCount := flag.Int("workers", 4, "ray-tracing worker goroutines")
	seed := flag.Int64("seed", 1, "RNG seed for the ray fan's start angle")
	flag.Parse()

	if *nodesPath == "" && *buildingsPath == "" {
		log.Fatalf("mapviz: at least one of -nodes or -buildings is required")
	}

	params := config.DefaultParams()
	w, err := world.Load(world.LoadPaths{
		Nodes:          *nodesPath,
		Links:          *linksPath,
		Classification: *classPath,
		Buildings:      *buildingsPath,
		LinkNames:      *namesPath,
	}, params)
	if err != nil {
		log.Fatalf("mapviz: load world: %v", err)
	}

	p := plot.New()
	p.Title.Text = "radiosim map"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	if err := addLinks(p, w); err != nil {
		log.Fatalf("mapviz: draw links: %v", err)
	}
	if err := addBuildings(p, w); err != nil {
		log.Fatalf("mapviz: draw buildings: %v", err)
	}

	if *trace {
		tx := geomkit.Vector2D{X: *txX, Y: *txY}
		tr := raytrace.New(w, params, tx, *rayCount, *workerCount, *seed)
		if err := tr.Execute(); err != nil {
			log.Fatalf("mapviz: trace: %v", err)
		}
		if err := addRayFan(p, tr); err != nil {
			log.Fatalf("mapviz: draw ray fan: %v", err)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(12*vg.Inch, 12*vg.Inch, *outPath); err != nil {
		log.Fatalf("mapviz: save %s: %v", *outPath, err)
	}
	log.Printf("wrote %s", *outPath)
}

func segmentLine(seg geomkit.LineSegment, c color.Color, width vg.Length) (*plotter.Line, error) {
	pts := plotter.XYs{
		{X: seg.Start.X, Y: seg.Start.Y},
		{X: seg.End.X, Y: seg.End.Y},
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = width
	return line, nil
}

func addLinks(p *plot.Plot, w *world.StaticWorld) error {
	labelled := false
	for _, l := range w.SummedLinks {
		line, err := segmentLine(l.Segment(w.Nodes), linkColor, vg.Points(1.5))
		if err != nil {
			return err
		}
		p.Add(line)
		if !labelled {
			p.Legend.Add("roads", line)
			labelled = true
		}
	}
	return nil
}

func addBuildings(p *plot.Plot, w *world.StaticWorld) error {
	labelled := false
	for _, b := range w.Buildings {
		for _, edge := range b.Edges {
			line, err := segmentLine(edge, buildingColor, vg.Points(1.5))
			if err != nil {
				return err
			}
			p.Add(line)
			if !labelled {
				p.Legend.Add("buildings", line)
				labelled = true
			}
		}
	}
	return nil
}

func addRayFan(p *plot.Plot, tr *raytrace.Tracer) error {
	labelled := false
	for _, comp := range tr.Results() {
		line, err := segmentLine(comp.Segment, rayColor, vg.Points(0.75))
		if err != nil {
			return err
		}
		p.Add(line)
		if !labelled {
			p.Legend.Add("ray fan", line)
			labelled = true
		}
	}
	return nil
}
