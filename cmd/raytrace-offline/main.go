// Command raytrace-offline precomputes a Rice-factor file (spec.md §6,
// input 6) by running the Raytracer from sampled points along every summed
// link against every other sampled point (on any summed link, its own
// included) within free-space range, and writing the resulting K estimates in the same whitespace
// format the loader reads back.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
	"github.com/banshee-data/radiosim/internal/raytrace"
	"github.com/banshee-data/radiosim/internal/world"
)

func main() {
	nodesPath := flag.String("nodes", "", "nodes input file (required)")
	linksPath := flag.String("links", "", "links input file (required)")
	classPath := flag.String("classification", "", "classification input file")
	buildingsPath := flag.String("buildings", "", "buildings input file")
	namesPath := flag.String("names", "", "link-name mapping input file")
	outPath := flag.String("out", "rice.txt", "output Rice-factor file")

	samplesPerLink := flag.Int("samples-per-link", 3, "sample points per summed link")
	rayCount := flag.Int("rays", 360, "rays per trace")
	workerCount := flag.Int("workers", 4, "ray-tracing worker goroutines")
	gain := flag.Float64("gain", 1, "receiver antenna gain passed to ComputeK")
	seed := flag.Int64("seed", 1, "RNG seed for trace start angles")
	flag.Parse()

	if *nodesPath == "" || *linksPath == "" {
		log.Fatalf("raytrace-offline: -nodes and -links are required")
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
		log.Fatalf("raytrace-offline: load world: %v", err)
	}
	log.Printf("loaded %d nodes, %d summed links, %d buildings", len(w.Nodes), len(w.SummedLinks), len(w.Buildings))

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("raytrace-offline: create %s: %v", *outPath, err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	defer bw.Flush()

	rnd := rand.New(rand.NewSource(*seed))
	sections := buildSections(w, params, *samplesPerLink, *rayCount, *workerCount, *gain, rnd)

	if _, err := fmt.Fprintln(bw, len(sections)); err != nil {
		log.Fatalf("raytrace-offline: write header: %v", err)
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", s.l1, s.l2, len(s.samples)); err != nil {
			log.Fatalf("raytrace-offline: write section header: %v", err)
		}
		for _, samp := range s.samples {
			if _, err := fmt.Fprintf(bw, "%g %g %g %g %s\n",
				samp.SrcPos.X, samp.SrcPos.Y, samp.DstPos.X, samp.DstPos.Y, formatK(samp.K)); err != nil {
				log.Fatalf("raytrace-offline: write sample: %v", err)
			}
		}
	}
	log.Printf("wrote %d link-pair sections to %s", len(sections), *outPath)
}

func formatK(k float64) string {
	if k > 1e300 {
		return "inf"
	}
	return fmt.Sprintf("%g", k)
}

type section struct {
	l1, l2  int
	samples []world.RiceSample
}

// samplePoints returns n points evenly spaced along the summed link's
// segment, excluding the endpoints so every sample sits strictly on the
// road rather than at a shared node.
func samplePoints(seg geomkit.LineSegment, n int) []geomkit.Vector2D {
	pts := make([]geomkit.Vector2D, n)
	for i := 0; i < n; i++ {
		t := float64(i+1) / float64(n+1)
		pts[i] = geomkit.Add(seg.Start, geomkit.Scale(t, seg.Direction()))
	}
	return pts
}

// buildSections traces from every sample point on every summed link and
// records K against every other sample point (on any summed link, the
// transmitter's own included) within free-space range, skipping pairs that
// yield no in-range samples.
func buildSections(w *world.StaticWorld, params config.Params, samplesPerLink, rayCount, workerCount int, gain float64, rnd *rand.Rand) []section {
	freeSpaceRange := params.FreeSpaceRange()
	linkPoints := make([][]geomkit.Vector2D, len(w.SummedLinks))
	for i, l := range w.SummedLinks {
		linkPoints[i] = samplePoints(l.Segment(w.Nodes), samplesPerLink)
	}

	byPair := map[world.LinkPair][]world.RiceSample{}
	for i := range w.SummedLinks {
		for _, tx := range linkPoints[i] {
			tr := raytrace.New(w, params, tx, rayCount, workerCount, rnd.Int63())
			if err := tr.Execute(); err != nil {
				log.Fatalf("raytrace-offline: trace from link %d: %v", i, err)
			}
			log.Printf("trace %s: link %d tx=(%.2f,%.2f)", tr.TraceID, i, tx.X, tx.Y)

			for j := range w.SummedLinks {
				for _, rx := range linkPoints[j] {
					if i == j && tx == rx {
						continue
					}
					if geomkit.Distance(tx, rx) >= freeSpaceRange {
						continue
					}
					k := tr.ComputeK(rx, gain)
					pair := world.NewLinkPair(i, j)
					byPair[pair] = append(byPair[pair], world.RiceSample{SrcPos: tx, DstPos: rx, K: k})
				}
			}
		}
		log.Printf("traced %d/%d summed links", i+1, len(w.SummedLinks))
	}

	sections := make([]section, 0, len(byPair))
	for pair, samples := range byPair {
		sections = append(sections, section{l1: pair.A, l2: pair.B, samples: samples})
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].l1 != sections[j].l1 {
			return sections[i].l1 < sections[j].l1
		}
		return sections[i].l2 < sections[j].l2
	})
	return sections
}
