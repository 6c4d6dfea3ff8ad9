package world

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/banshee-data/radiosim/internal/config"
	"github.com/banshee-data/radiosim/internal/geomkit"
)

// LoadPaths names the five mandatory-format input files of spec.md §6. An
// empty string means the file is absent; the affected data is then empty and
// all dependent queries return their documented default.
type LoadPaths struct {
	Nodes          string
	Links          string
	Classification string
	Buildings      string
	LinkNames      string
	RiceTable      string // optional even when present; §6 input 6
}

// tokenizer pulls whitespace-separated tokens off a reader, matching the
// "whitespace-separated ASCII, decimal numbers" format shared by every input
// file in spec.md §6.
type tokenizer struct {
	file string
	sc   *bufio.Scanner
}

func newTokenizer(file string, r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokenizer{file: file, sc: sc}
}

func (t *tokenizer) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", &LoadError{Kind: Malformed, File: t.file, Err: err}
		}
		return "", &LoadError{Kind: UnexpectedEOF, File: t.file, Err: io.ErrUnexpectedEOF}
	}
	return t.sc.Text(), nil
}

func (t *tokenizer) nextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &LoadError{Kind: Malformed, File: t.file, Err: fmt.Errorf("expected int, got %q: %w", tok, err)}
	}
	return v, nil
}

func (t *tokenizer) nextFloat() (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	if tok == "inf" || tok == "+inf" || tok == "Inf" {
		return math.Inf(1), nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, &LoadError{Kind: Malformed, File: t.file, Err: fmt.Errorf("expected float, got %q: %w", tok, err)}
	}
	return v, nil
}

func openTokenizer(path string) (*tokenizer, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &LoadError{Kind: FileMissing, File: path, Err: err}
	}
	return newTokenizer(path, f), f, nil
}

// Load parses the five static input files (plus the optional Rice table),
// computes summed links and the spatial indices, and returns a fully-built,
// immutable StaticWorld. On any error, no partial world is retained.
func Load(paths LoadPaths, params config.Params) (*StaticWorld, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	w := &StaticWorld{
		Params:          params,
		nodePairIndex:   make(map[[2]int]int),
		classifications: make(map[LinkPair]Classification),
		linkNameIndex:   make(map[string]int),
		riceTable:       make(map[LinkPair][]RiceSample),
	}

	if paths.Nodes != "" {
		if err := loadNodes(w, paths.Nodes); err != nil {
			return nil, err
		}
	}
	if paths.Links != "" {
		if err := loadLinks(w, paths.Links); err != nil {
			return nil, err
		}
	}
	if paths.Classification != "" {
		if err := loadClassifications(w, paths.Classification); err != nil {
			return nil, err
		}
	}
	if paths.Buildings != "" {
		if err := loadBuildings(w, paths.Buildings); err != nil {
			return nil, err
		}
	}
	if paths.LinkNames != "" {
		if err := loadLinkNames(w, paths.LinkNames); err != nil {
			return nil, err
		}
	}
	if paths.RiceTable != "" {
		if err := loadRiceTable(w, paths.RiceTable); err != nil {
			return nil, err
		}
	}

	w.computeSummedLinks()
	w.computeSpatialIndices()
	w.ready = true
	return w, nil
}

func loadNodes(w *StaticWorld, path string) error {
	tok, f, err := openTokenizer(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := tok.nextInt()
	if err != nil {
		return err
	}
	w.Nodes = make([]Node, n)
	for i := 0; i < n; i++ {
		idx, err := tok.nextInt()
		if err != nil {
			return err
		}
		x, err := tok.nextFloat()
		if err != nil {
			return err
		}
		y, err := tok.nextFloat()
		if err != nil {
			return err
		}
		w.Nodes[i] = Node{
			Index:    idx,
			Position: geomkit.Vector2D{X: x, Y: y},
			Size:     w.Params.LaneWidth,
		}
	}
	return nil
}

func loadLinks(w *StaticWorld, path string) error {
	tok, f, err := openTokenizer(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := tok.nextInt()
	if err != nil {
		return err
	}
	w.Links = make([]Link, m)
	for i := 0; i < m; i++ {
		idx, err := tok.nextInt()
		if err != nil {
			return err
		}
		a, err := tok.nextInt()
		if err != nil {
			return err
		}
		b, err := tok.nextInt()
		if err != nil {
			return err
		}
		if a == b {
			return &LoadError{Kind: Malformed, File: path, Err: fmt.Errorf("link %d: nodeA == nodeB (%d)", idx, a)}
		}
		lanes, err := tok.nextInt()
		if err != nil {
			return err
		}
		if _, err := tok.next(); err != nil { // borderToken: parsed and discarded
			return err
		}
		flow, err := tok.nextFloat()
		if err != nil {
			return err
		}
		speed, err := tok.nextFloat()
		if err != nil {
			return err
		}
		w.Links[i] = Link{Index: idx, NodeA: a, NodeB: b, NumLanes: lanes, Flow: flow, Speed: speed}
	}
	return nil
}

func loadClassifications(w *StaticWorld, path string) error {
	tok, f, err := openTokenizer(path)
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := tok.nextInt()
	if err != nil {
		return err
	}
	for i := 0; i < c; i++ {
		l1, err := tok.nextInt()
		if err != nil {
			return err
		}
		l2, err := tok.nextInt()
		if err != nil {
			return err
		}
		tagVal, err := tok.nextInt()
		if err != nil {
			return err
		}
		tag := ClassTag(tagVal)
		fullCount, err := tok.nextInt()
		if err != nil {
			return err
		}

		cl := Classification{Tag: tag, FullNodeCount: fullCount}
		if tag == NLOS1 || tag == NLOS2 {
			cl.MainLanes, err = tok.nextFloat()
			if err != nil {
				return err
			}
			cl.SideLanes, err = tok.nextFloat()
			if err != nil {
				return err
			}
			if tag == NLOS2 {
				cl.ParaLanes, err = tok.nextFloat()
				if err != nil {
					return err
				}
			}
		}
		if tag != LOS {
			cl.NodeSet = make([]int, int(tag))
			for j := range cl.NodeSet {
				cl.NodeSet[j], err = tok.nextInt()
				if err != nil {
					return err
				}
			}
		}
		w.classifications[NewLinkPair(l1, l2)] = cl
	}
	return nil
}

func loadBuildings(w *StaticWorld, path string) error {
	tok, f, err := openTokenizer(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := tok.nextInt()
	if err != nil {
		return err
	}
	w.Buildings = make([]Building, b)
	for i := 0; i < b; i++ {
		if _, err := tok.next(); err != nil { // tmp token, discarded
			return err
		}
		eps, err := tok.nextFloat()
		if err != nil {
			return err
		}
		maxH, err := tok.nextFloat()
		if err != nil {
			return err
		}
		stdDev, err := tok.nextFloat()
		if err != nil {
			return err
		}
		k, err := tok.nextInt()
		if err != nil {
			return err
		}
		verts := make([]geomkit.Vector2D, k)
		for j := 0; j < k; j++ {
			x, err := tok.nextFloat()
			if err != nil {
				return err
			}
			y, err := tok.nextFloat()
			if err != nil {
				return err
			}
			verts[j] = geomkit.Vector2D{X: x, Y: y}
		}
		edges := make([]geomkit.LineSegment, 0, k)
		for j := 0; j < k; j++ {
			edges = append(edges, geomkit.NewLineSegment(verts[j], verts[(j+1)%k]))
		}
		w.Buildings[i] = Building{
			ID:           i,
			Edges:        edges,
			Permittivity: eps,
			MaxHeight:    maxH,
			HeightStdDev: stdDev,
		}
	}
	return nil
}

func loadLinkNames(w *StaticWorld, path string) error {
	tok, f, err := openTokenizer(path)
	if err != nil {
		return err
	}
	defer f.Close()

	k, err := tok.nextInt()
	if err != nil {
		return err
	}
	for i := 0; i < k; i++ {
		name, err := tok.next()
		if err != nil {
			return err
		}
		idx, err := tok.nextInt()
		if err != nil {
			return err
		}
		w.linkNameIndex[name] = idx
	}
	return nil
}

func loadRiceTable(w *StaticWorld, path string) error {
	tok, f, err := openTokenizer(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := tok.nextInt()
	if err != nil {
		return err
	}
	for i := 0; i < p; i++ {
		l1, err := tok.nextInt()
		if err != nil {
			return err
		}
		l2, err := tok.nextInt()
		if err != nil {
			return err
		}
		nPoints, err := tok.nextInt()
		if err != nil {
			return err
		}
		samples := make([]RiceSample, nPoints)
		for j := 0; j < nPoints; j++ {
			sx, err := tok.nextFloat()
			if err != nil {
				return err
			}
			sy, err := tok.nextFloat()
			if err != nil {
				return err
			}
			dx, err := tok.nextFloat()
			if err != nil {
				return err
			}
			dy, err := tok.nextFloat()
			if err != nil {
				return err
			}
			k, err := tok.nextFloat()
			if err != nil {
				return err
			}
			samples[j] = RiceSample{
				SrcPos: geomkit.Vector2D{X: sx, Y: sy},
				DstPos: geomkit.Vector2D{X: dx, Y: dy},
				K:      k,
			}
		}
		w.riceTable[NewLinkPair(l1, l2)] = samples
	}
	return nil
}
