package world

import (
	"math"

	"github.com/banshee-data/radiosim/internal/geomkit"
)

const sin45 = math.Sqrt2 / 2

// BuildingBuckets is a uniform square grid over building ids, with bucket
// side Params.GridSize, so the raytracer can cheaply snapshot "nearby
// buildings" (spec.md §3, §4.2).
type BuildingBuckets struct {
	cells      [][]map[int]struct{} // [bx][by]
	centroid   geomkit.Vector2D
	bucketSize float64
	bx, by     int
}

func newBuildingBuckets(rect geomkit.Rect, bucketSize float64) *BuildingBuckets {
	bx := int(math.Max(1, math.Ceil(rect.Size.X/bucketSize-sin45)))
	by := int(math.Max(1, math.Ceil(rect.Size.Y/bucketSize-sin45)))
	cells := make([][]map[int]struct{}, bx)
	for i := range cells {
		cells[i] = make([]map[int]struct{}, by)
		for j := range cells[i] {
			cells[i][j] = make(map[int]struct{})
		}
	}
	return &BuildingBuckets{cells: cells, centroid: rect.Location, bucketSize: bucketSize, bx: bx, by: by}
}

// bucketCenter returns the centre of bucket (i,j) in world coordinates.
func (b *BuildingBuckets) bucketCenter(i, j int) geomkit.Vector2D {
	return geomkit.Vector2D{
		X: b.centroid.X + (float64(i)+0.5)*b.bucketSize,
		Y: b.centroid.Y + (float64(j)+0.5)*b.bucketSize,
	}
}

func (b *BuildingBuckets) insert(buildings []Building) {
	for _, bld := range buildings {
		for _, e := range bld.Edges {
			// Only buckets whose expanded bounding box could contain the
			// edge need to be tested; this keeps insertion near-linear in
			// the number of buildings rather than O(Bx*By*edges).
			lo := geomkit.Vector2D{X: math.Min(e.Start.X, e.End.X), Y: math.Min(e.Start.Y, e.End.Y)}
			hi := geomkit.Vector2D{X: math.Max(e.Start.X, e.End.X), Y: math.Max(e.Start.Y, e.End.Y)}
			iMin := b.clampI(int(math.Floor((lo.X-b.centroid.X)/b.bucketSize)) - 1)
			iMax := b.clampI(int(math.Floor((hi.X-b.centroid.X)/b.bucketSize)) + 1)
			jMin := b.clampJ(int(math.Floor((lo.Y-b.centroid.Y)/b.bucketSize)) - 1)
			jMax := b.clampJ(int(math.Floor((hi.Y-b.centroid.Y)/b.bucketSize)) + 1)
			for i := iMin; i <= iMax; i++ {
				for j := jMin; j <= jMax; j++ {
					if e.IntersectsCircle(b.bucketCenter(i, j), b.bucketSize) {
						b.cells[i][j][bld.ID] = struct{}{}
					}
				}
			}
		}
	}
}

func (b *BuildingBuckets) clampI(i int) int {
	if i < 0 {
		return 0
	}
	if i >= b.bx {
		return b.bx - 1
	}
	return i
}

func (b *BuildingBuckets) clampJ(j int) int {
	if j < 0 {
		return 0
	}
	if j >= b.by {
		return b.by - 1
	}
	return j
}

func (b *BuildingBuckets) indexOf(p geomkit.Vector2D) (int, int) {
	i := b.clampI(int(math.Floor((p.X - b.centroid.X) / b.bucketSize)))
	j := b.clampJ(int(math.Floor((p.Y - b.centroid.Y) / b.bucketSize)))
	return i, j
}

// CollectInRange returns the union (in no particular order, each id once)
// of bucket contents whose bucket centres lie within r of p.
func (b *BuildingBuckets) CollectInRange(p geomkit.Vector2D, r float64) []int {
	var out []int
	seen := make(map[int]struct{})
	for i := 0; i < b.bx; i++ {
		for j := 0; j < b.by; j++ {
			if geomkit.Distance(b.bucketCenter(i, j), p) > r {
				continue
			}
			for id := range b.cells[i][j] {
				if _, ok := seen[id]; !ok {
					seen[id] = struct{}{}
					out = append(out, id)
				}
			}
		}
	}
	return out
}

// LinkGrid is a uniform square grid over summed-link indices (spec.md §3).
type LinkGrid struct {
	cells    [][]map[int]struct{} // [row][col]
	origin   geomkit.Vector2D
	cellSize float64
	rows     int
	cols     int
}

func newLinkGrid(rect geomkit.Rect, cellSize float64) *LinkGrid {
	cols := int(math.Max(1, math.Ceil(rect.Size.X/cellSize)))
	rows := int(math.Max(1, math.Ceil(rect.Size.Y/cellSize)))
	cells := make([][]map[int]struct{}, rows)
	for i := range cells {
		cells[i] = make([]map[int]struct{}, cols)
		for j := range cells[i] {
			cells[i][j] = make(map[int]struct{})
		}
	}
	return &LinkGrid{cells: cells, origin: rect.Location, cellSize: cellSize, rows: rows, cols: cols}
}

func (g *LinkGrid) cellRect(row, col int) geomkit.Rect {
	return geomkit.Rect{
		Location: geomkit.Vector2D{X: g.origin.X + float64(col)*g.cellSize, Y: g.origin.Y + float64(row)*g.cellSize},
		Size:     geomkit.Vector2D{X: g.cellSize, Y: g.cellSize},
	}
}

func (g *LinkGrid) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= g.rows {
		return g.rows - 1
	}
	return row
}

func (g *LinkGrid) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return g.cols - 1
	}
	return col
}

// cellAt returns the (row,col) for p, clamped to the grid's edge cell when p
// lies outside the map rect (spec.md §4.2: grid(p) clamps to edge cell).
func (g *LinkGrid) cellAt(p geomkit.Vector2D) (int, int) {
	row := g.clampRow(int(math.Floor((p.Y - g.origin.Y) / g.cellSize)))
	col := g.clampCol(int(math.Floor((p.X - g.origin.X) / g.cellSize)))
	return row, col
}

func (g *LinkGrid) insert(links []SummedLink, nodes []Node) {
	for _, l := range links {
		seg := l.Segment(nodes)
		lo := geomkit.Vector2D{X: math.Min(seg.Start.X, seg.End.X), Y: math.Min(seg.Start.Y, seg.End.Y)}
		hi := geomkit.Vector2D{X: math.Max(seg.Start.X, seg.End.X), Y: math.Max(seg.Start.Y, seg.End.Y)}
		rowMin, colMin := g.cellAt(lo)
		rowMax, colMax := g.cellAt(hi)
		for row := rowMin; row <= rowMax; row++ {
			for col := colMin; col <= colMax; col++ {
				if g.cellRect(row, col).ContainsSegment(seg) {
					g.cells[row][col][l.Index] = struct{}{}
				}
			}
		}
	}
}

// LinksInCell returns the summed-link indices in p's grid cell.
func (g *LinkGrid) LinksInCell(p geomkit.Vector2D) []int {
	row, col := g.cellAt(p)
	cell := g.cells[row][col]
	out := make([]int, 0, len(cell))
	for idx := range cell {
		out = append(out, idx)
	}
	return out
}

// computeSpatialIndices derives MapRect from node and building vertices and
// builds BuildingBuckets and LinkGrid, both sized to Params.GridSize — the
// single grid side spec.md §6 documents as "shared by bucket and link grid".
func (w *StaticWorld) computeSpatialIndices() {
	points := make([]geomkit.Vector2D, 0, len(w.Nodes))
	for _, n := range w.Nodes {
		points = append(points, n.Position)
	}
	for _, b := range w.Buildings {
		for _, e := range b.Edges {
			points = append(points, e.Start, e.End)
		}
	}
	w.MapRect = geomkit.NewRect(points...)

	w.buildingGrid = newBuildingBuckets(w.MapRect, w.Params.GridSize)
	w.buildingGrid.insert(w.Buildings)

	w.linkGrid = newLinkGrid(w.MapRect, w.Params.GridSize)
	w.linkGrid.insert(w.SummedLinks, w.Nodes)
}

// LinkGridCell returns the summed-link indices in p's grid cell, clamped to
// the grid's edge cell when p lies outside MapRect.
func (w *StaticWorld) LinkGridCell(p geomkit.Vector2D) []int {
	if w.linkGrid == nil {
		return nil
	}
	return w.linkGrid.LinksInCell(p)
}

// CollectBuildingsInRange returns the union of bucket contents whose bucket
// centres lie within r of p.
func (w *StaticWorld) CollectBuildingsInRange(p geomkit.Vector2D, r float64) []int {
	if w.buildingGrid == nil {
		return nil
	}
	return w.buildingGrid.CollectInRange(p, r)
}

// Classification looks up the canonicalised (l1,l2) pair; a miss synthesises
// OutOfRange with FullNodeCount = InfiniteNodeCount (spec.md §4.2).
func (w *StaticWorld) Classification(l1, l2 int) Classification {
	if cl, ok := w.classifications[NewLinkPair(l1, l2)]; ok {
		return cl
	}
	return outOfRangeClassification()
}

// ClassificationByName resolves both names via the link-name map first.
func (w *StaticWorld) ClassificationByName(name1, name2 string) (Classification, bool) {
	i1, ok1 := w.linkNameIndex[name1]
	i2, ok2 := w.linkNameIndex[name2]
	if !ok1 || !ok2 {
		return Classification{}, false
	}
	return w.Classification(i1, i2), true
}

// LinkHasMapping resolves a road name to its summed-link index.
func (w *StaticWorld) LinkHasMapping(name string) (int, bool) {
	idx, ok := w.linkNameIndex[name]
	return idx, ok
}
