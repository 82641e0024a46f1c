package fluid

import (
	"math"
	"sync"

	V "github.com/andewx/sph2d/vector"
)

// colStripe is one vertical stripe of grid columns split into its left and
// right halves. The engine runs all stripes' left halves concurrently,
// joins, then all stripes' right halves concurrently, joins - so within
// either wave the only cells adjacent to an active half belong to an
// inactive half, and the shared-boundary race the source warns about
// never materializes.
type colStripe struct {
	leftStart, leftEnd   int
	rightStart, rightEnd int
}

func partitionColumns(cols, numThreads int) []colStripe {
	if numThreads < 1 {
		numThreads = 1
	}
	if numThreads > cols {
		numThreads = cols
	}
	if numThreads < 1 {
		numThreads = 1
	}

	base := cols / numThreads
	rem := cols % numThreads

	stripes := make([]colStripe, 0, numThreads)
	start := 0
	for t := 0; t < numThreads; t++ {
		width := base
		if t < rem {
			width++
		}
		end := start + width
		half := width / 2
		stripes = append(stripes, colStripe{
			leftStart:  start,
			leftEnd:    start + half,
			rightStart: start + half,
			rightEnd:   end,
		})
		start = end
	}
	return stripes
}

// updateNeighbours refreshes every particle's neighbour list per §4.3's
// striped/half-stripe threaded scheme. The grid itself is read-only here;
// it was populated by the single-threaded refreshGrid immediately before.
func (e *Engine) updateNeighbours() {
	h := e.Config.SmoothingRadius
	h2 := h * h
	stripes := partitionColumns(e.grid.Cols, e.Config.NumThreads)

	var wg sync.WaitGroup
	for _, s := range stripes {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.collectNeighboursInColumns(s.leftStart, s.leftEnd, h2)
		}()
	}
	wg.Wait()

	for _, s := range stripes {
		s := s
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.collectNeighboursInColumns(s.rightStart, s.rightEnd, h2)
		}()
	}
	wg.Wait()
}

func (e *Engine) collectNeighboursInColumns(colStart, colEnd int, h2 float32) {
	for col := colStart; col < colEnd; col++ {
		for row := 0; row < e.grid.Rows; row++ {
			key := GridKey{col, row}
			bucket := e.grid.Cell(key)
			for _, pIdx := range bucket {
				e.collectNeighboursForParticle(pIdx, key, h2)
			}
		}
	}
}

// collectNeighboursForParticle enumerates the 3x3 cell block around key:
// the particle's own cell is included unconditionally (its members are
// within the kernel support by construction of cell size == h, modulo the
// accepted corner-case overshoot noted in §4.3), the eight surrounding
// cells are filtered by squared distance.
func (e *Engine) collectNeighboursForParticle(pIdx int, key GridKey, h2 float32) {
	p := &e.particles[pIdx]
	p.ClearNeighbours()
	pos := e.positionFor(pIdx)

	for dj := -1; dj <= 1; dj++ {
		for di := -1; di <= 1; di++ {
			own := di == 0 && dj == 0
			bucket := e.grid.Cell(GridKey{key.I + di, key.J + dj})
			for _, qIdx := range bucket {
				if qIdx == pIdx {
					continue
				}
				qPos := e.positionFor(qIdx)
				delta := V.Sub(pos, qPos)
				distSqr := V.LengthSqr(delta)
				if !own && distSqr >= h2 {
					continue
				}
				e.appendNeighbour(p, qIdx, delta, distSqr)
			}
		}
	}
}

// appendNeighbour records a neighbour entry, applying the coincidence rule:
// exact overlap substitutes r=1.0 and a uniformly random unit direction so
// the singularity at r=0 never reaches the force kernels.
func (e *Engine) appendNeighbour(p *Particle, qIdx int, delta V.Vec2, distSqr float32) {
	var r float32
	var dir V.Vec2

	if distSqr <= 0 {
		r = 1.0
		dir = e.randomUnitVector()
	} else {
		r = float32(math.Sqrt(float64(distSqr)))
		dir = V.Scale(delta, 1.0/r)
	}

	p.Neighbours = append(p.Neighbours, Neighbour{Index: qIdx, R: r, Dir: dir})
}

func (e *Engine) positionFor(idx int) V.Vec2 {
	if e.Config.UsePredictedPositions {
		return e.particles[idx].Predicted
	}
	return e.particles[idx].Position
}

func (e *Engine) randomUnitVector() V.Vec2 {
	e.rngMu.Lock()
	angle := e.rng.Float64() * 2 * math.Pi
	e.rngMu.Unlock()
	return V.Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))}
}
