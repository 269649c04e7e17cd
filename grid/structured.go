package grid

import (
	"fmt"
)

// PartitionStrategy defines how cells are assigned to ranks
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // Consecutive cells per rank
	RoundRobin                              // Distribute cells cyclically
)

// StructuredGrid is a logically cartesian cell-centered grid. Each active
// cell carries exactly one degree of freedom. When cells are deactivated
// the global DOF numbering is compressed, so the global index and the
// cartesian index of a cell differ.
type StructuredGrid struct {
	NX, NY, NZ int

	// ActiveCells maps global DOF index to cartesian cell index.
	// Length is the number of active cells.
	ActiveCells []int

	// CellToRank maps global DOF index to its owning rank
	CellToRank []int

	// Rank selects the partition this grid instance traverses as local
	Rank int

	// NumRanks is the total number of partitions
	NumRanks int
}

// NewStructuredGrid creates a fully active single-rank grid of the given
// extents. The global DOF numbering is then identical to the cartesian
// numbering.
func NewStructuredGrid(nx, ny, nz int) (*StructuredGrid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("invalid grid extents: nx=%d, ny=%d, nz=%d", nx, ny, nz)
	}
	n := nx * ny * nz
	g := &StructuredGrid{
		NX:          nx,
		NY:          ny,
		NZ:          nz,
		ActiveCells: make([]int, n),
		CellToRank:  make([]int, n),
		NumRanks:    1,
	}
	for i := range g.ActiveCells {
		g.ActiveCells[i] = i
	}
	return g, nil
}

// NewCompressedGrid creates a single-rank grid whose active cells are the
// given cartesian indices, in ascending global DOF order.
func NewCompressedGrid(nx, ny, nz int, activeCartesian []int) (*StructuredGrid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("invalid grid extents: nx=%d, ny=%d, nz=%d", nx, ny, nz)
	}
	n := nx * ny * nz
	active := make([]int, len(activeCartesian))
	for i, c := range activeCartesian {
		if c < 0 || c >= n {
			return nil, fmt.Errorf("active cell %d out of range [0,%d)", c, n)
		}
		active[i] = c
	}
	return &StructuredGrid{
		NX:          nx,
		NY:          ny,
		NZ:          nz,
		ActiveCells: active,
		CellToRank:  make([]int, len(active)),
		NumRanks:    1,
	}, nil
}

// NumCells returns the number of active cells (global DOFs)
func (g *StructuredGrid) NumCells() int {
	return len(g.ActiveCells)
}

// Partition assigns every active cell to one of numRanks ranks
func (g *StructuredGrid) Partition(numRanks int, strategy PartitionStrategy) error {
	if numRanks < 1 {
		return fmt.Errorf("invalid rank count %d", numRanks)
	}
	n := g.NumCells()

	switch strategy {
	case BlockPartition:
		// Simple block partitioning
		perRank := (n + numRanks - 1) / numRanks
		if perRank < 1 {
			perRank = 1
		}
		for i := 0; i < n; i++ {
			r := i / perRank
			if r >= numRanks {
				r = numRanks - 1
			}
			g.CellToRank[i] = r
		}

	case RoundRobin:
		// Distribute cells cyclically
		for i := 0; i < n; i++ {
			g.CellToRank[i] = i % numRanks
		}

	default:
		return fmt.Errorf("unknown partition strategy %d", strategy)
	}

	g.NumRanks = numRanks
	return nil
}

// Validate checks grid consistency
func (g *StructuredGrid) Validate() error {
	n := g.NX * g.NY * g.NZ
	if len(g.ActiveCells) > n {
		return fmt.Errorf("%d active cells exceed grid size %d", len(g.ActiveCells), n)
	}
	if len(g.CellToRank) != len(g.ActiveCells) {
		return fmt.Errorf("CellToRank length %d does not match %d active cells",
			len(g.CellToRank), len(g.ActiveCells))
	}
	for dof, cart := range g.ActiveCells {
		if cart < 0 || cart >= n {
			return fmt.Errorf("DOF %d: cartesian index %d out of range [0,%d)", dof, cart, n)
		}
	}
	for dof, r := range g.CellToRank {
		if r < 0 || r >= g.NumRanks {
			return fmt.Errorf("DOF %d: rank %d out of range [0,%d)", dof, r, g.NumRanks)
		}
	}
	if g.Rank < 0 || g.Rank >= g.NumRanks {
		return fmt.Errorf("local rank %d out of range [0,%d)", g.Rank, g.NumRanks)
	}
	return nil
}

// OnRank returns a view of the same grid traversing a different rank
func (g *StructuredGrid) OnRank(rank int) *StructuredGrid {
	view := *g
	view.Rank = rank
	return &view
}

// cellContext is the ElementContext of one structured-grid cell
type cellContext struct {
	global    int
	cartesian int
}

func (c cellContext) NumDof() int { return 1 }

func (c cellContext) GlobalIndex(int) int { return c.global }

func (c cellContext) CartesianIndex(int) int { return c.cartesian }

// EachLocalElement visits every cell owned by the grid's local rank
func (g *StructuredGrid) EachLocalElement(fn func(ElementContext) error) error {
	for dof, cart := range g.ActiveCells {
		if g.CellToRank[dof] != g.Rank {
			continue // non-local cells are skipped entirely
		}
		if err := fn(cellContext{global: dof, cartesian: cart}); err != nil {
			return err
		}
	}
	return nil
}
