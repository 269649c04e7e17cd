// Package grid defines the mesh contract the well manager traverses, plus a
// concrete logically structured grid with partition (rank) assignment.
package grid

// ElementContext gives access to one locally owned element during a mesh
// traversal
type ElementContext interface {
	// NumDof returns the number of primary degrees of freedom of the element
	NumDof() int

	// GlobalIndex resolves a local DOF to its globally unique index
	GlobalIndex(dof int) int

	// CartesianIndex resolves a local DOF to its stable logical cartesian
	// index, which is independent of how the mesh is partitioned
	CartesianIndex(dof int) int
}

// Mesh enumerates the locally owned elements of one mesh partition.
// Non-owned elements are never visited, so per-rank traversals of a
// distributed mesh do not double-count.
type Mesh interface {
	EachLocalElement(fn func(ElementContext) error) error
}
