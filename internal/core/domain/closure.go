package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Closure is the result of building the transitive OS package closure. It
// exists only for the duration of one snapshot run and is folded into the
// lockfile before the run ends.
type Closure struct {
	// Artifacts maps package names to repacked artifact filenames.
	Artifacts map[string]string

	// Graph is the dependency graph keyed by artifact filename, never by
	// package name: two packages may later be told apart only by their
	// archive filename.
	Graph *ArtifactGraph

	// Order is the safe install order, dependencies before dependents.
	Order []string

	// Failures lists the packages that could not be repacked.
	Failures []RepackFailure

	// Checksums maps artifact filenames to xxhash64 digests of the artifact
	// contents.
	Checksums map[string]string
}

// ArtifactGraph is a dependency graph over artifact filenames.
type ArtifactGraph struct {
	edges map[InternedString][]InternedString
}

// NewArtifactGraph creates an empty graph.
func NewArtifactGraph() *ArtifactGraph {
	return &ArtifactGraph{
		edges: make(map[InternedString][]InternedString),
	}
}

// Add inserts an artifact and the artifacts it depends on. Adding the same
// artifact twice replaces its edge list.
func (g *ArtifactGraph) Add(artifact InternedString, deps []InternedString) {
	g.edges[artifact] = deps
}

// Len returns the number of artifacts in the graph.
func (g *ArtifactGraph) Len() int {
	return len(g.edges)
}

// Dependencies returns the direct dependencies of an artifact.
func (g *ArtifactGraph) Dependencies(artifact InternedString) []InternedString {
	return g.edges[artifact]
}

// Sort produces a linear order in which every artifact appears after all
// artifacts it depends on. Ties among independent artifacts are broken
// lexicographically so the same input graph always yields the same order.
// A cycle is fatal for the whole closure.
func (g *ArtifactGraph) Sort() ([]string, error) {
	order := make([]string, 0, len(g.edges))
	visited := make(map[InternedString]int, len(g.edges)) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		deps := slices.Clone(g.edges[u])
		slices.SortFunc(deps, compareInterned)
		for _, dep := range deps {
			// Edges may reference artifacts that only appear as dependencies.
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		order = append(order, u.String())
		return nil
	}

	roots := make([]InternedString, 0, len(g.edges))
	for artifact := range g.edges {
		roots = append(roots, artifact)
	}
	slices.SortFunc(roots, compareInterned)

	for _, artifact := range roots {
		if visited[artifact] == 0 {
			if err := visit(artifact); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// buildCycleError constructs an error carrying the cycle path.
func (g *ArtifactGraph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(zerr.Wrap(ErrCycleDetected, "dependency graph is not a DAG"), "cycle", cyclePath)
}

func compareInterned(a, b InternedString) int {
	switch {
	case a.String() < b.String():
		return -1
	case a.String() > b.String():
		return 1
	default:
		return 0
	}
}
