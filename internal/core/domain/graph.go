package domain

// CheckCycles walks the dependency edges reachable from roots and returns a
// *CircularDependencyError for the first cycle found.
// Only recipe names are inspected, so no expression is evaluated.
func (t *RecipeTable) CheckCycles(roots []string) error {
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		recipe, exists := t.recipes[u]
		if exists {
			for _, dep := range recipe.Dependencies {
				if visited[dep.Recipe] == 1 {
					return buildCycleError(path, dep.Recipe)
				}
				if visited[dep.Recipe] == 0 {
					if err := visit(dep.Recipe); err != nil {
						return err
					}
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, root := range roots {
		name := NewInternedString(root)
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildCycleError(path []InternedString, dep InternedString) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-start+1)
	for _, node := range path[start:] {
		cycle = append(cycle, node.String())
	}
	cycle = append(cycle, dep.String())
	return &CircularDependencyError{Cycle: cycle}
}
