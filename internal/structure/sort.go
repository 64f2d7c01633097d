package structure

// SortTablesByFKCount sorts tables by dependency order, referenced tables first.
// It handles circular dependencies by using a scoring system.
func SortTablesByFKCount(tables []*Table) []*Table {
	return sortTables(tables, nil)
}

func sortTables(tables []*Table, onCycle func(name string, score int)) []*Table {
	var sorted []*Table
	processed := make(map[string]bool)
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	// Keep looping until all tables are processed
	for len(sorted) < len(tables) {
		added := false

		// Pass 1: Add tables whose dependencies are fully satisfied
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			allDepsProcessed := true
			for _, depName := range t.Dependencies {
				if !processed[depName] {
					allDepsProcessed = false
					break
				}
			}

			if allDepsProcessed {
				sorted = append(sorted, t)
				processed[t.Name] = true
				added = true
			}
		}

		if added {
			continue
		}

		// Pass 2: No table added, we have a cycle. Break it using heuristic score.
		var bestTable *Table
		bestScore := -999999

		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			// Penalty: unprocessed FKs. Bonus: the table sits on a two-way cycle.
			score := 0
			unprocessedDeps := 0
			isCircular := false
			for _, depName := range t.Dependencies {
				if processed[depName] {
					continue
				}
				unprocessedDeps++
				if dep, ok := byName[depName]; ok && contains(dep.Dependencies, t.Name) {
					isCircular = true
				}
			}
			score -= unprocessedDeps * 100
			if isCircular {
				score += 500
			}

			// Tie-breaker: Name (Deterministic)
			if score > bestScore || (score == bestScore && (bestTable == nil || t.Name > bestTable.Name)) {
				bestScore = score
				bestTable = t
			}
		}

		if bestTable == nil {
			break
		}
		sorted = append(sorted, bestTable)
		processed[bestTable.Name] = true
		if onCycle != nil {
			onCycle(bestTable.Name, bestScore)
		}
	}

	return sorted
}
