package installer

import "go.trai.ch/yalc/internal/core/domain"

// GroupSpecs exposes the update partition as mode name to package specs.
func GroupSpecs(lock *domain.Lockfile, names []string) [][]string {
	groups := groupByMode(lock, names, nil)
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = g.specs
	}
	return out
}

// GroupModes returns the modes of the update partition in call order.
func GroupModes(lock *domain.Lockfile, names []string) []domain.InstallMode {
	groups := groupByMode(lock, names, nil)
	out := make([]domain.InstallMode, len(groups))
	for i, g := range groups {
		out[i] = g.mode
	}
	return out
}
