package domain

// PackageManager identifies a host package manager.
type PackageManager string

const (
	// NPM is the npm package manager.
	NPM PackageManager = "npm"
	// Yarn is the yarn package manager.
	Yarn PackageManager = "yarn"
	// Pnpm is the pnpm package manager.
	Pnpm PackageManager = "pnpm"
)

// DefaultPackageManager is used when no lockfile identifies the host manager.
const DefaultPackageManager = NPM

// PackageManagerStrategy describes how to drive one package manager.
type PackageManagerStrategy struct {
	ID PackageManager
	// LockFile is the file whose presence selects this manager.
	LockFile string
	// RunScript is the command prefix used to run a manifest script.
	RunScript []string
	// Update is the command prefix used to refresh installed packages.
	Update []string
}

// PackageManagers is the strategy table keyed by manager, in detection order.
var PackageManagers = []PackageManagerStrategy{
	{ID: Pnpm, LockFile: "pnpm-lock.yaml", RunScript: []string{"pnpm", "run"}, Update: []string{"pnpm", "update"}},
	{ID: Yarn, LockFile: "yarn.lock", RunScript: []string{"yarn"}, Update: []string{"yarn", "upgrade"}},
	{ID: NPM, LockFile: "package-lock.json", RunScript: []string{"npm", "run"}, Update: []string{"npm", "update"}},
}

// Strategy returns the table entry for pm, falling back to npm.
func Strategy(pm PackageManager) PackageManagerStrategy {
	for _, s := range PackageManagers {
		if s.ID == pm {
			return s
		}
	}
	return PackageManagers[len(PackageManagers)-1]
}
