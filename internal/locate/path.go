package locate

import "path/filepath"

// ResolvePath returns the absolute, symlink-resolved form of a path.
// If resolution fails at any step, it returns the best result available.
func ResolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if eval, err := filepath.EvalSymlinks(abs); err == nil {
		return eval
	}
	return abs
}
