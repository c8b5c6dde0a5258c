// Package dofuenv resolves the paths dofu needs from the environment, per
// spec.md section 6 ("Environment") and grounded on original_source's
// env.py (user_home_path, xdg_config_path, dot_config_path, and their
// _relhome variants, plus the project-root / cache-root / persistence-root
// discovery chain).
package dofuenv

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// projectMarker is the file the project root is discovered by walking up
// for, mirroring original_source's pyproject.toml marker.
const projectMarker = "dofu.root"

// UserHome returns $HOME, falling back to os.UserHomeDir.
func UserHome() (string, error) {
	if h := os.Getenv("HOME"); h != "" {
		return h, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving user home")
	}
	return h, nil
}

// UserHomePath joins nested path elements onto the user's home directory.
func UserHomePath(nested ...string) (string, error) {
	home, err := UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, nested...)...), nil
}

// XDGConfigHome returns $XDG_CONFIG_HOME if set, else $HOME/.config.
func XDGConfigHome() (string, error) {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return x, nil
	}
	home, err := UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

// XDGConfigPath joins nested path elements onto the XDG config directory.
func XDGConfigPath(nested ...string) (string, error) {
	base, err := XDGConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{base}, nested...)...), nil
}

// ProjectRoot walks up from the given starting directory (the running
// executable's directory when from=="") looking for the project marker
// file, mirroring env.py's project_root().
func ProjectRoot(from string) (string, error) {
	dir := from
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", errors.Wrap(err, "locating executable")
		}
		dir = filepath.Dir(exe)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolving absolute path")
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, projectMarker)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Errorf("no %s found above %s", projectMarker, from)
		}
		dir = parent
	}
}

// DotConfigPath joins nested path elements onto <project root>/xdg-config.
func DotConfigPath(projectRoot string, nested ...string) string {
	return filepath.Join(append([]string{projectRoot, "xdg-config"}, nested...)...)
}

// RelHome rewrites an absolute path under the user's home directory to
// "$HOME/..." form, mirroring env.py's *_relhome helpers.
func RelHome(path string) (string, error) {
	home, err := UserHome()
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(home, path)
	if err != nil {
		return "", errors.Wrapf(err, "relativizing %s to home", path)
	}
	return filepath.Join("$HOME", rel), nil
}

// CacheRoot returns <project root>/.cache, creating it if needed.
func CacheRoot(projectRoot string) (string, error) {
	root := filepath.Join(projectRoot, ".cache")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating cache root %s", root)
	}
	return root, nil
}

// PersistenceRoot returns <cache root>/.persistence, creating it if needed.
func PersistenceRoot(cacheRoot string) (string, error) {
	root := filepath.Join(cacheRoot, ".persistence")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating persistence root %s", root)
	}
	return root, nil
}

// EquipmentPersistenceFile returns <persistence root>/equipment.yaml, the
// one journal file spec.md section 6 describes.
func EquipmentPersistenceFile(persistenceRoot string) string {
	return filepath.Join(persistenceRoot, "equipment.yaml")
}
