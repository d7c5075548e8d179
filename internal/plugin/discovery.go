package plugin

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Loader turns one candidate file from a plugin directory into a
// registered plugin. Implementations exist per loading mechanism
// (shared objects, subprocess manifests).
type Loader interface {
	// Supports reports whether this loader handles the candidate path.
	Supports(path string) bool
	// Load builds the plugin from the candidate.
	Load(path string) (*Plugin, error)
}

// SetLoaders installs the external-plugin loaders used by Discover.
func (r *Registry) SetLoaders(loaders ...Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders = loaders
}

// Discover scans each directory for loadable plugin candidates and
// registers every one that loads. A candidate that fails to load is
// logged and skipped; it never aborts discovery of the remaining
// candidates or directories.
func (r *Registry) Discover(dirs []string) {
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.WithFields(log.Fields{
				"dir":   dir,
				"error": err,
			}).Warn("Skipping unreadable plugin directory")
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			loader := r.loaderFor(path)
			if loader == nil {
				continue
			}

			p, err := loader.Load(path)
			if err != nil {
				log.WithFields(log.Fields{
					"path":  path,
					"error": err,
				}).Error("Failed to load plugin candidate")
				continue
			}
			if err := r.Register(p); err != nil {
				log.WithFields(log.Fields{
					"path":  path,
					"error": err,
				}).Error("Failed to register discovered plugin")
				continue
			}
			log.WithFields(log.Fields{
				"plugin": p.Meta.Name,
				"path":   path,
			}).Debug("Loaded external plugin")
		}
	}
}

func (r *Registry) loaderFor(path string) Loader {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.loaders {
		if l.Supports(path) {
			return l
		}
	}
	return nil
}
