package session

import (
	"os"
	"strings"

	"github.com/byteptr/steel/internal/fsops"
)

// Registry persists the informational list of database paths ever created
// or opened by this user, grounded in the original implementation's
// status_set_tracking/status_del_tracking pair.
type Registry interface {
	Add(path string) error
	Remove(path string) error
	List() ([]string, error)
}

// fileRegistry is the real Registry, backed by $HOME/.steel_dbs with a
// $HOME/.steel_dbs.tmp sibling used for the remove-via-rewrite discipline.
type fileRegistry struct {
	path string
}

// NewFileRegistry builds the default Registry at $HOME/.steel_dbs.
func NewFileRegistry() (Registry, error) {
	path, err := fsops.HomeFile(".steel_dbs")
	if err != nil {
		return nil, err
	}
	return &fileRegistry{path: path}, nil
}

func (r *fileRegistry) List() ([]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

// Add appends path if it is not already present.
func (r *fileRegistry) Add(path string) error {
	existing, err := r.List()
	if err != nil {
		return err
	}
	for _, p := range existing {
		if p == path {
			return nil
		}
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(path + "\n")
	return err
}

// Remove deletes every line matching path, via write-to-temp then rename
// so a crash mid-rewrite never truncates the registry.
func (r *fileRegistry) Remove(path string) error {
	existing, err := r.List()
	if err != nil {
		return err
	}

	var kept []string
	for _, p := range existing {
		if p != path {
			kept = append(kept, p)
		}
	}

	return r.rewrite(kept)
}

func (r *fileRegistry) rewrite(paths []string) error {
	temp := fsops.TempSibling(r.path, ".tmp")
	var content strings.Builder
	for _, p := range paths {
		content.WriteString(p)
		content.WriteString("\n")
	}
	if err := os.WriteFile(temp, []byte(content.String()), 0600); err != nil {
		return err
	}
	return fsops.ReplaceWithTemp(r.path, temp)
}
