package locale

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// LoadCatalogFS builds a catalog for the given language tag from bundles in
// an fs.FS, typically an embedded filesystem. The cascade order and override
// semantics are the same as LoadCatalog; the Override option is interpreted
// as a path within fsys.
//
// Example:
//
//	//go:embed languages/*.properties
//	var bundles embed.FS
//
//	catalog, err := locale.LoadCatalogFS(bundles, "es", locale.Options{Dir: "languages"})
func LoadCatalogFS(fsys fs.FS, tag string, opts Options) (*Catalog, error) {
	opts = opts.withDefaults()

	read := func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, path.Join(opts.Dir, name))
	}
	c, err := load(tag, bundleNames(opts.Prefix, tag), read)
	if err != nil {
		return nil, err
	}

	if opts.Override != "" {
		data, err := fs.ReadFile(fsys, opts.Override)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read override bundle: %v", err)
		}
		if err == nil {
			if err := c.merge(opts.Override, data); err != nil {
				return nil, err
			}
		}
	}

	notifyCatalogLoad(c)
	return c, nil
}
