package prefs

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// catalogFile mirrors the TOML declaration of a static catalog.
//
//	[[pane]]
//	name = "Editor"
//
//	  [[pane.group]]
//	  name = "General"
//
//	    [[pane.group.entry]]
//	    key = "editor.fontSize"
//	    description = "preferences.editor.fontSize"
//	    control = "text"
//	    width = 40
type catalogFile struct {
	Panes []paneDecl `toml:"pane"`
}

type paneDecl struct {
	Name   string      `toml:"name"`
	Groups []groupDecl `toml:"group"`
}

type groupDecl struct {
	Name    string      `toml:"name"`
	Entries []entryDecl `toml:"entry"`
}

type entryDecl struct {
	Key         string `toml:"key"`
	Description string `toml:"description"`
	Control     string `toml:"control"`
	Width       int    `toml:"width"`
}

// LoadCatalog assembles a static catalog from a TOML declaration file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %v", err)
	}

	var decl catalogFile
	if err := toml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %v", path, err)
	}

	catalog := NewCatalog()
	for _, paneDecl := range decl.Panes {
		if paneDecl.Name == "" {
			return nil, fmt.Errorf("catalog file %s: pane without a name", path)
		}
		pane := catalog.AddPane(paneDecl.Name)
		for _, groupDecl := range paneDecl.Groups {
			group := pane.AddGroup(groupDecl.Name)
			for _, entry := range groupDecl.Entries {
				descriptor, err := entry.descriptor()
				if err != nil {
					return nil, fmt.Errorf("catalog file %s: %v", path, err)
				}
				group.Add(descriptor)
			}
		}
	}
	return catalog, nil
}

func (e entryDecl) descriptor() (Descriptor, error) {
	if e.Key == "" {
		return Descriptor{}, fmt.Errorf("entry without a key")
	}

	control := Control{Kind: ControlTextField, MaxWidth: e.Width}
	switch e.Control {
	case "", "text":
		if control.MaxWidth == 0 {
			control.MaxWidth = DefaultTextFieldWidth
		}
	case "toggle":
		control = Control{Kind: ControlToggle}
	default:
		return Descriptor{}, fmt.Errorf("entry %s: unknown control %q", e.Key, e.Control)
	}

	description := e.Description
	if description == "" {
		description = e.Key
	}
	return Descriptor{Key: e.Key, DescriptionKey: description, Control: control}, nil
}
