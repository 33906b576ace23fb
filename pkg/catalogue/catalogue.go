// Package catalogue provides the base component catalogue: the closed,
// versioned vocabulary of tag names the rendering clients implement.
//
// The catalogue is loaded once per process and read-only afterwards, so
// parallel compilations can share it without locking.
package catalogue

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/leapview/pkg/scenario"
	"gopkg.in/yaml.v3"
)

// Builtin is the component vocabulary shipped with the framework's
// design-system library. A project catalogue file replaces (not extends)
// this list; projects that want the defaults plus extras list them all.
var Builtin = []string{
	"Screen",
	"Row",
	"Column",
	"Text",
	"Label",
	"Button",
	"Image",
	"Icon",
	"Input",
	"Checkbox",
	"Switch",
	"Slider",
	"Spacer",
	"Divider",
	"Card",
	"List",
	"Grid",
	"ScrollView",
	"Modal",
	"ProgressBar",
	"Video",
	"WebView",
}

// catalogueFile is the YAML shape of a project catalogue.
type catalogueFile struct {
	Components []string `yaml:"components"`
}

// Load reads a catalogue file and returns its component names.
// An empty path returns the builtin vocabulary.
func Load(path string) ([]string, error) {
	if path == "" {
		return Builtin, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scenario.NewIOError("read catalogue "+path, err)
	}

	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, scenario.NewIOError("parse catalogue "+path, err)
	}
	if len(f.Components) == 0 {
		return nil, scenario.NewIOError("parse catalogue "+path,
			fmt.Errorf("catalogue declares no components"))
	}
	return f.Components, nil
}
