package docgen

import (
	"path"

	"github.com/julianshen/dsuigen/internal/frontmatter"
	"github.com/julianshen/dsuigen/internal/vfs"
)

// readmeDescription returns the description from <Dir>/<Name>/README.md for
// directory modules. Standalone modules have no README.
func readmeDescription(fsys vfs.FS, rec ModuleRecord) string {
	if rec.Standalone {
		return ""
	}
	data, err := fsys.ReadFile(path.Join(rec.Dir, "README.md"))
	if err != nil {
		return ""
	}
	return frontmatter.Description(string(data))
}
