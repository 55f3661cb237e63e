package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianshen/dsuigen/internal/vfs"
)

func TestReadmeDescription(t *testing.T) {
	fsys := vfs.NewMem(map[string]string{
		"src/components/Button/README.md": "---\ndescription: Triggers an action.\n---\n# Button\n",
		"src/hooks/README.md":             "---\ndescription: All hooks.\n---\n",
	})

	assert.Equal(t, "Triggers an action.", readmeDescription(fsys, ModuleRecord{Name: "Button", Dir: "src/components/Button"}))
	assert.Empty(t, readmeDescription(fsys, ModuleRecord{Name: "Badge", Dir: "src/components/Badge"}))
	assert.Empty(t, readmeDescription(fsys, ModuleRecord{Name: "useToggle", Dir: "src/hooks", Standalone: true}))
}
