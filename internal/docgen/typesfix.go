package docgen

import (
	"fmt"
	"path"
	"strings"

	"github.com/julianshen/dsuigen/internal/vfs"
)

// declarationSuffixes are the files the type-folder fixup moves.
var declarationSuffixes = []string{".d.ts", ".d.mts", ".d.cts"}

// FixTypesResult reports what FixTypes did.
type FixTypesResult struct {
	Copied  []string
	Removed bool
}

// FixTypes flattens declarations emitted under <typesDir>/<sourceDir> into
// typesDir so that the export map's types paths resolve. The nested folder is
// removed afterwards when fsys supports removal. A missing nested folder is
// a no-op.
func FixTypes(fsys vfs.FS, typesDir, sourceDir string) (*FixTypesResult, error) {
	typesDir = vfs.Clean(typesDir)
	nested := vfs.Clean(path.Join(typesDir, sourceDir))
	res := &FixTypesResult{}
	if nested == typesDir || !fsys.Exists(nested) {
		return res, nil
	}

	err := vfs.Walk(fsys, nested, func(name string) error {
		if !isDeclarationFile(name) {
			return nil
		}
		data, err := fsys.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		target := path.Join(typesDir, strings.TrimPrefix(name, nested+"/"))
		if err := fsys.WriteFile(target, data); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		res.Copied = append(res.Copied, target)
		return nil
	})
	if err != nil {
		if vfs.IsNotExist(err) {
			return res, nil
		}
		return nil, err
	}

	if r, ok := fsys.(vfs.Remover); ok {
		if err := r.RemoveAll(nested); err != nil {
			return nil, fmt.Errorf("removing %s: %w", nested, err)
		}
		res.Removed = true
	}
	return res, nil
}

func isDeclarationFile(name string) bool {
	for _, suffix := range declarationSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
