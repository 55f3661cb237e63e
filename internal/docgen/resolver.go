package docgen

import (
	"path"
	"strings"

	"github.com/julianshen/dsuigen/internal/vfs"
)

// Resolve picks the entry file for a candidate found in folderPath. The
// precedence is fixed: <Name>/<Name>.<ext>, then <Name>/index.<ext>, then
// the standalone file itself. It returns false when nothing resolves.
func Resolve(fsys vfs.FS, folder, folderPath string, c Candidate, packageName string) (ModuleRecord, bool) {
	rec := ModuleRecord{
		Name:       c.Name,
		Folder:     folder,
		ImportPath: importPath(packageName, c.Name),
	}

	if !c.IsDir() {
		rec.Dir = folderPath
		rec.EntryPath = path.Join(folderPath, c.File)
		rec.Standalone = true
		return rec, fsys.Exists(rec.EntryPath)
	}

	rec.Dir = path.Join(folderPath, c.Name)
	if entry, ok := firstExisting(fsys, rec.Dir, c.Name); ok {
		rec.EntryPath = entry
		return rec, true
	}
	if entry, ok := firstExisting(fsys, rec.Dir, "index"); ok {
		rec.EntryPath = entry
		return rec, true
	}
	return rec, false
}

// firstExisting returns dir/base.<ext> for the first source extension that
// exists.
func firstExisting(fsys vfs.FS, dir, base string) (string, bool) {
	for _, ext := range sourceExtensions {
		candidate := path.Join(dir, base+ext)
		if fsys.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func importPath(packageName, name string) string {
	return strings.TrimSuffix(packageName, "/") + "/" + strings.ToLower(name)
}
