package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is where edited specs are read from before the embedded copies.
const Dir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load reads a spec file, preferring the copy on disk under Dir.
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, trimPrefixes(name, Dir+"/"))
}

// LoadScript reads a phase script. Names may be given with or without the
// prefabs/ and scripts/ prefixes.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, path.Join("scripts", trimPrefixes(name, Dir+"/", "scripts/")))
}

// WatchDirs are the disk directories hot reload listens on.
func WatchDirs() []string {
	return []string{Dir, filepath.Join(Dir, "scripts")}
}

func read(fsys embed.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fsys.ReadFile(clean)
}

func trimPrefixes(name string, prefixes ...string) string {
	s := filepath.ToSlash(name)
	for _, p := range prefixes {
		s = strings.TrimPrefix(s, p)
	}
	return s
}
