package fontregistry

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding the font documents currently open in an
// editing session.
type Registry struct {
	sync.Mutex
	fonts map[string]*font.Font
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts: make(map[string]*font.Font),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet and
// returns the key it is stored under.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden and
// the key will be returned together with an error.
func (fr *Registry) StoreFont(f *font.Font) (string, error) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return "", core.Error(core.EINVALID, "cannot store null font")
	}
	name := f.Family
	if name == "" {
		name = path.Base(f.Filepath)
	}
	key := NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[key]; ok {
		tracer().Infof("registry already holds font %s", key)
		return key, core.Error(core.EINVALID, "a font named %s is already open", key)
	}
	tracer().Debugf("registry stores font %s as %s", f.Family, key)
	fr.fonts[key] = f
	return key, nil
}

// Lookup returns the font stored under a name. The name is normalized before
// lookup. If no font matches exactly, a unique font containing the pattern
// is returned.
func (fr *Registry) Lookup(name string) (*font.Font, error) {
	key := NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if f, ok := fr.fonts[key]; ok {
		return f, nil
	}
	var candidates []string
	for k := range fr.fonts {
		if Matches(k, name) {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 1 {
		tracer().Debugf("registry matched %s to font %s", name, candidates[0])
		return fr.fonts[candidates[0]], nil
	}
	if len(candidates) > 1 {
		sort.Strings(candidates)
		return nil, core.Error(core.EINVALID, "font name %q is ambiguous: %s", name,
			strings.Join(candidates, ", "))
	}
	tracer().Infof("registry does not contain font %s", key)
	return nil, core.Error(core.EMISSING, "font %s is not open", name)
}

// Remove closes a font, i.e. removes it from the registry.
func (fr *Registry) Remove(name string) bool {
	key := NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[key]; !ok {
		return false
	}
	delete(fr.fonts, key)
	return true
}

// List returns the keys of all registered fonts, sorted.
func (fr *Registry) List() []string {
	fr.Lock()
	defer fr.Unlock()
	keys := make([]string, 0, len(fr.fonts))
	for k := range fr.fonts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LogFontList is a helper function to dump the list of open fonts
// to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- open fonts ---")
	for _, k := range fr.List() {
		fr.Lock()
		f := fr.fonts[k]
		fr.Unlock()
		tracer().Infof("font [%s] = %v (%d glyphs)", k, f.Family, len(f.Glyphs))
	}
	tracer().Infof("------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname creates a registry key from a font's name or file name.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}

// Matches returns true if a registry key contains a pattern. Pattern is
// normalized before matching.
func Matches(key, pattern string) bool {
	p := NormalizeFontname(pattern)
	if p == "" {
		return false
	}
	return strings.Contains(key, p)
}
