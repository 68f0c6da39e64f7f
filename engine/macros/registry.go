package macros

import (
	"sort"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/engine/edit"
)

// Macro is a named editing operation.
type Macro struct {
	Title    string               // menu title, unique within a registry
	Category string               // menu section
	Help     string               // one line of help text, may mention arguments
	NoFont   bool                 // macro may run without an open font
	Run      func(*Context) error // the operation
}

func (m *Macro) String() string {
	return m.Category + " > " + m.Title
}

// Registry is a catalogue of macros, indexed by lowercased title.
type Registry struct {
	sync.RWMutex
	titles *trie.Trie
	macros []*Macro
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{titles: trie.New()}
}

// Register adds macros to a registry. Registering a title twice is an error.
func (r *Registry) Register(macros ...*Macro) error {
	r.Lock()
	defer r.Unlock()
	for _, m := range macros {
		if m.Title == "" || m.Run == nil {
			return core.Error(core.EINVALID, "macro must have title and operation")
		}
		key := titleKey(m.Title)
		if _, exists := r.titles.Find(key); exists {
			return core.Error(core.EINVALID, "macro %q already registered", m.Title)
		}
		r.titles.Add(key, m)
		r.macros = append(r.macros, m)
		tracer().Debugf("registered macro %s", m)
	}
	return nil
}

// Lookup finds a macro by title. Any prefix of a title which is unique within
// the registry will do. Case does not matter.
func (r *Registry) Lookup(name string) (*Macro, error) {
	key := titleKey(name)
	if key == "" {
		return nil, core.Error(core.EINVALID, "macro name missing")
	}
	r.RLock()
	defer r.RUnlock()
	if node, ok := r.titles.Find(key); ok {
		return node.Meta().(*Macro), nil
	}
	keys := r.titles.PrefixSearch(key)
	switch len(keys) {
	case 0:
		return nil, core.Error(core.EMISSING, "no macro matches %q", name)
	case 1:
		node, _ := r.titles.Find(keys[0])
		return node.Meta().(*Macro), nil
	}
	sort.Strings(keys)
	if len(keys) > 4 {
		keys = append(keys[:4], "…")
	}
	return nil, core.Error(core.EINVALID, "%q is ambiguous: %s", name, strings.Join(keys, ", "))
}

// Complete returns the titles of all macros starting with prefix, sorted.
func (r *Registry) Complete(prefix string) []string {
	r.RLock()
	defer r.RUnlock()
	var titles []string
	if titleKey(prefix) == "" {
		for _, m := range r.macros {
			titles = append(titles, m.Title)
		}
		sort.Strings(titles)
		return titles
	}
	for _, key := range r.titles.PrefixSearch(titleKey(prefix)) {
		if node, ok := r.titles.Find(key); ok {
			titles = append(titles, node.Meta().(*Macro).Title)
		}
	}
	sort.Strings(titles)
	return titles
}

// Macros returns all macros, sorted by category and title.
func (r *Registry) Macros() []*Macro {
	r.RLock()
	defer r.RUnlock()
	ms := append([]*Macro(nil), r.macros...)
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Category != ms[j].Category {
			return ms[i].Category < ms[j].Category
		}
		return ms[i].Title < ms[j].Title
	})
	return ms
}

// Run looks up a macro by name and runs it on the session's font.
// Recoverable errors are reported on the session's console and nil is returned.
func (r *Registry) Run(sess *edit.Session, name string, args ...string) error {
	m, err := r.Lookup(name)
	if err != nil {
		return sess.Report(err)
	}
	return r.RunMacro(sess, m, args...)
}

// RunMacro runs macro m on the session's font.
func (r *Registry) RunMacro(sess *edit.Session, m *Macro, args ...string) error {
	ctx, err := NewContext(sess, args...)
	if err != nil && !m.NoFont {
		return sess.Report(err)
	}
	tracer().Infof("run macro %s %v", m, args)
	return sess.Report(m.Run(ctx))
}

func titleKey(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

var (
	standard     *Registry
	standardOnce sync.Once
)

// Standard returns the registry of all macros of this package.
func Standard() *Registry {
	standardOnce.Do(func() {
		standard = NewRegistry()
		for _, group := range [][]*Macro{
			alignMacros(),
			deleteMacros(),
			nameMacros(),
			tabMacros(),
			viewMacros(),
		} {
			if err := standard.Register(group...); err != nil {
				panic(err)
			}
		}
	})
	return standard
}
