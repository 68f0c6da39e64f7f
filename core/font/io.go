package font

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/npillmayer/fontmacros/core"
	"gopkg.in/yaml.v3"
)

// Load reads a font document from a YAML file.
func Load(path string) (*Font, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open font document %s", path)
	}
	defer fh.Close()
	f, err := Decode(fh)
	if err != nil {
		return nil, err
	}
	f.Filepath = path
	tracer().Infof("loaded font %s from %s: %d masters, %d glyphs", f.Family, path,
		len(f.Masters), len(f.Glyphs))
	return f, nil
}

// Decode reads a font document in YAML format from r and validates it.
func Decode(r io.Reader) (*Font, error) {
	f := &Font{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot decode font document: %v", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.link()
	return f, nil
}

// Validate checks the structural integrity of a document: there must be at
// least one master, glyph names must be valid and unique, and every layer has
// to refer to an existing master.
func (f *Font) Validate() error {
	if len(f.Masters) == 0 {
		return core.Error(core.EINVALID, "font %s has no masters", f.Family)
	}
	if f.UPM <= 0 {
		return core.Error(core.EINVALID, "font %s has invalid units per em: %d", f.Family, f.UPM)
	}
	masters := make(map[string]bool, len(f.Masters))
	for _, m := range f.Masters {
		if masters[m.ID] {
			return core.Error(core.EINVALID, "duplicate master id %q", m.ID)
		}
		masters[m.ID] = true
	}
	names := make(map[string]bool, len(f.Glyphs))
	for _, g := range f.Glyphs {
		if err := ValidateGlyphName(g.Name); err != nil {
			return err
		}
		if names[g.Name] {
			return core.Error(core.EINVALID, "duplicate glyph name %q", g.Name)
		}
		names[g.Name] = true
		for _, l := range g.Layers {
			if !masters[l.Master] {
				return core.Error(core.EINVALID, "glyph %s has layer for unknown master %q", g.Name, l.Master)
			}
		}
	}
	return nil
}

// Encode writes a font document in YAML format to w.
func (f *Font) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding font %s: %w", f.Family, err)
	}
	return enc.Close()
}

// Save writes a font document to a YAML file. If path is empty, the file the
// document has been loaded from is overwritten.
func (f *Font) Save(path string) error {
	if path == "" {
		path = f.Filepath
	}
	if path == "" {
		return core.Error(core.EINVALID, "font %s has no file path to save to", f.Family)
	}
	var buf bytes.Buffer
	if err := f.Encode(&buf); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fontmacros-*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	f.Filepath = path
	tracer().Infof("saved font %s to %s", f.Family, path)
	return nil
}
