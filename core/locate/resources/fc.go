package resources

import (
	"bufio"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font/fontregistry"
	"github.com/npillmayer/schuko"
)

// fcEntry is a font file listed by fontconfig.
type fcEntry struct {
	Family string
	Style  string
	Path   string
}

// key returns the normalized registry key for an entry, e.g. "dejavu_sans_bold".
func (e fcEntry) key() string {
	return fontregistry.NormalizeFontname(e.Family + " " + e.Style)
}

func findFontConfigBinary(conf schuko.Configuration) (path string, err error) {
	path = conf.GetString("fontconfig")
	if path == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		err = errors.New("fontconfig not configured")
	}
	return
}

// cacheFontConfigList writes the output of fc-list to the user's config
// directory, if it does not exist yet or if update is set.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, bool) {
	uconfdir, err := os.UserConfigDir()
	if err != nil {
		tracer().Errorf("user config directory not set")
		return "", false
	}
	dir := filepath.Join(uconfdir, appKey(conf))
	fcListFilename := filepath.Join(dir, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil && !update {
		return fcListFilename, true
	}
	if err = os.MkdirAll(dir, 0755); err != nil {
		err = core.WrapError(err, core.EINVALID,
			"user configuration path cannot be created: %s", dir)
		core.UserError(err)
		return "", false
	}
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(fcpath) {
		err = core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
		core.UserError(err)
		return "", false
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
		core.UserError(err)
		return "", false
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		fccmd := exec.Command(fcpath)
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
		fontlistFile.Close()
	}
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
		core.UserError(err)
		return "", false
	}
	return fcListFilename, true
}

func loadFontConfigList(conf schuko.Configuration) ([]fcEntry, bool) {
	fclist, ok := cacheFontConfigList(conf, false)
	if !ok {
		return nil, false
	}
	fc, err := os.Open(fclist)
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig font list cannot be opened: %s", fclist)
		core.UserError(err)
		return nil, false
	}
	defer fc.Close()
	entries, err := parseFontConfigList(fc)
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"encountered a problem during reading of fontconfig font list: %s", fclist)
		core.UserError(err)
		return entries, false
	}
	return entries, true
}

// parseFontConfigList reads lines of fc-list's default output format:
//
//	/usr/share/fonts/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
//
// Font collections (.ttc) are skipped.
func parseFontConfigList(r io.Reader) ([]fcEntry, error) {
	var entries []fcEntry
	scanner := bufio.NewScanner(r)
	ttc := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 2 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		if strings.HasSuffix(strings.ToLower(fontpath), ".ttc") {
			ttc++
			continue
		}
		family := firstOf(fields[1])
		family = strings.TrimPrefix(family, ".")
		style := "Regular"
		if len(fields) > 2 {
			if s := firstOf(strings.TrimPrefix(strings.TrimSpace(fields[2]), "style=")); s != "" {
				style = s
			}
		}
		entries = append(entries, fcEntry{Family: family, Style: style, Path: fontpath})
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not supported", ttc)
	}
	return entries, scanner.Err()
}

// firstOf returns the first entry of a comma separated list.
func firstOf(list string) string {
	if i := strings.IndexByte(list, ','); i >= 0 {
		list = list[:i]
	}
	return strings.TrimSpace(list)
}

// matchFontConfig selects the best entry for a pattern: an exact match of
// family and style, then the regular style of a family, then any entry
// containing the pattern.
func matchFontConfig(entries []fcEntry, pattern string) (fcEntry, bool) {
	p := fontregistry.NormalizeFontname(pattern)
	if p == "" {
		return fcEntry{}, false
	}
	for _, e := range entries {
		if e.key() == p {
			return e, true
		}
	}
	for _, e := range entries {
		if fontregistry.NormalizeFontname(e.Family) == p && strings.EqualFold(e.Style, "Regular") {
			return e, true
		}
	}
	for _, e := range entries {
		if fontregistry.Matches(e.key(), pattern) {
			return e, true
		}
	}
	return fcEntry{}, false
}

var loadFontConfigListTask sync.Once
var loadedFontConfigListOK bool
var fontConfigEntries []fcEntry

// findFontConfigFont searches for a locally installed font using the fontconfig
// system (https://www.freedesktop.org/wiki/Software/fontconfig/).
// fontconfig has to be configured by setting the absolute path of the 'fc-list'
// binary as configuration key 'fontconfig'.
//
// The output of fc-list is copied to the user's config directory once.
// Subsequent calls will use the cached entries to search for a font.
//
// We call the binary instead of using the C library because of possible version
// issues. If fontconfig is not configured, findFontConfigFont will silently
// return an empty path.
func findFontConfigFont(conf schuko.Configuration, pattern string) string {
	if !conf.IsSet("fontconfig") {
		return ""
	}
	loadFontConfigListTask.Do(func() {
		fontConfigEntries, loadedFontConfigListOK = loadFontConfigList(conf)
		tracer().Infof("loaded fontconfig list with %d entries", len(fontConfigEntries))
	})
	if !loadedFontConfigListOK {
		return ""
	}
	if e, ok := matchFontConfig(fontConfigEntries, pattern); ok {
		return e.Path
	}
	return ""
}
