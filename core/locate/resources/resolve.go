package resources

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font/fontregistry"
	"github.com/npillmayer/schuko"
)

// NotFound returns an application error for a missing font file.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// --- Fonts -----------------------------------------------------------------

type pathPlusErr struct {
	path string
	err  error
}

// FontFilePromise is the result of resolving a font file.
type FontFilePromise interface {
	Path() (string, error)                     // blocks until resolved
	Await(ctx context.Context) (string, error) // blocks until resolved or ctx is done
}

type fontFileLoader struct {
	await func(ctx context.Context) (string, error)
}

func (loader fontFileLoader) Path() (string, error) {
	return loader.await(context.Background())
}

func (loader fontFileLoader) Await(ctx context.Context) (string, error) {
	return loader.await(ctx)
}

// ResolveFontFile locates a font file by URL, path or name. conf may be nil;
// it is consulted for the application key and the location of fontconfig.
func ResolveFontFile(name string, conf schuko.Configuration) FontFilePromise {
	ch := make(chan pathPlusErr, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go func(ch chan<- pathPlusErr) {
		defer close(ch)
		result := pathPlusErr{}
		result.path, result.err = resolveFontFile(ctx, name, conf)
		ch <- result
	}(ch)
	return fontFileLoader{
		await: func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				cancel()
				return "", ctx.Err()
			case r := <-ch:
				cancel()
				return r.path, r.err
			}
		},
	}
}

func resolveFontFile(ctx context.Context, name string, conf schuko.Configuration) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", core.Error(core.EINVALID, "font name missing")
	}
	if u, err := url.Parse(name); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return cachedDownload(ctx, u, conf)
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		tracer().Debugf("%s is a font file", name)
		return name, nil
	}
	if fpath, err := findfont.Find(name); err == nil && fpath != "" {
		tracer().Debugf("%s is a system font: %s", name, fpath)
		return fpath, nil
	}
	if conf != nil {
		if fpath := findFontConfigFont(conf, name); fpath != "" {
			tracer().Debugf("%s found by fontconfig: %s", name, fpath)
			return fpath, nil
		}
	}
	return "", NotFound(name)
}

func cachedDownload(ctx context.Context, u *url.URL, conf schuko.Configuration) (string, error) {
	fname := path.Base(u.Path)
	if fname == "" || fname == "/" || fname == "." {
		return "", core.Error(core.EINVALID, "URL does not name a font file: %s", u)
	}
	cachedir, err := CacheDirPath(conf, "fonts")
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "cannot create cache directory")
	}
	fpath := filepath.Join(cachedir, fname)
	if _, err := os.Stat(fpath); err == nil {
		tracer().Infof("font %s found in cache", fname)
		return fpath, nil
	}
	if err = DownloadCachedFile(ctx, fpath, u.String()); err != nil {
		return "", core.WrapError(err, core.EMISSING, "cannot download font %s: %v", u, err)
	}
	return fpath, nil
}

// ListFontFiles lists the font files in platform font directories whose name
// matches a pattern. An empty pattern matches all files.
func ListFontFiles(pattern string) []string {
	var files []string
	for _, fpath := range findfont.List() {
		if pattern == "" || fontregistry.Matches(fontregistry.NormalizeFontname(filepath.Base(fpath)), pattern) {
			files = append(files, fpath)
		}
	}
	sort.Strings(files)
	return files
}
