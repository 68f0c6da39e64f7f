package resources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko"
)

// DefaultAppKey is used for per-user directories if the configuration does
// not set 'app-key'.
const DefaultAppKey = "fontmacros"

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory). An incomplete download does not leave a file behind.
func DownloadCachedFile(ctx context.Context, fpath string, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %s", url, resp.Status)
	}
	tmp := fpath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	tracer().Infof("downloaded %s to %s", url, fpath)
	return os.Rename(tmp, fpath)
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appKey(conf), subs)
	tracer().Infof("caching in %s", cachedir)
	if _, err = os.Stat(cachedir); os.IsNotExist(err) {
		if err = os.MkdirAll(cachedir, 0755); err != nil {
			return "", err
		}
	}
	return cachedir, nil
}

func appKey(conf schuko.Configuration) string {
	if conf != nil {
		if key := conf.GetString("app-key"); key != "" {
			return key
		}
	}
	return DefaultAppKey
}
