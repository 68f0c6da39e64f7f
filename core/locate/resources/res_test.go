package resources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExistingFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.resources")
	defer teardown()
	//
	fpath := filepath.Join("..", "..", "font", "testdata", "demo.yaml")
	p, err := ResolveFontFile(fpath, nil).Path()
	require.NoError(t, err)
	assert.Equal(t, fpath, p)
}

func TestResolveMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.resources")
	defer teardown()
	//
	_, err := ResolveFontFile("no-such-font-4711.otf", testconfig.Conf{}).Path()
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = ResolveFontFile("  ", nil).Path()
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestResolveDownloadsOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.resources")
	defer teardown()
	//
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fonts/Test-Regular.ttf" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("not really a font"))
	}))
	defer srv.Close()
	conf := testconfig.Conf{"app-key": "fontmacros-test"}
	for i := 0; i < 2; i++ {
		p, err := ResolveFontFile(srv.URL+"/fonts/Test-Regular.ttf", conf).Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Test-Regular.ttf", filepath.Base(p))
		assert.Contains(t, p, "fontmacros-test")
		content, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "not really a font", string(content))
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second resolve should hit the cache")
	_, err := ResolveFontFile(srv.URL+"/fonts/Missing.ttf", conf).Path()
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = os.Stat(filepath.Join(os.Getenv("XDG_CACHE_HOME"), "fontmacros-test", "fonts", "Missing.ttf"))
	assert.True(t, os.IsNotExist(err), "failed download must not leave a file")
}

func TestAwaitCancel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.resources")
	defer teardown()
	//
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := ResolveFontFile(srv.URL+"/slow.ttf", nil).Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCacheDirPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.resources")
	defer teardown()
	//
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	dir, err := CacheDirPath(nil, "fonts", "sub")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, DefaultAppKey, "fonts", "sub"), dir)
	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

const fcList = `
/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf: DejaVu Sans:style=Bold
/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf: DejaVu Sans:style=Book
/usr/share/fonts/truetype/noto/NotoSerif-Regular.ttf: Noto Serif,Noto Serif Regular:style=Regular,Normal
/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc: Noto Sans CJK JP:style=Regular
/usr/share/fonts/X11/misc/cursor.pcf.gz: .Cursor
`

func TestFontConfigList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.resources")
	defer teardown()
	//
	entries, err := parseFontConfigList(strings.NewReader(fcList))
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, fcEntry{Family: "Noto Serif", Style: "Regular",
		Path: "/usr/share/fonts/truetype/noto/NotoSerif-Regular.ttf"}, entries[2])
	assert.Equal(t, fcEntry{Family: "Cursor", Style: "Regular",
		Path: "/usr/share/fonts/X11/misc/cursor.pcf.gz"}, entries[3])
	for pattern, want := range map[string]string{
		"DejaVu Sans Bold": "DejaVuSans-Bold.ttf",
		"dejavu sans book": "DejaVuSans.ttf",
		"Noto Serif":       "NotoSerif-Regular.ttf",
		"dejavu":           "DejaVuSans-Bold.ttf",
	} {
		e, ok := matchFontConfig(entries, pattern)
		if assert.True(t, ok, pattern) {
			assert.Equal(t, want, filepath.Base(e.Path), pattern)
		}
	}
	_, ok := matchFontConfig(entries, "Helvetica")
	assert.False(t, ok)
}
