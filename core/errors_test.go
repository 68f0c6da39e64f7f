package core

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.core")
	defer teardown()
	//
	base := errors.New("no points")
	err := WrapError(base, ENOSELECTION, "nothing selected")
	assert.Equal(t, ENOSELECTION, Code(err))
	assert.Equal(t, "nothing selected", UserMessage(err))
	assert.True(t, errors.Is(err, base), "expected base error to be in chain")
	//
	wrapped := fmt.Errorf("align: %w", err)
	assert.Equal(t, ENOSELECTION, Code(wrapped), "code should survive %%w wrapping")
	assert.True(t, IsRecoverable(wrapped))
	//
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("boom")))
	assert.False(t, IsRecoverable(errors.New("boom")))
	assert.Equal(t, "internal error", UserMessage(errors.New("boom")))
}

func TestErrorWithNilBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.core")
	defer teardown()
	//
	err := ErrorWithCode(nil, EMISSING)
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "not found", UserMessage(err))
	err = Error(EINVALID, "glyph name %q is invalid", "1abc")
	assert.Equal(t, `glyph name "1abc" is invalid`, UserMessage(err))
}

func TestFprintUserError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontmacros.core")
	defer teardown()
	//
	var buf bytes.Buffer
	FprintUserError(&buf, Error(EUNCHANGED, "glyph name unchanged"))
	assert.Equal(t, "[125] glyph name unchanged\n", buf.String())
	buf.Reset()
	FprintUserError(&buf, errors.New("plain"))
	assert.Equal(t, "Error: plain\n", buf.String())
}
