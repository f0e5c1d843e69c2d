package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chromedpStub struct {
	allocatorOpts int
	runs          int
	runErr        error
	png           []byte
	shotErr       error
}

func stubChromedp(t *testing.T, stub *chromedpStub) {
	t.Helper()

	origAllocator, origContext, origRunner, origShot := chromedpExecAllocator, chromedpContext, chromedpRunner, captureScreenshot
	t.Cleanup(func() {
		chromedpExecAllocator = origAllocator
		chromedpContext = origContext
		chromedpRunner = origRunner
		captureScreenshot = origShot
	})

	chromedpExecAllocator = func(parent context.Context, opts ...chromedp.ExecAllocatorOption) (context.Context, context.CancelFunc) {
		stub.allocatorOpts = len(opts)
		return context.WithCancel(parent)
	}
	chromedpContext = func(parent context.Context, _ ...chromedp.ContextOption) (context.Context, context.CancelFunc) {
		return context.WithCancel(parent)
	}
	chromedpRunner = func(_ context.Context, _ ...chromedp.Action) error {
		stub.runs++
		return stub.runErr
	}
	captureScreenshot = func(context.Context) ([]byte, error) {
		return stub.png, stub.shotErr
	}
}

func TestCaptureReturnsScreenshot(t *testing.T) {
	stub := &chromedpStub{png: []byte("\x89PNG")}
	stubChromedp(t, stub)

	got, err := Capture(context.Background(), []byte("<html><body>shelf</body></html>"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), got)
	assert.Equal(t, 1, stub.runs)
	assert.Positive(t, stub.allocatorOpts)
}

func TestCaptureRejectsEmptyPage(t *testing.T) {
	stub := &chromedpStub{}
	stubChromedp(t, stub)

	_, err := Capture(context.Background(), nil, DefaultOptions())
	require.Error(t, err)
	assert.Zero(t, stub.runs)
}

func TestCaptureLoadFailure(t *testing.T) {
	stub := &chromedpStub{runErr: errors.New("no chrome")}
	stubChromedp(t, stub)

	_, err := Capture(context.Background(), []byte("<p>x</p>"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load page")
}

func TestCaptureScreenshotFailure(t *testing.T) {
	stub := &chromedpStub{shotErr: errors.New("crashed")}
	stubChromedp(t, stub)

	_, err := Capture(context.Background(), []byte("<p>x</p>"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to capture screenshot")
}

func TestCaptureEmptyScreenshot(t *testing.T) {
	stub := &chromedpStub{}
	stubChromedp(t, stub)

	_, err := Capture(context.Background(), []byte("<p>x</p>"), Options{})
	require.Error(t, err)
}

func TestOptionsWithDefaults(t *testing.T) {
	got := Options{Width: 640}.withDefaults()
	assert.Equal(t, int64(640), got.Width)
	assert.Equal(t, int64(DefaultHeight), got.Height)
	assert.Equal(t, 30*time.Second, got.Timeout)
}

func TestLoadPageTasks(t *testing.T) {
	tasks := loadPage("<p>x</p>", DefaultOptions())
	assert.Len(t, tasks, 4)
}
