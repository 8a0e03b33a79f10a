package wallpaper

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/slimroms/slimwallpaper/pkg/sysinfo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOS is a mock implementation of the OS interface.
type MockOS struct {
	mock.Mock
}

func (m *MockOS) getDisplay() (sysinfo.Display, error) {
	args := m.Called()
	return args.Get(0).(sysinfo.Display), args.Error(1)
}

func (m *MockOS) setWallpaper(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// manualExecutor queues tasks until the test runs them, so completion order is
// under the test's control.
type manualExecutor struct {
	tasks   []queuedTask
	stopped bool
}

type queuedTask struct {
	ctx  context.Context
	task Task
}

func (e *manualExecutor) Submit(ctx context.Context, task Task) bool {
	if e.stopped {
		return false
	}
	e.tasks = append(e.tasks, queuedTask{ctx: ctx, task: task})
	return true
}

func (e *manualExecutor) Stop() {
	e.stopped = true
}

// Run runs the i-th submitted task on the calling goroutine.
func (e *manualExecutor) Run(i int) {
	e.tasks[i].task(e.tasks[i].ctx)
}

// RunAll runs every submitted task in submission order, including ones submitted
// while running.
func (e *manualExecutor) RunAll() {
	for i := 0; i < len(e.tasks); i++ {
		e.Run(i)
	}
}

// postQueue holds posted UI callbacks until Drain.
type postQueue struct {
	fns []func()
}

func (q *postQueue) Post(fn func()) {
	q.fns = append(q.fns, fn)
}

func (q *postQueue) Drain() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}

// inlinePost runs callbacks immediately.
func inlinePost(fn func()) { fn() }

type recordedThumb struct {
	index int
	img   image.Image
}

type fakeStrip struct {
	inserts []recordedThumb
}

func (s *fakeStrip) InsertThumbnail(img image.Image, index int) {
	s.inserts = append(s.inserts, recordedThumb{index: index, img: img})
}

type fakePreview struct {
	shown []image.Image
}

func (p *fakePreview) ShowPreview(img image.Image) {
	p.shown = append(p.shown, img)
}

type notification struct {
	title, message string
}

type notifyRecorder struct {
	messages []notification
}

func (n *notifyRecorder) Notify(title, message string) {
	n.messages = append(n.messages, notification{title: title, message: message})
}

func (n *notifyRecorder) Last() string {
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1].message
}

// testPNG returns a width x height PNG whose pixels encode their position.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// testAssets builds a wallpaper file system with one PNG per id.
func testAssets(t *testing.T, sizes map[string][2]int) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{}
	for id, size := range sizes {
		fsys["wallpapers/"+id+".png"] = &fstest.MapFile{Data: testPNG(t, size[0], size[1])}
	}
	return fsys
}
