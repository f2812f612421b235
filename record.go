package ui

import (
	"context"
	"fmt"
	"github.com/barkimedes/go-deepcopy"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
)

// RecordConfig describes a scripted headless animation.
type RecordConfig struct {
	Frames        int
	Delta         float64 // Seconds per frame (1/60 if not positive)
	Width, Height int     // Window size (pixels)
	// Wheel holds the browser-style wheel deltas applied before the tick of a frame.
	Wheel map[int]float64
	// Cursor holds the pointer positions (window pixels) applied before the tick of a frame.
	Cursor map[int][2]float64
}

// FrameSink receives rendered frames. WriteFrame is called concurrently, frames may arrive out of order.
type FrameSink interface {
	WriteFrame(index int, img image.Image) error
}

// DirSink writes each frame to a numbered file inside a directory.
type DirSink struct {
	dir, format string
}

// NewDirSink creates dir if needed. Supported formats are "png" (default), "bmp" and "tiff".
func NewDirSink(dir, format string) (*DirSink, error) {
	switch format {
	case "":
		format = "png"
	case "png", "bmp", "tiff":
	default:
		return nil, fmt.Errorf("unsupported frame format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirSink{dir: dir, format: format}, nil
}

// WriteFrame implements FrameSink.
func (d *DirSink) WriteFrame(index int, img image.Image) (err error) {
	f, err := os.Create(filepath.Join(d.dir, fmt.Sprintf("frame_%05d.%s", index, d.format)))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return encodeImage(f, img, d.format)
}

func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(w, img)
	}
}

// Record drives the animation with a fixed time step and scripted input, handing every rendered
// frame to sink. It stops early (returning nil) if the renderer is stopped. The script is copied
// when Record starts, so the caller (or the sink) may modify it while frames are recorded.
func (r *Renderer) Record(ctx context.Context, cfg RecordConfig, sink FrameSink) error {
	cfg = deepcopy.MustAnything(cfg).(RecordConfig)
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: recording size %dx%d", ErrNoRenderTarget, cfg.Width, cfg.Height)
	}
	if cfg.Delta <= 0 {
		cfg.Delta = 1. / 60
	}
	r.Resize(cfg.Width, cfg.Height, 1)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	jobs := make(chan *frameJob, runtime.NumCPU())
	encodeErrs := make(chan error, 1)
	go func() {
		encodeErrs <- encodeFrames(ctx, cancel, jobs, sink)
	}()

	var renderErr error
	recorded := 0
frameLoop:
	for i := 0; i < cfg.Frames; i++ {
		if deltaY, ok := cfg.Wheel[i]; ok {
			r.Wheel(deltaY)
		}
		if pos, ok := cfg.Cursor[i]; ok {
			r.PointerMove(pos[0], pos[1])
		}
		if err := r.Frame(cfg.Delta); err != nil {
			break // Stopped
		}
		w, h := r.viewport.SurfaceSize()
		img, err := r.scene.render(nil, r.controller.Snapshot(), r.viewport.Projection(), w, h,
			r.tuning.current(), r.colorMode)
		if err != nil {
			renderErr = err
			break
		}
		select {
		case <-ctx.Done():
			break frameLoop
		case jobs <- &frameJob{index: i, img: img}:
			recorded++
		}
	}
	close(jobs)
	encodeErr := <-encodeErrs

	switch {
	case renderErr != nil:
		return renderErr
	case encodeErr != nil:
		return fmt.Errorf("writing frames: %w", encodeErr)
	case ctx.Err() != nil:
		return context.Cause(ctx)
	}
	log.Println("[OrbitUI] Recorded", recorded, "frames")
	return nil
}
