package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	backoffv4 "github.com/cenkalti/backoff/v4"
	"github.com/cenkalti/backoff/v5"
	"github.com/fogleman/fauxgl"
	"github.com/fsnotify/fsnotify"
	"github.com/subchen/go-trylock/v2"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

//-----------------------------------------------------------------------------
// CONFIGURATION
//-----------------------------------------------------------------------------

// OptTuningFile loads the material from a JSON file ({"color": "#rrggbb", "metalness": 0.5,
// "roughness": 0.5}) and reloads it every time the file changes while the renderer runs.
func OptTuningFile(path string) Option {
	return func(r *Renderer) {
		r.tuningFile = path
	}
}

// OptMaterial sets the initial material (overridden by OptTuningFile once loaded).
func OptMaterial(m Material) Option {
	return func(r *Renderer) {
		if normalized, err := m.Normalize(); err == nil {
			r.tuning.set(normalized)
		} else {
			log.Println("[OrbitUI] Ignoring material:", err)
		}
	}
}

//-----------------------------------------------------------------------------
// MATERIAL
//-----------------------------------------------------------------------------

// ErrInvalidMaterial is returned for materials that can't be displayed.
var ErrInvalidMaterial = errors.New("invalid material")

// tuningSteps is the number of steps (0.001 each) of the metalness and roughness parameters.
const tuningSteps = 1000

// Material is the shared surface of all bodies.
type Material struct {
	Color     string  `json:"color"`     // #rrggbb
	Metalness float64 `json:"metalness"` // [0, 1]
	Roughness float64 `json:"roughness"` // [0, 1]
}

// DefaultMaterial is the blue metallic surface used when nothing else is configured.
var DefaultMaterial = Material{Color: "#3c94d7", Metalness: 0.86, Roughness: 0.37}

// Normalize validates the color and clamps metalness and roughness to [0, 1] in 0.001 steps.
func (m Material) Normalize() (Material, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(m.Color), "#")
	if len(hex) != 6 {
		return m, fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidMaterial, m.Color)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return m, fmt.Errorf("%w: color %q: %v", ErrInvalidMaterial, m.Color, err)
	}
	if math.IsNaN(m.Metalness) || math.IsNaN(m.Roughness) {
		return m, fmt.Errorf("%w: NaN parameter", ErrInvalidMaterial)
	}
	m.Color = "#" + strings.ToLower(hex)
	m.Metalness = quantize(m.Metalness)
	m.Roughness = quantize(m.Roughness)
	return m, nil
}

func quantize(v float64) float64 {
	return math.Round(math.Max(0, math.Min(1, v))*tuningSteps) / tuningSteps
}

// phong approximates the metallic/rough surface with the colors of a Phong shader.
func (m Material) phong(lightIntensity float64) (object, diffuse, specular fauxgl.Color, power float64) {
	object = fauxgl.HexColor(m.Color)
	diffuse = fauxgl.Gray((1 - 0.5*m.Metalness) * lightIntensity / defaultLightIntensity)
	specular = fauxgl.Gray(m.Metalness)
	power = math.Max(1, 128*(1-m.Roughness)*(1-m.Roughness))
	return
}

//-----------------------------------------------------------------------------
// LIVE TUNING
//-----------------------------------------------------------------------------

// rwTryLocker is the part of the trylock API used here.
type rwTryLocker interface {
	Lock()
	Unlock()
	RTryLock(ctx context.Context) bool
	RUnlock()
}

// tuning holds the material, which may be replaced by the file watcher at any time.
type tuning struct {
	lock     rwTryLocker
	material Material
	cached   Material // Last material read by the frame thread
}

func newTuning(m Material) *tuning {
	return &tuning{lock: trylock.New(), material: m, cached: m}
}

func (t *tuning) set(m Material) {
	t.lock.Lock()
	t.material = m
	t.lock.Unlock()
}

// current returns the latest material without stalling a frame: if the watcher is swapping it,
// the previous one is used.
func (t *tuning) current() Material {
	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancelFunc()
	if t.lock.RTryLock(ctx) {
		t.cached = t.material
		t.lock.RUnlock()
	}
	return t.cached
}

// loadMaterial reads a tuning file, retrying while it is missing or partially written.
func loadMaterial(ctx context.Context, path string) (Material, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	return backoff.Retry(ctx, func() (Material, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Material{}, err // Editors may be replacing the file
			}
			return Material{}, backoff.Permanent(err)
		}
		m := DefaultMaterial
		if err = json.Unmarshal(data, &m); err != nil {
			return Material{}, err // Probably half-written
		}
		m, err = m.Normalize()
		if err != nil {
			return Material{}, backoff.Permanent(err)
		}
		return m, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(time.Second))
}

// watch loads the tuning file and keeps reloading it in the background until ctx is done.
func (t *tuning) watch(ctx context.Context, path string) error {
	m, err := loadMaterial(ctx, path)
	if err != nil {
		return fmt.Errorf("loading tuning file %s: %w", path, err)
	}
	t.set(m)
	w, err := newFsWatcher()
	if err != nil {
		return err
	}
	if err = w.Add(path); err != nil {
		_ = w.Close()
		return err
	}
	log.Println("[OrbitUI] Watching", path, "for material changes")
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					// The watch is gone with the old file: wait for the new one (atomic saves)
					err := backoffv4.Retry(func() error { return w.Add(path) },
						backoffv4.WithContext(backoffv4.WithMaxRetries(backoffv4.NewExponentialBackOff(), 8), ctx))
					if err != nil {
						log.Println("[OrbitUI] Stopped watching", path+":", err)
						return
					}
				} else if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				m, err := loadMaterial(ctx, path)
				if err != nil {
					log.Println("[OrbitUI] Keeping previous material:", err)
					continue
				}
				t.set(m)
				log.Printf("[OrbitUI] Material reloaded: %+v", m)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Println("[OrbitUI] Watcher error:", err)
			}
		}
	}()
	return nil
}
