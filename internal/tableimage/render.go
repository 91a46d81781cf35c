package tableimage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"outage-bot/internal/cache"
	"outage-bot/internal/dates"
	"outage-bot/internal/dtek"
	"outage-bot/internal/schedule"
)

// RenderError wraps a failure in tree construction or rasterization.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer rasterizes schedule tables. The font is fetched once and kept
// for the process lifetime; rendered images go through the injected cache
// keyed by a content hash of the schedule.
type Renderer struct {
	fontURL     string
	fallbackURL string
	httpClient  *http.Client
	images      *cache.Images // may be nil

	mu    sync.Mutex
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewRenderer creates a renderer. images may be nil to disable caching.
func NewRenderer(fontURL, fallbackURL string, images *cache.Images) *Renderer {
	return &Renderer{
		fontURL:     fontURL,
		fallbackURL: fallbackURL,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		images:      images,
		faces:       make(map[float64]font.Face),
	}
}

// Render produces the schedule image for data, or nil when neither local
// rendering nor the static fallback worked; the caller then degrades to a
// text-only reply.
func (r *Renderer) Render(ctx context.Context, data *schedule.Data) []byte {
	img, err := r.render(ctx, data)
	if err == nil {
		return img
	}
	log.Printf("[image] local render failed, trying fallback: %v", err)

	img, err = r.fetchFallback(ctx)
	if err != nil {
		log.Printf("[image] fallback image failed: %v", err)
		return nil
	}
	return img
}

func (r *Renderer) render(ctx context.Context, data *schedule.Data) ([]byte, error) {
	if data == nil || len(data.HoursToday) == 0 {
		return nil, &RenderError{Stage: "build", Err: fmt.Errorf("no schedule data")}
	}

	hasTomorrow := schedule.HasAnyOutage(data.HoursTomorrow)
	key := contentHash(data, hasTomorrow)

	if r.images != nil {
		if img, ok := r.images.Get(ctx, key); ok {
			log.Printf("[image] cache hit: %s", key)
			return img, nil
		}
	}

	var root Node
	var width, height int
	if hasTomorrow {
		root = BuildCombinedTable(
			data.HoursToday, dates.DayMonthFromUnix(data.TodayUnix),
			data.HoursTomorrow, dates.DayMonthFromUnix(data.TomorrowUnix))
		width, height = CombinedWidth, CombinedHeight
	} else {
		root = BuildDayTable(data.HoursToday, dates.DayMonthFromUnix(data.TodayUnix))
		width, height = DayWidth, DayHeight
	}

	img, err := r.rasterize(ctx, root, width, height)
	if err != nil {
		return nil, err
	}

	if r.images != nil {
		r.images.Set(ctx, key, img)
	}
	return img, nil
}

// contentHash derives the cache key from everything that affects pixels:
// the hour grids and the day anchors.
func contentHash(data *schedule.Data, hasTomorrow bool) string {
	payload := struct {
		Today     dtek.HoursData `json:"today"`
		TodayUnix int64          `json:"todayUNIX"`
		Tomorrow  dtek.HoursData `json:"tomorrow,omitempty"`
		TomUnix   int64          `json:"tomorrowUNIX,omitempty"`
	}{Today: data.HoursToday, TodayUnix: data.TodayUnix}
	if hasTomorrow {
		payload.Tomorrow = data.HoursTomorrow
		payload.TomUnix = data.TomorrowUnix
	}

	raw, _ := json.Marshal(payload)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:16]
}

// rasterize walks the node tree onto a gg context and encodes PNG.
func (r *Renderer) rasterize(ctx context.Context, root Node, width, height int) ([]byte, error) {
	if err := r.loadFont(ctx); err != nil {
		return nil, &RenderError{Stage: "font", Err: err}
	}

	dc := gg.NewContext(width, height)
	if err := r.drawNode(dc, root); err != nil {
		return nil, &RenderError{Stage: "draw", Err: err}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, &RenderError{Stage: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawNode(dc *gg.Context, n Node) error {
	switch n.Kind {
	case KindRect:
		dc.SetHexColor(n.Fill)
		if n.Radius > 0 {
			dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, n.Radius)
		} else {
			dc.DrawRectangle(n.X, n.Y, n.W, n.H)
		}
		dc.Fill()

	case KindSplit:
		dc.DrawRoundedRectangle(n.X, n.Y, n.W, n.H, n.Radius)
		dc.Clip()
		dc.SetHexColor(n.TopFill)
		dc.DrawRectangle(n.X, n.Y, n.W, n.H/2)
		dc.Fill()
		dc.SetHexColor(n.BottomFill)
		dc.DrawRectangle(n.X, n.Y+n.H/2, n.W, n.H/2)
		dc.Fill()
		dc.ResetClip()

	case KindText:
		face, err := r.face(n.Size)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetHexColor(n.Color)
		dc.DrawStringAnchored(n.Text, n.CX, n.CY, 0.5, 0.5)

	default:
		return fmt.Errorf("unknown node kind %d", n.Kind)
	}

	for _, child := range n.Children {
		if err := r.drawNode(dc, child); err != nil {
			return err
		}
	}
	return nil
}

// loadFont fetches and parses the TTF once. Concurrent callers all compute
// the same value, so holding the lock across the fetch is fine.
func (r *Renderer) loadFont(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.font != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.fontURL, nil)
	if err != nil {
		return fmt.Errorf("build font request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", r.fontURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", r.fontURL, resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("read font: %w", err)
	}

	parsed, err := truetype.Parse(buf.Bytes())
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	r.font = parsed
	return nil
}

// face returns a cached font.Face for the given pixel size.
func (r *Renderer) face(size float64) (font.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.font == nil {
		return nil, fmt.Errorf("font not loaded")
	}
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f := truetype.NewFace(r.font, &truetype.Options{Size: size})
	r.faces[size] = f
	return f, nil
}

// SetFont injects parsed font bytes directly. Tests use this to avoid the
// network fetch.
func (r *Renderer) SetFont(ttf []byte) error {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.font = parsed
	r.faces = make(map[float64]font.Face)
	return nil
}

// fetchFallback downloads the pre-rendered static schedule image.
func (r *Renderer) fetchFallback(ctx context.Context) ([]byte, error) {
	url := fmt.Sprintf("%s?v=%d", r.fallbackURL, time.Now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", r.fallbackURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", r.fallbackURL, resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return buf.Bytes(), nil
}
