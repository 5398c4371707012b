package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/trendscope/internal/model"
)

type fakePredictor struct {
	predictFn func(ctx context.Context, req model.PredictionRequest) (*model.PredictionResponse, error)
	healthFn  func(ctx context.Context) error
	requests  []model.PredictionRequest
	mu        sync.Mutex
	health    int
}

func (f *fakePredictor) Predict(ctx context.Context, req model.PredictionRequest) (*model.PredictionResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	fn := f.predictFn
	f.mu.Unlock()

	if fn == nil {
		return upResponse(), nil
	}
	return fn(ctx, req)
}

func (f *fakePredictor) Health(ctx context.Context) error {
	f.mu.Lock()
	f.health++
	fn := f.healthFn
	f.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (f *fakePredictor) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeDecoder struct {
	decodeFn func(ctx context.Context, img model.SelectedImage) (model.Preview, error)
}

func (f *fakeDecoder) Decode(ctx context.Context, img model.SelectedImage) (model.Preview, error) {
	if f.decodeFn != nil {
		return f.decodeFn(ctx, img)
	}
	return model.Preview{DataURL: "data:" + img.ContentType + ";base64,AAAA", Format: "png", Width: 4, Height: 3}, nil
}

type recordingSurface struct {
	renders       []Snapshot
	notifications []model.Notification
	mu            sync.Mutex
	scrolls       int
}

func (s *recordingSurface) Render(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders = append(s.renders, snap)
}

func (s *recordingSurface) Notify(n model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *recordingSurface) ScrollToResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrolls++
}

func (s *recordingSurface) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, n.Message)
	}
	return out
}

func (s *recordingSurface) lastRender() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.renders) == 0 {
		return Snapshot{}, false
	}
	return s.renders[len(s.renders)-1], true
}

func (s *recordingSurface) scrollCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrolls
}

var errDecode = errors.New("corrupt image")

func pngImage() model.SelectedImage {
	return model.SelectedImage{
		Name:        "chart.png",
		ContentType: model.ContentTypePNG,
		Data:        []byte("png"),
		Size:        1024,
	}
}

func validForm() model.FormValues {
	return model.FormValues{YMin: "100", YMax: "200", NPoints: "300", RiskProfile: "moderate", Horizon: "1d"}
}

func upResponse() *model.PredictionResponse {
	idx := 2
	return &model.PredictionResponse{
		ClassIndex:     &idx,
		Trend:          model.TrendUp,
		ChatbotMessage: "The chart shows an **upward** trend.",
		Probabilities:  model.Probabilities{Down: 0.1, Sideways: 0.2, Up: 0.7},
		Meta: model.PredictionMeta{
			FileName:       "chart.png",
			SeriesLength:   300,
			UsedWindowSize: 64,
		},
	}
}
