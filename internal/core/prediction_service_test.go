package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"breedid-backend/internal/classifier"
	"breedid-backend/internal/models"
	"breedid-backend/internal/store"
)

type stubScorer struct {
	healthErr    error
	result       *classifier.PredictResult
	predictErr   error
	predictCalls int
	breeds       []string
	info         *classifier.BreedInfo
	lookupErr    error
}

func (s *stubScorer) Health(_ context.Context) error { return s.healthErr }

func (s *stubScorer) Predict(_ context.Context, _, _ string, _ io.Reader) (*classifier.PredictResult, error) {
	s.predictCalls++
	return s.result, s.predictErr
}

func (s *stubScorer) Breeds(_ context.Context) ([]string, error) { return s.breeds, s.lookupErr }

func (s *stubScorer) BreedInfoByName(_ context.Context, _ string) (*classifier.BreedInfo, error) {
	return s.info, s.lookupErr
}

type memPredictionRepo struct {
	rows []models.Prediction
}

func (r *memPredictionRepo) Create(_ context.Context, p *models.Prediction) error {
	r.rows = append(r.rows, *p)
	return nil
}

func (r *memPredictionRepo) GetByID(_ context.Context, id string) (*models.Prediction, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			c := r.rows[i]
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *memPredictionRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]models.Prediction, int64, error) {
	var mine []models.Prediction
	for _, p := range r.rows {
		if p.UserID == userID {
			mine = append(mine, p)
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return []models.Prediction{}, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (r *memPredictionRepo) Stats(_ context.Context) (*models.PredictionStats, error) {
	stats := &models.PredictionStats{Total: int64(len(r.rows))}
	var sum float64
	for _, p := range r.rows {
		sum += p.Confidence
	}
	if stats.Total > 0 {
		stats.AverageConfidence = sum / float64(stats.Total)
	}
	return stats, nil
}

func farmer() *models.User {
	return &models.User{ID: "u1", Role: models.RoleFarmer, IsActive: true}
}

func jpegUpload(size int64) Upload {
	return Upload{
		Filename:    "cow.jpg",
		ContentType: "image/jpeg",
		Size:        size,
		Reader:      strings.NewReader("fake-image-bytes"),
	}
}

func TestClassify_Success(t *testing.T) {
	repo := &memPredictionRepo{}
	scorer := &stubScorer{result: &classifier.PredictResult{
		Prediction:     "Sahiwal",
		Confidence:     0.88,
		ProcessingTime: 2.4,
		BreedInfo:      &classifier.BreedInfo{Origin: "Punjab", Description: "Dairy breed"},
	}}
	svc := NewPredictionService(repo, scorer, zap.NewNop())

	result, err := svc.Classify(context.Background(), farmer(), jpegUpload(1024))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Prediction.BreedName != "Sahiwal" || result.Prediction.UserID != "u1" {
		t.Fatalf("unexpected prediction: %+v", result.Prediction)
	}
	if result.Prediction.ProcessingTimeSeconds != 2.4 {
		t.Fatalf("processing time = %v, want scorer-reported 2.4", result.Prediction.ProcessingTimeSeconds)
	}
	if result.Prediction.BreedOrigin != "Punjab" {
		t.Fatalf("breed origin not flattened: %+v", result.Prediction)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(repo.rows))
	}
}

func TestClassify_RejectsDisallowedType(t *testing.T) {
	repo := &memPredictionRepo{}
	scorer := &stubScorer{}
	svc := NewPredictionService(repo, scorer, zap.NewNop())

	for _, ct := range []string{"image/gif", "application/pdf", "text/plain", ""} {
		upload := jpegUpload(1024)
		upload.ContentType = ct
		_, err := svc.Classify(context.Background(), farmer(), upload)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("content type %q: expected ErrInvalidRequest, got %v", ct, err)
		}
	}
	// The gate fires before any network call.
	if scorer.predictCalls != 0 {
		t.Fatalf("scorer called %d times for rejected uploads", scorer.predictCalls)
	}
	if len(repo.rows) != 0 {
		t.Fatal("no rows should be written for rejected uploads")
	}
}

func TestClassify_RejectsOversizedUpload(t *testing.T) {
	svc := NewPredictionService(&memPredictionRepo{}, &stubScorer{}, zap.NewNop())
	_, err := svc.Classify(context.Background(), farmer(), jpegUpload(MaxUploadBytes+1))
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestClassify_ScorerDown(t *testing.T) {
	repo := &memPredictionRepo{}
	scorer := &stubScorer{healthErr: classifier.ErrUnavailable}
	svc := NewPredictionService(repo, scorer, zap.NewNop())

	_, err := svc.Classify(context.Background(), farmer(), jpegUpload(1024))
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
	if scorer.predictCalls != 0 {
		t.Fatal("predict must not run when the health probe fails")
	}
	if len(repo.rows) != 0 {
		t.Fatal("no prediction row may be created when the scorer is down")
	}
}

func TestClassify_ScorerFailureMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"bad image", classifier.ErrBadImage, ErrInvalidRequest},
		{"upstream failure", classifier.ErrUpstream, ErrUpstream},
		{"mid-call network error", classifier.ErrUnavailable, ErrServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memPredictionRepo{}
			svc := NewPredictionService(repo, &stubScorer{predictErr: tt.err}, zap.NewNop())
			_, err := svc.Classify(context.Background(), farmer(), jpegUpload(1024))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(repo.rows) != 0 {
				t.Fatal("failed classification must not persist a row")
			}
		})
	}
}

func TestGetByID_Ownership(t *testing.T) {
	repo := &memPredictionRepo{rows: []models.Prediction{{ID: "p1", UserID: "u1", BreedName: "Gir"}}}
	svc := NewPredictionService(repo, &stubScorer{}, zap.NewNop())

	owner := &models.User{ID: "u1", Role: models.RoleFarmer}
	other := &models.User{ID: "u2", Role: models.RoleFarmer}
	officer := &models.User{ID: "u3", Role: models.RoleOfficer}

	if _, err := svc.GetByID(context.Background(), owner, "p1"); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), other, "p1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other farmer: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), officer, "p1"); err != nil {
		t.Fatalf("officer read failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), owner, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistory_Pagination(t *testing.T) {
	repo := &memPredictionRepo{}
	for i := 0; i < 25; i++ {
		repo.rows = append(repo.rows, models.Prediction{ID: string(rune('a' + i)), UserID: "u1"})
	}
	svc := NewPredictionService(repo, &stubScorer{}, zap.NewNop())

	rows, total, err := svc.History(context.Background(), "u1", 3, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if total != 25 || len(rows) != 5 {
		t.Fatalf("page 3: total=%d len=%d, want 25/5", total, len(rows))
	}

	// A page past the end is empty, not an error.
	rows, total, err = svc.History(context.Background(), "u1", 4, 10)
	if err != nil {
		t.Fatalf("past-the-end page failed: %v", err)
	}
	if total != 25 || len(rows) != 0 {
		t.Fatalf("page 4: total=%d len=%d, want 25/0", total, len(rows))
	}
}
