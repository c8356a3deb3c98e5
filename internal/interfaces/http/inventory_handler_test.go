package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safwanadnan/bazaar/internal/application/dto"
	"github.com/safwanadnan/bazaar/internal/application/inventory"
	"github.com/safwanadnan/bazaar/internal/domain"
	"github.com/safwanadnan/bazaar/internal/domain/entity"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommitter struct {
	result *inventory.CommitResult
	err    error
	gotIn  inventory.MovementInput
}

func (s *stubCommitter) Commit(_ context.Context, in inventory.MovementInput) (*inventory.CommitResult, error) {
	s.gotIn = in
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubRebuilder struct {
	level *entity.StockLevel
	err   error
}

func (s *stubRebuilder) Rebuild(_ context.Context, productID, storeID string) (*entity.StockLevel, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.level, nil
}

type stubQueries struct {
	level *dto.LevelResponse
}

func (s *stubQueries) GetLevel(_ context.Context, productID, storeID string) (*dto.LevelResponse, error) {
	return s.level, nil
}

func (s *stubQueries) ListMovements(_ context.Context, _ repository.MovementFilter, limit, offset int) (*dto.MovementListResponse, error) {
	return &dto.MovementListResponse{Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (s *stubQueries) ListStoreLevels(_ context.Context, _ string, limit, offset int) (*dto.LevelListResponse, error) {
	return &dto.LevelListResponse{Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func newTestApp(committer MovementCommitter, rebuilder LevelRebuilder, queries StockQueryService) *fiber.App {
	app := fiber.New()
	Router(app, RouterDeps{
		ProductSvc: nil,
		StoreSvc:   nil,
		Committer:  committer,
		Rebuilder:  rebuilder,
		Queries:    queries,
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestSubmitMovement_Created(t *testing.T) {
	committed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	committer := &stubCommitter{result: &inventory.CommitResult{
		Movement: &entity.StockMovement{
			ID:          7,
			ProductID:   "p1",
			StoreID:     "s1",
			Type:        entity.MovementTypeSale,
			Quantity:    5,
			CommittedAt: committed,
		},
		Quantity: 95,
		Version:  2,
	}}
	app := newTestApp(committer, &stubRebuilder{}, &stubQueries{})

	status, body := postJSON(t, app, "/api/movements", dto.SubmitMovementRequest{
		ProductID:      "p1",
		StoreID:        "s1",
		Type:           "sale",
		Quantity:       5,
		IdempotencyKey: "k-1",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var out dto.SubmitMovementResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.EqualValues(t, 7, out.MovementID)
	assert.EqualValues(t, 95, out.ResultingQuantity)
	assert.EqualValues(t, 2, out.Version)
	assert.True(t, out.CommittedAt.Equal(committed))

	assert.Equal(t, "k-1", committer.gotIn.IdempotencyKey)
	assert.EqualValues(t, 5, committer.gotIn.Quantity)
}

func TestSubmitMovement_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"unknown product", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"insufficient stock", domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"duplicate key", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"retries exhausted", domain.ErrConcurrentModification, fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
		{"unexpected", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&stubCommitter{err: tc.err}, &stubRebuilder{}, &stubQueries{})
			status, body := postJSON(t, app, "/api/movements", dto.SubmitMovementRequest{
				ProductID: "p1", StoreID: "s1", Type: "sale", Quantity: 1,
			})
			assert.Equal(t, tc.wantStatus, status)

			var out dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tc.wantCode, out.Code)
		})
	}
}

func TestSubmitMovement_MalformedBody(t *testing.T) {
	app := newTestApp(&stubCommitter{}, &stubRebuilder{}, &stubQueries{})

	req := httptest.NewRequest("POST", "/api/movements", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetLevel(t *testing.T) {
	queries := &stubQueries{level: &dto.LevelResponse{
		ProductID: "p1", StoreID: "s1", Quantity: 42, Version: 6,
	}}
	app := newTestApp(&stubCommitter{}, &stubRebuilder{}, queries)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/levels/p1/s1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.LevelResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.EqualValues(t, 42, out.Quantity)
	assert.EqualValues(t, 6, out.Version)
}

func TestRebuildLevel(t *testing.T) {
	rebuilder := &stubRebuilder{level: &entity.StockLevel{
		ProductID: "p1", StoreID: "s1", Quantity: 93, Version: 3,
	}}
	app := newTestApp(&stubCommitter{}, rebuilder, &stubQueries{})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/levels/p1/s1/rebuild", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.LevelResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.EqualValues(t, 93, out.Quantity)
}

func TestListMovements_RejectsBadTimeFilter(t *testing.T) {
	app := newTestApp(&stubCommitter{}, &stubRebuilder{}, &stubQueries{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/movements?from=yesterday", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
