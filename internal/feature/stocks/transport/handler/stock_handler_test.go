package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"broker_backend/internal/feature/stocks/domain"
	"broker_backend/internal/feature/stocks/domain/entity"
	"broker_backend/internal/feature/stocks/usecase"
)

// mockStockUsecase is a func-field mock of the StockUsecase interface.
type mockStockUsecase struct {
	ListStocksFunc    func(ctx context.Context) ([]entity.Stock, error)
	GetStockByIDFunc  func(ctx context.Context, id string) (*entity.Stock, error)
	CreateStockFunc   func(ctx context.Context, in usecase.StockInput) (*entity.Stock, error)
	UpdateStockFunc   func(ctx context.Context, id string, in usecase.StockInput) (*entity.Stock, error)
	DeleteStockFunc   func(ctx context.Context, id string) error
	ValidateStockFunc func(in usecase.StockInput) error
}

func (m *mockStockUsecase) ListStocks(ctx context.Context) ([]entity.Stock, error) {
	if m.ListStocksFunc != nil {
		return m.ListStocksFunc(ctx)
	}
	return nil, nil
}

func (m *mockStockUsecase) GetStockByID(ctx context.Context, id string) (*entity.Stock, error) {
	if m.GetStockByIDFunc != nil {
		return m.GetStockByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStockUsecase) CreateStock(ctx context.Context, in usecase.StockInput) (*entity.Stock, error) {
	if m.CreateStockFunc != nil {
		return m.CreateStockFunc(ctx, in)
	}
	return nil, nil
}

func (m *mockStockUsecase) UpdateStock(ctx context.Context, id string, in usecase.StockInput) (*entity.Stock, error) {
	if m.UpdateStockFunc != nil {
		return m.UpdateStockFunc(ctx, id, in)
	}
	return nil, nil
}

func (m *mockStockUsecase) DeleteStock(ctx context.Context, id string) error {
	if m.DeleteStockFunc != nil {
		return m.DeleteStockFunc(ctx, id)
	}
	return nil
}

func (m *mockStockUsecase) ValidateStock(in usecase.StockInput) error {
	if m.ValidateStockFunc != nil {
		return m.ValidateStockFunc(in)
	}
	return nil
}

// newStockRouter wires a gin engine around the handler under test.
func newStockRouter(uc *mockStockUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStockHandler(uc)

	r := gin.New()
	r.GET("/stocks", h.List)
	r.GET("/stocks/:id", h.Get)
	r.POST("/stocks", h.Create)
	r.POST("/stocks/validate", h.Validate)
	r.PUT("/stocks/:id", h.Update)
	r.DELETE("/stocks/:id", h.Delete)
	return r
}

func perform(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStockHandler_List(t *testing.T) {
	t.Run("returns stocks as json", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{
			ListStocksFunc: func(ctx context.Context) ([]entity.Stock, error) {
				return []entity.Stock{
					{ID: "id-1", Symbol: "PETR4", CompanyName: "Petrobras", Price: decimal.RequireFromString("34.50")},
				}, nil
			},
		})

		w := perform(t, r, http.MethodGet, "/stocks", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":"id-1","symbol":"PETR4","companyName":"Petrobras","price":"34.5"}]`, w.Body.String())
	})

	t.Run("nil result still renders an empty array", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{})

		w := perform(t, r, http.MethodGet, "/stocks", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("usecase error yields 500", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{
			ListStocksFunc: func(ctx context.Context) ([]entity.Stock, error) {
				return nil, errors.New("database connection failed")
			},
		})

		w := perform(t, r, http.MethodGet, "/stocks", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"database connection failed"}`, w.Body.String())
	})
}

func TestStockHandler_Get(t *testing.T) {
	t.Run("known id returns 200", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{
			GetStockByIDFunc: func(ctx context.Context, id string) (*entity.Stock, error) {
				require.Equal(t, "id-1", id)
				return &entity.Stock{ID: "id-1", Symbol: "PETR4", CompanyName: "Petrobras", Price: decimal.RequireFromString("34.50")}, nil
			},
		})

		w := perform(t, r, http.MethodGet, "/stocks/id-1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"id-1","symbol":"PETR4","companyName":"Petrobras","price":"34.5"}`, w.Body.String())
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{})

		w := perform(t, r, http.MethodGet, "/stocks/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"stock not found"}`, w.Body.String())
	})
}

func TestStockHandler_Create(t *testing.T) {
	t.Run("valid body returns 201 with assigned id", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{
			CreateStockFunc: func(ctx context.Context, in usecase.StockInput) (*entity.Stock, error) {
				return &entity.Stock{
					ID:          "generated-id",
					Symbol:      in.Symbol,
					CompanyName: in.CompanyName,
					Price:       in.Price,
				}, nil
			},
		})

		w := perform(t, r, http.MethodPost, "/stocks",
			`{"symbol":"PETR4","companyName":"Petrobras","price":34.50}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":"generated-id","symbol":"PETR4","companyName":"Petrobras","price":"34.5"}`, w.Body.String())
	})

	t.Run("validation failure returns 400 with the violation list", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{
			CreateStockFunc: func(ctx context.Context, in usecase.StockInput) (*entity.Stock, error) {
				return nil, &domain.ValidationError{Violations: []domain.Violation{
					{Field: "symbol", Message: "must not be blank"},
				}}
			},
		})

		w := perform(t, r, http.MethodPost, "/stocks",
			`{"symbol":"","companyName":"X","price":10}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{
			"error":"Validation failed. Details: [symbol: must not be blank]",
			"violations":[{"field":"symbol","message":"must not be blank"}]
		}`, w.Body.String())
	})

	t.Run("malformed json returns 400", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{})

		w := perform(t, r, http.MethodPost, "/stocks", `{"symbol":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
	})
}

func TestStockHandler_Update(t *testing.T) {
	t.Run("known id returns the updated stock", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{
			UpdateStockFunc: func(ctx context.Context, id string, in usecase.StockInput) (*entity.Stock, error) {
				return &entity.Stock{ID: id, Symbol: in.Symbol, CompanyName: in.CompanyName, Price: in.Price}, nil
			},
		})

		w := perform(t, r, http.MethodPut, "/stocks/id-1",
			`{"symbol":"VALE3","companyName":"Vale","price":70}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"id-1","symbol":"VALE3","companyName":"Vale","price":"70"}`, w.Body.String())
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{})

		w := perform(t, r, http.MethodPut, "/stocks/missing",
			`{"symbol":"VALE3","companyName":"Vale","price":70}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStockHandler_Delete(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		var deleted string
		r := newStockRouter(&mockStockUsecase{
			DeleteStockFunc: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		})

		w := perform(t, r, http.MethodDelete, "/stocks/id-1", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "id-1", deleted)
	})

	t.Run("repository error yields 500", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{
			DeleteStockFunc: func(ctx context.Context, id string) error {
				return errors.New("storage unavailable")
			},
		})

		w := perform(t, r, http.MethodDelete, "/stocks/id-1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStockHandler_Validate(t *testing.T) {
	t.Run("valid body returns ok", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{})

		w := perform(t, r, http.MethodPost, "/stocks/validate",
			`{"symbol":"PETR4","companyName":"Petrobras","price":34.50}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
	})

	t.Run("violations return 400", func(t *testing.T) {
		r := newStockRouter(&mockStockUsecase{
			ValidateStockFunc: func(in usecase.StockInput) error {
				return &domain.ValidationError{Violations: []domain.Violation{
					{Field: "price", Message: "must not be negative"},
				}}
			},
		})

		w := perform(t, r, http.MethodPost, "/stocks/validate",
			`{"symbol":"PETR4","companyName":"Petrobras","price":-1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "must not be negative")
	})
}
