package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GET /products の入力
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	Category string
}

type ListProductsOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	Stock       int64
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ListProductsOutput, error) {
	items, total, err := u.productRepo.ListActive(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        in.Q,
		Category: in.Category,
	})
	if err != nil {
		return ListProductsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ListProductsOutput{Items: items, Total: total}, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindActiveByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) ListSellerProducts(ctx context.Context, sellerID int64) ([]model.Product, error) {
	if sellerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, sellerID int64, in ProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		IsActive:    true,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, sellerID int64, productID int64, in ProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.findOwned(ctx, sellerID, productID)
	if err != nil {
		return model.Product{}, err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.ImageURL = in.ImageURL
	p.Stock = in.Stock

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 在庫だけを更新する
func (u *ProductUsecase) UpdateStock(ctx context.Context, sellerID int64, productID int64, newStock int64) error {
	if sellerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	if _, err := u.findOwned(ctx, sellerID, productID); err != nil {
		return err
	}

	if err := u.inventoryRepo.SetStock(ctx, productID, newStock); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ソフト削除。行は残るので既存の注文明細は壊れない。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, sellerID int64, productID int64) error {
	if sellerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if _, err := u.findOwned(ctx, sellerID, productID); err != nil {
		return err
	}

	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 所有チェック。他人の商品は403。
func (u *ProductUsecase) findOwned(ctx context.Context, sellerID int64, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.SellerID != sellerID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "permission denied")
	}
	return p, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	return nil
}
