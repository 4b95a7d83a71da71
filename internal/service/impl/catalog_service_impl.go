package impl

import (
	"context"
	"time"

	"fooddelivery/internal/domain"
	"fooddelivery/internal/dto"
	"fooddelivery/internal/service"

	"github.com/google/uuid"
)

type CatalogServiceImpl struct {
	Categories service.CategoryStore
	Foods      service.FoodStore
}

func NewCatalogServiceImpl(categories service.CategoryStore, foods service.FoodStore) *CatalogServiceImpl {
	return &CatalogServiceImpl{Categories: categories, Foods: foods}
}

func (c *CatalogServiceImpl) CreateCategory(ctx context.Context, r dto.CreateCategoryRequest) (*domain.FoodCategory, error) {
	if r.Name == "" {
		return nil, ErrMissingFields
	}
	cat := &domain.FoodCategory{
		ID:        uuid.New(),
		Name:      r.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *CatalogServiceImpl) ListCategories(ctx context.Context) ([]domain.FoodCategory, error) {
	return c.Categories.List(ctx)
}

func (c *CatalogServiceImpl) UpdateCategory(ctx context.Context, id, name string) (*domain.FoodCategory, error) {
	catID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	if name == "" {
		return nil, ErrMissingFields
	}
	return c.Categories.Update(ctx, catID, name)
}

func (c *CatalogServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	catID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrCategoryNotFound
	}
	return c.Categories.Delete(ctx, catID)
}

func (c *CatalogServiceImpl) CreateFood(ctx context.Context, r dto.CreateFoodRequest) (*domain.Food, error) {
	if r.Name == "" || r.CategoryID == "" || r.Price <= 0 {
		return nil, ErrMissingFields
	}
	catID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	now := time.Now().UTC()
	f := &domain.Food{
		ID:         uuid.New(),
		Name:       r.Name,
		Price:      r.Price,
		ImageURL:   r.ImageURL,
		CategoryID: catID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := c.Foods.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (c *CatalogServiceImpl) GetFood(ctx context.Context, id string) (*domain.Food, error) {
	foodID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrFoodNotFound
	}
	return c.Foods.GetByID(ctx, foodID)
}

func (c *CatalogServiceImpl) ListFoods(ctx context.Context) ([]domain.Food, error) {
	return c.Foods.List(ctx)
}

func (c *CatalogServiceImpl) ListFoodsByCategory(ctx context.Context, categoryID string) ([]domain.Food, error) {
	catID, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	return c.Foods.ListByCategory(ctx, catID)
}

func (c *CatalogServiceImpl) UpdateFood(ctx context.Context, id string, r dto.UpdateFoodRequest) (*domain.Food, error) {
	foodID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrFoodNotFound
	}
	f, err := c.Foods.GetByID(ctx, foodID)
	if err != nil {
		return nil, err
	}
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.Price != nil {
		if *r.Price <= 0 {
			return nil, ErrMissingFields
		}
		f.Price = *r.Price
	}
	if r.ImageURL != nil {
		f.ImageURL = *r.ImageURL
	}
	if r.CategoryID != nil {
		catID, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return nil, domain.ErrCategoryNotFound
		}
		f.CategoryID = catID
	}
	f.UpdatedAt = time.Now().UTC()
	if err := c.Foods.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (c *CatalogServiceImpl) DeleteFood(ctx context.Context, id string) error {
	foodID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrFoodNotFound
	}
	return c.Foods.Delete(ctx, foodID)
}
