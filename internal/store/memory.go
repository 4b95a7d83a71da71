package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fooddelivery/internal/domain"
)

// MemoryStore keeps everything in process. It backs local development
// without postgres and the service-level tests; it enforces the same email
// uniqueness and not-found semantics as the postgres stores.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[domain.UserID]*domain.User
	emailIndex map[string]domain.UserID
	categories map[domain.CategoryID]*domain.FoodCategory
	foods      map[domain.FoodID]*domain.Food
	orders     map[domain.OrderID]*domain.FoodOrder
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[domain.UserID]*domain.User),
		emailIndex: make(map[string]domain.UserID),
		categories: make(map[domain.CategoryID]*domain.FoodCategory),
		foods:      make(map[domain.FoodID]*domain.Food),
		orders:     make(map[domain.OrderID]*domain.FoodOrder),
	}
}

func (m *MemoryStore) Users() *MemoryUserStore          { return &MemoryUserStore{s: m} }
func (m *MemoryStore) Categories() *MemoryCategoryStore { return &MemoryCategoryStore{s: m} }
func (m *MemoryStore) Foods() *MemoryFoodStore          { return &MemoryFoodStore{s: m} }
func (m *MemoryStore) Orders() *MemoryOrderStore        { return &MemoryOrderStore{s: m} }

type MemoryUserStore struct{ s *MemoryStore }

func (u *MemoryUserStore) Create(ctx context.Context, usr *domain.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, exists := u.s.emailIndex[usr.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	cp := *usr
	u.s.users[usr.ID] = &cp
	u.s.emailIndex[usr.Email] = usr.ID
	return nil
}

func (u *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	id, ok := u.s.emailIndex[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u.s.users[id]
	return &cp, nil
}

func (u *MemoryUserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr, ok := u.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *usr
	return &cp, nil
}

func (u *MemoryUserStore) SetVerified(ctx context.Context, id domain.UserID, expiresAt time.Time) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr, ok := u.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	usr.IsVerified = true
	t := expiresAt
	usr.ExpiresAt = &t
	usr.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *MemoryUserStore) SetRole(ctx context.Context, id domain.UserID, role domain.Role) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr, ok := u.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	usr.Role = role
	usr.UpdatedAt = time.Now().UTC()
	cp := *usr
	return &cp, nil
}

func (u *MemoryUserStore) SetPassword(ctx context.Context, id domain.UserID, passwordHash string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr, ok := u.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	usr.PasswordHash = passwordHash
	usr.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *MemoryUserStore) List(ctx context.Context) ([]domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	users := make([]domain.User, 0, len(u.s.users))
	for _, usr := range u.s.users {
		users = append(users, *usr)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (u *MemoryUserStore) Stats(ctx context.Context, now time.Time) (*domain.UserStats, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	weekAgo := now.AddDate(0, 0, -7)
	st := &domain.UserStats{}
	for _, usr := range u.s.users {
		st.TotalUsers++
		if usr.IsVerified {
			st.VerifiedUsers++
		}
		if usr.Role == domain.RoleAdmin {
			st.AdminUsers++
		}
		if usr.ExpiresAt != nil && usr.ExpiresAt.After(now) {
			st.ActiveUsers++
		}
		if !usr.CreatedAt.Before(weekAgo) {
			st.NewUsersThisWeek++
		}
	}
	return st, nil
}

type MemoryCategoryStore struct{ s *MemoryStore }

func (c *MemoryCategoryStore) Create(ctx context.Context, cat *domain.FoodCategory) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, existing := range c.s.categories {
		if existing.Name == cat.Name {
			return domain.ErrDuplicateCategory
		}
	}
	cp := *cat
	c.s.categories[cat.ID] = &cp
	return nil
}

func (c *MemoryCategoryStore) List(ctx context.Context) ([]domain.FoodCategory, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	cats := make([]domain.FoodCategory, 0, len(c.s.categories))
	for _, cat := range c.s.categories {
		cats = append(cats, *cat)
	}
	sort.Slice(cats, func(i, j int) bool { return strings.Compare(cats[i].Name, cats[j].Name) < 0 })
	return cats, nil
}

func (c *MemoryCategoryStore) Update(ctx context.Context, id domain.CategoryID, name string) (*domain.FoodCategory, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	cat, ok := c.s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	for _, existing := range c.s.categories {
		if existing.ID != id && existing.Name == name {
			return nil, domain.ErrDuplicateCategory
		}
	}
	cat.Name = name
	cp := *cat
	return &cp, nil
}

func (c *MemoryCategoryStore) Delete(ctx context.Context, id domain.CategoryID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(c.s.categories, id)
	return nil
}

type MemoryFoodStore struct{ s *MemoryStore }

func (f *MemoryFoodStore) Create(ctx context.Context, food *domain.Food) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *food
	f.s.foods[food.ID] = &cp
	return nil
}

func (f *MemoryFoodStore) GetByID(ctx context.Context, id domain.FoodID) (*domain.Food, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	food, ok := f.s.foods[id]
	if !ok {
		return nil, domain.ErrFoodNotFound
	}
	cp := *food
	return &cp, nil
}

func (f *MemoryFoodStore) List(ctx context.Context) ([]domain.Food, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	foods := make([]domain.Food, 0, len(f.s.foods))
	for _, food := range f.s.foods {
		foods = append(foods, *food)
	}
	sort.Slice(foods, func(i, j int) bool { return foods[i].CreatedAt.After(foods[j].CreatedAt) })
	return foods, nil
}

func (f *MemoryFoodStore) ListByCategory(ctx context.Context, categoryID domain.CategoryID) ([]domain.Food, error) {
	all, _ := f.List(ctx)
	var foods []domain.Food
	for _, food := range all {
		if food.CategoryID == categoryID {
			foods = append(foods, food)
		}
	}
	return foods, nil
}

func (f *MemoryFoodStore) Update(ctx context.Context, food *domain.Food) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.foods[food.ID]; !ok {
		return domain.ErrFoodNotFound
	}
	cp := *food
	f.s.foods[food.ID] = &cp
	return nil
}

func (f *MemoryFoodStore) Delete(ctx context.Context, id domain.FoodID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.foods[id]; !ok {
		return domain.ErrFoodNotFound
	}
	delete(f.s.foods, id)
	return nil
}

type MemoryOrderStore struct{ s *MemoryStore }

func (o *MemoryOrderStore) Create(ctx context.Context, order *domain.FoodOrder) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	cp := *order
	cp.Items = append([]domain.OrderItem(nil), order.Items...)
	o.s.orders[order.ID] = &cp
	return nil
}

func (o *MemoryOrderStore) ListByUser(ctx context.Context, userID domain.UserID) ([]domain.FoodOrder, error) {
	all, _ := o.List(ctx)
	var orders []domain.FoodOrder
	for _, order := range all {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (o *MemoryOrderStore) List(ctx context.Context) ([]domain.FoodOrder, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	orders := make([]domain.FoodOrder, 0, len(o.s.orders))
	for _, order := range o.s.orders {
		orders = append(orders, *order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (o *MemoryOrderStore) UpdateStatus(ctx context.Context, id domain.OrderID, status domain.OrderStatus) (*domain.FoodOrder, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	order, ok := o.s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	cp := *order
	return &cp, nil
}
