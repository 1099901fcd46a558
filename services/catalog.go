package services

import (
	"context"
	"errors"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/cache"
	"food-ordering-api/models"

	"gorm.io/gorm"
)

// RestaurantView is a formatted restaurant row for listings
type RestaurantView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Cuisine    string  `json:"cuisine"`
	Rating     float64 `json:"rating"`
	Image      string  `json:"image"`
	PriceLevel int     `json:"price_level"`
}

// MenuItemView is a formatted menu row
type MenuItemView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	RestaurantName string  `json:"restaurant_name"`
	ImageURL       string  `json:"image_url,omitempty"`
}

// CatalogService is the read-only restaurant/menu listing, scoped by the
// caller's country unless the caller is an admin.
type CatalogService struct {
	db      *gorm.DB
	cache   *cache.Client
	timeout time.Duration
}

func NewCatalogService(db *gorm.DB, cc *cache.Client, timeout time.Duration) *CatalogService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CatalogService{db: db, cache: cc, timeout: timeout}
}

// Restaurants lists restaurants visible to the caller: every country for
// admins, the caller's own country for everyone else.
func (s *CatalogService) Restaurants(ctx context.Context, caller *auth.Identity) ([]RestaurantView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := "restaurants:all"
	if caller.Role != models.RoleAdmin {
		key = "restaurants:" + caller.Country
	}
	var views []RestaurantView
	if s.cache.Get(ctx, key, &views) {
		return views, nil
	}

	query := s.db.WithContext(ctx)
	if caller.Role != models.RoleAdmin {
		query = query.Where("country = ?", caller.Country)
	}
	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}

	views = make([]RestaurantView, 0, len(restaurants))
	for _, r := range restaurants {
		views = append(views, RestaurantView{
			ID:         r.ID,
			Name:       r.Name,
			Address:    r.Location,
			Cuisine:    r.Cuisine,
			Rating:     r.Rating,
			Image:      r.Image,
			PriceLevel: r.PriceLevel,
		})
	}
	s.cache.Set(ctx, key, views)
	return views, nil
}

// Menu lists the items of one restaurant. Non-admin callers only see
// restaurants in their own country; a scoped-out restaurant reads the
// same as a missing one.
func (s *CatalogService) Menu(ctx context.Context, caller *auth.Identity, restaurantID string) ([]MenuItemView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if caller.Role != models.RoleAdmin && restaurant.Country != caller.Country {
		return nil, ErrRestaurantNotFound
	}

	var items []models.Item
	if err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoMenuItems
	}

	views := make([]MenuItemView, 0, len(items))
	for _, it := range items {
		views = append(views, MenuItemView{
			ID:             it.ID,
			Name:           it.Name,
			Description:    it.Description,
			Price:          it.Price,
			RestaurantName: restaurant.Name,
			ImageURL:       it.Image,
		})
	}
	return views, nil
}
