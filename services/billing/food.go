package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	propertyRepo "stayease/database/repository/property"
	"stayease/models"
	"stayease/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// FoodCalculator resolves the monthly food charge for a booking. Property
// documents change rarely, so reads go through a short-lived Redis cache.
type FoodCalculator struct {
	Properties propertyRepo.PropertyRepository
	Cache      *redis.Client // optional; nil disables caching
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

// Charge returns the food amount to add to a booking's monthly rent:
// the property's food menu price if the booking includes food, else 0.
// A property without a food menu charges 0 regardless of the flag.
func (f *FoodCalculator) Charge(ctx context.Context, booking models.Booking) (int64, error) {
	if !booking.FoodIncluded {
		return 0, nil
	}

	property, err := f.lookupProperty(ctx, booking.PropertyID)
	if err != nil {
		return 0, fmt.Errorf("food charge lookup for property %s: %w", booking.PropertyID, err)
	}
	if property.FoodMenu == nil {
		return 0, nil
	}
	return property.FoodMenu.Price, nil
}

func (f *FoodCalculator) lookupProperty(ctx context.Context, id string) (*models.Property, error) {
	if f.Cache != nil {
		key := utils.PropertyCachePrefix + id
		if raw, err := f.Cache.Get(ctx, key).Result(); err == nil {
			var cached models.Property
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
			// Corrupt cache entries fall through to the repository.
		}
	}

	property, err := f.Properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if f.Cache != nil {
		if raw, err := json.Marshal(property); err == nil {
			if err := f.Cache.Set(ctx, utils.PropertyCachePrefix+id, raw, f.CacheTTL).Err(); err != nil && f.Logger != nil {
				f.Logger.Debug("property cache set failed", zap.String("property", id), zap.Error(err))
			}
		}
	}
	return property, nil
}
