package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
)

// newTestDB opens a per-test in-memory sqlite database. The DSN is keyed by
// the test name and open connections are capped at one, otherwise each pooled
// connection would see its own empty :memory: database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(db, repository.NewCartRepository(db), repository.NewMenuRepository(db))
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewMenuRepository(db),
	)
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", FirstName: "Test", LastName: "User", Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func seedCatalog(t *testing.T, db *gorm.DB) (*entity.User, *entity.Restaurant) {
	t.Helper()
	owner := seedUser(t, db, "owner@example.com", entity.RoleOwner)
	rest := &entity.Restaurant{Name: "Test Kitchen", OwnerID: owner.ID}
	if err := db.Create(rest).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return owner, rest
}

func seedMenuItem(t *testing.T, db *gorm.DB, restID uint, name string, price int64, stock int) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{Name: name, Price: price, Stock: stock, IsAvailable: true, RestaurantID: restID}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed menu item %s: %v", name, err)
	}
	return m
}

// assertCartInvariant checks the stored total against the line sum.
func assertCartInvariant(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	var c entity.Cart
	if err := db.Where("user_id = ?", userID).Preload("Items").First(&c).Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	var want int64
	for _, it := range c.Items {
		want += it.UnitPrice * int64(it.Quantity)
	}
	if c.TotalPrice != want {
		t.Fatalf("cart total %d, want %d (sum of lines)", c.TotalPrice, want)
	}
}

func menuStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var m entity.MenuItem
	if err := db.First(&m, id).Error; err != nil {
		t.Fatalf("load menu item: %v", err)
	}
	return m.Stock
}
