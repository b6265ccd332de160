package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/apperr"
)

// placeOrder seeds a single-item cart and checks it out.
func placeOrder(t *testing.T, db *gorm.DB, userID uint, item *entity.MenuItem, qty int) *entity.Order {
	t.Helper()
	cartSvc := newCartService(db)
	if _, err := cartSvc.Add(userID, &AddToCartIn{MenuItemID: item.ID, Quantity: qty}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	order, err := newOrderService(db).Checkout(userID, &CheckoutIn{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	return order
}

func setStatus(t *testing.T, db *gorm.DB, orderID uint, status string) {
	t.Helper()
	if err := db.Model(&entity.Order{}).Where("id = ?", orderID).Update("status", status).Error; err != nil {
		t.Fatalf("set status: %v", err)
	}
}

func strptr(s string) *string { return &s }

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)

	svc := newOrderService(db)
	if _, err := svc.Checkout(customer.ID, &CheckoutIn{}); !errors.Is(err, apperr.ErrEmptyCart) {
		t.Fatalf("Checkout without cart = %v, want ErrEmptyCart", err)
	}

	var count int64
	db.Model(&entity.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("got %d orders after failed checkout, want 0", count)
	}
}

func TestCheckoutDecrementsStockAndSnapshots(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	item := seedMenuItem(t, db, rest.ID, "Green Curry", 450, 10)

	cartSvc := newCartService(db)
	if _, err := cartSvc.Add(customer.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 4}); err != nil {
		t.Fatalf("add: %v", err)
	}

	svc := newOrderService(db)
	order, err := svc.Checkout(customer.ID, &CheckoutIn{Address: "12 Sukhumvit Rd"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.Status != entity.OrderPending {
		t.Fatalf("new order status = %q, want PENDING", order.Status)
	}
	if order.TotalAmount != 4*450 {
		t.Fatalf("total amount = %d, want %d", order.TotalAmount, 4*450)
	}
	if got := menuStock(t, db, item.ID); got != 6 {
		t.Fatalf("stock after checkout = %d, want 6", got)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 4 || order.Items[0].UnitPrice != 450 {
		t.Fatalf("order items = %+v, want one line qty 4 price 450", order.Items)
	}

	// the cart is gone
	var carts int64
	db.Model(&entity.Cart{}).Where("user_id = ?", customer.ID).Count(&carts)
	if carts != 0 {
		t.Fatalf("cart rows after checkout = %d, want 0", carts)
	}
	var lines int64
	db.Model(&entity.CartItem{}).Count(&lines)
	if lines != 0 {
		t.Fatalf("cart item rows after checkout = %d, want 0", lines)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	item := seedMenuItem(t, db, rest.ID, "Dish", 300, 5)

	cartSvc := newCartService(db)
	if _, err := cartSvc.Add(customer.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 3}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// stock shrinks between add and checkout
	if err := db.Model(&entity.MenuItem{}).Where("id = ?", item.ID).Update("stock", 2).Error; err != nil {
		t.Fatalf("shrink stock: %v", err)
	}

	svc := newOrderService(db)
	if _, err := svc.Checkout(customer.ID, &CheckoutIn{}); !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("checkout = %v, want ErrInsufficientStock", err)
	}

	// nothing committed: no order, stock untouched, cart intact
	var orders int64
	db.Model(&entity.Order{}).Count(&orders)
	if orders != 0 {
		t.Fatalf("orders after rollback = %d, want 0", orders)
	}
	if got := menuStock(t, db, item.ID); got != 2 {
		t.Fatalf("stock after rollback = %d, want 2", got)
	}
	var carts int64
	db.Model(&entity.Cart{}).Where("user_id = ?", customer.ID).Count(&carts)
	if carts != 1 {
		t.Fatalf("cart rows after rollback = %d, want 1", carts)
	}
}

func TestCompetingCheckoutsOneWins(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	alice := seedUser(t, db, "alice@example.com", entity.RoleCustomer)
	bob := seedUser(t, db, "bob@example.com", entity.RoleCustomer)
	item := seedMenuItem(t, db, rest.ID, "Last One", 900, 1)

	cartSvc := newCartService(db)
	if _, err := cartSvc.Add(alice.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("alice add: %v", err)
	}
	if _, err := cartSvc.Add(bob.ID, &AddToCartIn{MenuItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("bob add: %v", err)
	}

	svc := newOrderService(db)
	if _, err := svc.Checkout(alice.ID, &CheckoutIn{}); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if _, err := svc.Checkout(bob.ID, &CheckoutIn{}); !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("second checkout = %v, want ErrInsufficientStock", err)
	}

	if got := menuStock(t, db, item.ID); got != 0 {
		t.Fatalf("final stock = %d, want 0", got)
	}
	var orders int64
	db.Model(&entity.Order{}).Count(&orders)
	if orders != 1 {
		t.Fatalf("orders = %d, want exactly 1", orders)
	}
}

func TestUpdateProcessedOrderFails(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	item := seedMenuItem(t, db, rest.ID, "Dish", 300, 10)
	order := placeOrder(t, db, customer.ID, item, 1)

	svc := newOrderService(db)

	for _, status := range []string{entity.OrderProcessing, entity.OrderCompleted} {
		setStatus(t, db, order.ID, status)
		_, err := svc.Update(customer.ID, order.ID, &UpdateOrderIn{Address: strptr("new address")})
		if !errors.Is(err, apperr.ErrOrderProcessed) {
			t.Fatalf("Update on %s = %v, want ErrOrderProcessed", status, err)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	item := seedMenuItem(t, db, rest.ID, "Dish", 300, 50)

	svc := newOrderService(db)

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"pending to processing", entity.OrderPending, entity.OrderProcessing, false},
		{"processing to completed", entity.OrderProcessing, entity.OrderCompleted, false},
		{"pending skips to completed", entity.OrderPending, entity.OrderCompleted, true},
		{"completed to processing", entity.OrderCompleted, entity.OrderProcessing, true},
		{"cancelled to pending", entity.OrderCancelled, entity.OrderPending, true},
		{"processing to cancelled", entity.OrderProcessing, entity.OrderCancelled, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			order := placeOrder(t, db, customer.ID, item, 1)
			setStatus(t, db, order.ID, tc.from)

			got, err := svc.Update(customer.ID, order.ID, &UpdateOrderIn{Status: &tc.to})
			if tc.wantErr {
				if !errors.Is(err, apperr.ErrOrderProcessed) {
					t.Fatalf("Update %s→%s = %v, want ErrOrderProcessed", tc.from, tc.to, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update %s→%s: %v", tc.from, tc.to, err)
			}
			if got.Status != tc.to {
				t.Fatalf("status = %q, want %q", got.Status, tc.to)
			}
		})
	}
}

func TestCancelCompletedFails(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	item := seedMenuItem(t, db, rest.ID, "Dish", 300, 10)
	order := placeOrder(t, db, customer.ID, item, 1)

	setStatus(t, db, order.ID, entity.OrderCompleted)

	svc := newOrderService(db)
	if err := svc.Cancel(customer.ID, order.ID); !errors.Is(err, apperr.ErrOrderCompleted) {
		t.Fatalf("Cancel completed = %v, want ErrOrderCompleted", err)
	}
}

func TestCancelPendingRestoresStock(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	item := seedMenuItem(t, db, rest.ID, "Dish", 300, 10)
	order := placeOrder(t, db, customer.ID, item, 4)

	if got := menuStock(t, db, item.ID); got != 6 {
		t.Fatalf("stock after checkout = %d, want 6", got)
	}

	svc := newOrderService(db)
	if err := svc.Cancel(customer.ID, order.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var o entity.Order
	if err := db.First(&o, order.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if o.Status != entity.OrderCancelled {
		t.Fatalf("status after cancel = %q, want CANCELLED", o.Status)
	}
	if got := menuStock(t, db, item.ID); got != 10 {
		t.Fatalf("stock after cancel = %d, want restored 10", got)
	}

	// cancelling twice is rejected
	if err := svc.Cancel(customer.ID, order.ID); !errors.Is(err, apperr.ErrOrderProcessed) {
		t.Fatalf("second cancel = %v, want ErrOrderProcessed", err)
	}
	if got := menuStock(t, db, item.ID); got != 10 {
		t.Fatalf("stock after double cancel = %d, want 10 (no double restore)", got)
	}
}

// A line added after an earlier cart read must not be lost: checkout loads
// the cart inside its own transaction, so the order reflects the cart as
// committed, not as some caller last saw it.
func TestCheckoutUsesCurrentCartContents(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	a := seedMenuItem(t, db, rest.ID, "A", 250, 10)
	b := seedMenuItem(t, db, rest.ID, "B", 990, 10)

	cartSvc := newCartService(db)
	if _, err := cartSvc.Add(customer.ID, &AddToCartIn{MenuItemID: a.ID, Quantity: 2}); err != nil {
		t.Fatalf("add A: %v", err)
	}
	// a stale view of the cart, taken before the second add
	if _, err := cartSvc.Get(customer.ID); err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if _, err := cartSvc.Add(customer.ID, &AddToCartIn{MenuItemID: b.ID, Quantity: 1}); err != nil {
		t.Fatalf("add B: %v", err)
	}

	order, err := newOrderService(db).Checkout(customer.ID, &CheckoutIn{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if len(order.Items) != 2 {
		t.Fatalf("order has %d lines, want 2", len(order.Items))
	}
	if order.TotalAmount != 2*250+990 {
		t.Fatalf("order total = %d, want %d", order.TotalAmount, 2*250+990)
	}
	if got := menuStock(t, db, b.ID); got != 9 {
		t.Fatalf("stock of late-added item = %d, want 9", got)
	}
	var lines int64
	db.Model(&entity.CartItem{}).Count(&lines)
	if lines != 0 {
		t.Fatalf("cart item rows after checkout = %d, want 0 (no line dropped)", lines)
	}
}

// An empty or same-status payload is still an update attempt and must fail on
// a processed order.
func TestUpdateNoopPayloadOnProcessedFails(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	item := seedMenuItem(t, db, rest.ID, "Dish", 300, 10)

	svc := newOrderService(db)

	for _, status := range []string{entity.OrderProcessing, entity.OrderCompleted, entity.OrderCancelled} {
		order := placeOrder(t, db, customer.ID, item, 1)
		setStatus(t, db, order.ID, status)

		if _, err := svc.Update(customer.ID, order.ID, &UpdateOrderIn{}); !errors.Is(err, apperr.ErrOrderProcessed) {
			t.Fatalf("empty Update on %s = %v, want ErrOrderProcessed", status, err)
		}
		same := status
		if _, err := svc.Update(customer.ID, order.ID, &UpdateOrderIn{Status: &same}); !errors.Is(err, apperr.ErrOrderProcessed) {
			t.Fatalf("same-status Update on %s = %v, want ErrOrderProcessed", status, err)
		}
	}

	// on a PENDING order an empty payload is a harmless no-op
	order := placeOrder(t, db, customer.ID, item, 1)
	got, err := svc.Update(customer.ID, order.ID, &UpdateOrderIn{})
	if err != nil {
		t.Fatalf("empty Update on PENDING: %v", err)
	}
	if got.Status != entity.OrderPending {
		t.Fatalf("status = %q, want PENDING", got.Status)
	}
}

func TestCheckoutRoundTrip(t *testing.T) {
	db := newTestDB(t)
	_, rest := seedCatalog(t, db)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	a := seedMenuItem(t, db, rest.ID, "A", 250, 10)
	b := seedMenuItem(t, db, rest.ID, "B", 990, 10)

	cartSvc := newCartService(db)
	if _, err := cartSvc.Add(customer.ID, &AddToCartIn{MenuItemID: a.ID, Quantity: 2}); err != nil {
		t.Fatalf("add A: %v", err)
	}
	if _, err := cartSvc.Add(customer.ID, &AddToCartIn{MenuItemID: b.ID, Quantity: 3}); err != nil {
		t.Fatalf("add B: %v", err)
	}

	// snapshot the cart immediately before checkout
	before, err := cartSvc.Get(customer.ID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	wantLines := map[uint][2]int64{}
	for _, it := range before.Cart.Items {
		wantLines[it.MenuItemID] = [2]int64{int64(it.Quantity), it.UnitPrice}
	}

	svc := newOrderService(db)
	order, err := svc.Checkout(customer.ID, &CheckoutIn{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	fetched, err := svc.DetailForUser(customer.ID, order.ID)
	if err != nil {
		t.Fatalf("fetch order: %v", err)
	}
	if fetched.TotalAmount != before.Total {
		t.Fatalf("order total %d, want cart total %d", fetched.TotalAmount, before.Total)
	}
	if len(fetched.Items) != len(wantLines) {
		t.Fatalf("order has %d lines, want %d", len(fetched.Items), len(wantLines))
	}
	for _, oi := range fetched.Items {
		want, ok := wantLines[oi.MenuItemID]
		if !ok {
			t.Fatalf("unexpected order line for menu item %d", oi.MenuItemID)
		}
		if int64(oi.Quantity) != want[0] || oi.UnitPrice != want[1] {
			t.Fatalf("line for item %d = qty %d price %d, want qty %d price %d",
				oi.MenuItemID, oi.Quantity, oi.UnitPrice, want[0], want[1])
		}
	}
}
