package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/configs"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/controllers"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/middlewares"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/services"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, events []services.OrderEvents, hub *ws.OrderHub) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"msg": "ok", "data": nil, "status": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(db, restRepo, menuRepo, userRepo)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, menuRepo)
	orderSvc.Events = events

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc)
	menuCtrl := controllers.NewMenuController(restSvc, menuRepo)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	adminCtrl := controllers.NewAdminController(userRepo)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	aAuth := a.Group("", middlewares.AuthMiddleware())
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Catalog (public reads)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/menu-items", menuCtrl.ListByRestaurant)
	r.GET("/menu-items/:id", menuCtrl.Get)

	// Cart + orders (any authenticated user, own rows only)
	u := r.Group("/", middlewares.AuthMiddleware())
	{
		u.GET("/cart", cartCtrl.Get)
		u.POST("/cart/items", cartCtrl.Add)
		u.PATCH("/cart/items/:id", cartCtrl.UpdateQty)
		u.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		u.DELETE("/cart", cartCtrl.Clear)

		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders", orderCtrl.List)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.PATCH("/orders/:id", orderCtrl.Update)
		u.DELETE("/orders/:id", orderCtrl.Cancel)
	}

	// Owner catalog management
	owner := r.Group("/owner", middlewares.AuthMiddleware(entity.RoleOwner, entity.RoleAdmin))
	{
		owner.GET("/restaurants", restCtrl.ListMine)
		owner.POST("/restaurants", restCtrl.Create)
		owner.PATCH("/restaurants/:id", restCtrl.Update)
		owner.DELETE("/restaurants/:id", restCtrl.Delete)

		owner.POST("/restaurants/:id/menu-items", menuCtrl.Create)
		owner.PATCH("/menu-items/:id", menuCtrl.Update)
		owner.DELETE("/menu-items/:id", menuCtrl.Delete)
	}

	// Admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(entity.RoleAdmin))
	{
		admin.GET("/users", adminCtrl.Users)
		admin.PATCH("/users/:id/role", adminCtrl.ReassignRole)
	}

	// Live order status
	r.GET("/ws/orders/:id", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
