package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leetwinoff/Airport-API-Service/config"
	"github.com/leetwinoff/Airport-API-Service/internal/handlers"
	"github.com/leetwinoff/Airport-API-Service/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	SetupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

// SetupRoutes wires all endpoints. Reads require authentication; catalog
// mutations additionally require the admin role.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
		public.POST("/token/refresh", handlers.RefreshToken)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/me", handlers.GetProfile)
		protected.PUT("/me", handlers.UpdateProfile)
		protected.POST("/logout", handlers.Logout)

		protected.GET("/crew-positions", handlers.ListCrewPositions)
		protected.GET("/crew-positions/:id", handlers.GetCrewPosition)
		protected.GET("/crews", handlers.ListCrew)
		protected.GET("/crews/:id", handlers.GetCrew)
		protected.GET("/airports", handlers.ListAirports)
		protected.GET("/airports/:id", handlers.GetAirport)
		protected.GET("/routes", handlers.ListRoutes)
		protected.GET("/routes/:id", handlers.GetRoute)
		protected.GET("/airplane-types", handlers.ListAirplaneTypes)
		protected.GET("/airplane-types/:id", handlers.GetAirplaneType)
		protected.GET("/airplanes", handlers.ListAirplanes)
		protected.GET("/airplanes/:id", handlers.GetAirplane)
		protected.GET("/flights", handlers.ListFlights)
		protected.GET("/flights/:id", handlers.GetFlight)

		protected.GET("/orders", handlers.ListOrders)
		protected.POST("/orders", handlers.CreateOrder)
		protected.GET("/orders/:id", handlers.GetOrder)
		protected.POST("/orders/:id/tickets", handlers.AppendTickets)

		protected.GET("/tickets", handlers.ListTickets)
		protected.POST("/tickets", handlers.CreateTicket)
		protected.GET("/tickets/:id", handlers.GetTicket)
		protected.GET("/tickets/:id/qr", handlers.TicketQR)
	}

	admin := r.Group("/v1")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminRequired())
	{
		admin.POST("/crew-positions", handlers.CreateCrewPosition)
		admin.PUT("/crew-positions/:id", handlers.UpdateCrewPosition)
		admin.DELETE("/crew-positions/:id", handlers.DeleteCrewPosition)

		admin.POST("/crews", handlers.CreateCrew)
		admin.PUT("/crews/:id", handlers.UpdateCrew)
		admin.DELETE("/crews/:id", handlers.DeleteCrew)

		admin.POST("/airports", handlers.CreateAirport)
		admin.PUT("/airports/:id", handlers.UpdateAirport)
		admin.DELETE("/airports/:id", handlers.DeleteAirport)

		admin.POST("/routes", handlers.CreateRoute)
		admin.PUT("/routes/:id", handlers.UpdateRoute)
		admin.DELETE("/routes/:id", handlers.DeleteRoute)

		admin.POST("/airplane-types", handlers.CreateAirplaneType)
		admin.PUT("/airplane-types/:id", handlers.UpdateAirplaneType)
		admin.DELETE("/airplane-types/:id", handlers.DeleteAirplaneType)

		admin.POST("/airplanes", handlers.CreateAirplane)
		admin.PUT("/airplanes/:id", handlers.UpdateAirplane)
		admin.DELETE("/airplanes/:id", handlers.DeleteAirplane)

		admin.POST("/flights", handlers.CreateFlight)
		admin.PUT("/flights/:id", handlers.UpdateFlight)
		admin.DELETE("/flights/:id", handlers.DeleteFlight)
	}
}
