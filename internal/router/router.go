package router

import (
	"time"

	"github.com/Nejosudo/Restaurante-Mayer/internal/config"
	"github.com/Nejosudo/Restaurante-Mayer/internal/handler"
	"github.com/Nejosudo/Restaurante-Mayer/internal/middleware"
	"github.com/Nejosudo/Restaurante-Mayer/internal/repository"
	"github.com/Nejosudo/Restaurante-Mayer/internal/service"
	"github.com/Nejosudo/Restaurante-Mayer/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	ingredienteRepo := repository.NewIngredienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	ingredienteSvc := service.NewIngredienteService(ingredienteRepo)
	configuracionSvc := service.NewConfiguracionService(configuracionRepo)
	productoSvc := service.NewProductoService(productoRepo, ingredienteRepo, configuracionRepo, rdb)
	menuSvc := service.NewMenuService(productoRepo, categoriaRepo, configuracionSvc, rdb)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, facturaRepo, dispatcher)
	facturaSvc := service.NewFacturaService(facturaRepo, pedidoRepo, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	ingredientesH := handler.NewIngredientesHandler(ingredienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	configuracionH := handler.NewConfiguracionHandler(configuracionSvc)
	menuH := handler.NewMenuHandler(menuSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/v1/menu", menuH.ObtenerMenu)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Perfil — any authenticated user
		v1.GET("/perfil", authH.Perfil)
		v1.PUT("/perfil", authH.ActualizarPerfil)

		// Pedidos — clientes create and consult their own; admin sees everything
		v1.POST("/pedidos", pedidosH.Crear)
		v1.GET("/pedidos", pedidosH.ListarPropios)
		v1.GET("/pedidos/:id", pedidosH.ObtenerPorID)
		v1.GET("/pedidos/:id/factura", facturasH.ObtenerPorPedido)

		// Facturas — ownership enforced in the service layer
		v1.GET("/facturas", facturasH.ListarPropias)
		v1.GET("/facturas/:id/pdf", facturasH.DescargarPDF)

		// Admin-only surface
		admin := v1.Group("", middleware.RequireRole(middleware.RolAdmin))
		{
			prods := admin.Group("/productos")
			{
				prods.POST("", productosH.Crear)
				prods.GET("", productosH.Listar)
				prods.POST("/costeo", productosH.PreviewCosteo)
				prods.GET("/:id", productosH.ObtenerPorID)
				prods.PUT("/:id", productosH.Actualizar)
				prods.DELETE("/:id", productosH.Eliminar)
				prods.PUT("/:id/receta", productosH.GuardarReceta)
				prods.GET("/:id/costeo", productosH.ObtenerCosteo)
			}

			ings := admin.Group("/ingredientes")
			{
				ings.POST("", ingredientesH.Crear)
				ings.GET("", ingredientesH.Listar)
				ings.GET("/:id", ingredientesH.ObtenerPorID)
				ings.PUT("/:id", ingredientesH.Actualizar)
				ings.DELETE("/:id", ingredientesH.Desactivar)
				ings.PUT("/:id/costo", ingredientesH.ActualizarCosto)
				ings.GET("/:id/historial", ingredientesH.ListarHistorial)
			}

			conf := admin.Group("/configuracion")
			{
				conf.GET("", configuracionH.Listar)
				conf.PUT("/:clave", configuracionH.Actualizar)
				conf.POST("/gastos", configuracionH.CrearGastoGlobal)
			}

			cats := admin.Group("/categorias")
			{
				cats.POST("", categoriasH.Crear)
				cats.GET("", categoriasH.Listar)
				cats.PUT("/:id", categoriasH.Actualizar)
				cats.DELETE("/:id", categoriasH.Desactivar)
			}

			admin.GET("/admin/pedidos", pedidosH.ListarTodos)
			admin.PUT("/admin/pedidos/:id/estado", pedidosH.ActualizarEstado)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
