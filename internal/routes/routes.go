package routes

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"nfc-store/internal/controllers"
	"nfc-store/internal/integrations/yookassa"
	"nfc-store/internal/observability"
	"nfc-store/internal/postoffice"
	"nfc-store/internal/postoffice/dadata"
	"nfc-store/internal/postoffice/generated"
	"nfc-store/internal/postoffice/russianpost"
	"nfc-store/internal/repositories"
	"nfc-store/internal/services"
	"nfc-store/pkg/config"
	"nfc-store/pkg/middleware"
	"nfc-store/pkg/service"
	"nfc-store/pkg/telegram"
)

// Deps — внешние зависимости роутера, создаются в main.
type Deps struct {
	DB       *pgxpool.Pool
	Redis    *redis.Client
	JWT      service.JWTService
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

// InitRouter собирает весь граф приложения и навешивает маршруты.
// Возвращает PaymentService: он нужен main ещё и для фоновой сверки.
func InitRouter(e *echo.Echo, cfg *config.Config, deps Deps) (*services.PaymentService, error) {
	logger := deps.Logger
	logger.Info("InitRouter: Начало создания маршрутов")

	metrics := observability.NewMetrics(deps.Registry)

	// --- 1. ИСТОЧНИКИ ОТДЕЛЕНИЙ ---
	// Порядок фиксированный: DaData → официальный API → генерация.
	var sources []postoffice.Source
	var addressSource postoffice.Source
	var suggester services.AddressSuggesterInterface
	var tariffClient services.TariffClientInterface

	if cfg.DaDataEnabled() {
		dadataProvider := dadata.New(cfg.DaData.BaseURL, cfg.DaData.APIKey, logger)
		sources = append(sources, dadataProvider)
		addressSource = dadataProvider
		suggester = dadataProvider
		logger.Info("DaData API подключен: реальные отделения")
	} else {
		logger.Warn("DaData API не настроен")
	}

	if cfg.RussianPostEnabled() {
		rpProvider := russianpost.New(
			cfg.RussianPost.BaseURL,
			cfg.RussianPost.Token,
			cfg.RussianPost.Login,
			cfg.RussianPost.Password,
			logger,
		)
		sources = append(sources, rpProvider)
		tariffClient = rpProvider
		logger.Info("Полный API Почты России подключен")
	} else {
		logger.Warn("API Почты России не настроен, расчёт по упрощённым тарифам")
	}

	sources = append(sources, generated.New())

	// --- 2. РЕПОЗИТОРИИ ---
	orderRepo := repositories.NewOrderRepository(deps.DB, logger)
	cardRepo, err := repositories.NewCardRepository("data/cards", logger)
	if err != nil {
		return nil, err
	}
	cacheRepo := repositories.NewRedisCacheRepository(deps.Redis)

	// --- 3. СЕРВИСЫ ---
	telegramService := telegram.NewService(cfg.Telegram.BotToken)
	yookassaClient := yookassa.New(cfg.YooKassa.BaseURL, cfg.YooKassa.ShopID, cfg.YooKassa.SecretKey, logger)

	deliveryService := services.NewDeliveryService(sources, addressSource, tariffClient, suggester, metrics, logger)
	orderService := services.NewOrderService(orderRepo, cardRepo, telegramService, cfg.Telegram.ChatID, cfg.Server.SiteURL, "data/orders.ndjson", metrics, logger)
	paymentService := services.NewPaymentService(yookassaClient, orderRepo, cfg.Server.SiteURL, metrics, logger)
	promoService := services.NewPromoService(cacheRepo, cfg.Promo.MaxAttempts, cfg.Promo.AttemptsWindow, logger)
	cardService := services.NewCardService(cardRepo)
	adminService := services.NewAdminService(orderRepo, deps.JWT, cfg.Admin.PasswordHash, logger)

	// --- 4. КОНТРОЛЛЕРЫ ---
	deliveryCtrl := controllers.NewDeliveryController(deliveryService, logger)
	orderCtrl := controllers.NewOrderController(orderService, logger)
	cardCtrl := controllers.NewCardController(cardService, logger)
	paymentCtrl := controllers.NewPaymentController(paymentService, logger)
	promoCtrl := controllers.NewPromoController(promoService, logger)
	adminCtrl := controllers.NewAdminController(adminService, logger)

	authMW := middleware.NewAuthMiddleware(deps.JWT, logger)

	// --- 5. МАРШРУТЫ ---
	api := e.Group("/api")

	api.POST("/order", orderCtrl.CreateOrder)
	api.GET("/card/:slug", cardCtrl.FindCard)

	api.POST("/create-payment", paymentCtrl.CreatePayment)
	api.POST("/yookassa-webhook", paymentCtrl.Webhook)
	api.GET("/payment-status/:paymentId", paymentCtrl.PaymentStatus)

	delivery := api.Group("/delivery")
	delivery.GET("/methods", deliveryCtrl.Methods)
	delivery.POST("/calculate", deliveryCtrl.Calculate)
	delivery.GET("/address-suggestions", deliveryCtrl.AddressSuggestions)
	delivery.GET("/offices-by-address", deliveryCtrl.FindOfficesByAddress)
	delivery.GET("/offices/nearby", deliveryCtrl.NearbyOffices)
	delivery.GET("/offices/:postalCode", deliveryCtrl.FindOffices)

	api.POST("/promo/validate", promoCtrl.Validate)

	admin := api.Group("/admin")
	admin.POST("/login", adminCtrl.Login)
	admin.GET("/orders", adminCtrl.GetOrders, authMW.Auth)
	admin.GET("/orders/export", adminCtrl.ExportOrders, authMW.Auth)
	admin.GET("/stats", adminCtrl.GetStats, authMW.Auth)
	admin.PUT("/orders/:id", adminCtrl.UpdateOrder, authMW.Auth)
	admin.DELETE("/orders/:id", adminCtrl.DeleteOrder, authMW.Auth)

	api.GET("/health", func(ctx echo.Context) error {
		if err := deps.DB.Ping(ctx.Request().Context()); err != nil {
			return ctx.JSON(http.StatusInternalServerError, map[string]bool{"ok": false})
		}
		return ctx.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	logger.Info("InitRouter: Маршруты созданы")
	return paymentService, nil
}
