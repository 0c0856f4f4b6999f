package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"nepbet-backend/internal/config"
	"nepbet-backend/internal/games"
	"nepbet-backend/internal/handlers"
	"nepbet-backend/internal/middleware"
	"nepbet-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if cfg.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	var store services.Store
	if cfg.RedisURL != "" {
		rs, err := services.NewRedisStore(cfg.RedisURL, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rs.Close()
		store = rs
		log.Info().Str("addr", cfg.RedisURL).Msg("Using Redis store")
	} else {
		fs, err := services.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open data directory")
		}
		store = fs
		log.Info().Str("dir", cfg.DataDir).Msg("Using file store")
	}

	ledger := services.NewLedger(store, services.LedgerLimits{
		MinDeposit:  cfg.MinDeposit,
		MaxDeposit:  cfg.MaxDeposit,
		MinWithdraw: cfg.MinWithdraw,
	}, time.Now)
	authService := services.NewAuthService(store, cfg.AdminUser, cfg.AdminPass)
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	history := services.NewHistory()
	supportService := services.NewSupportService(store, nil, time.Now)

	wsHandler := handlers.NewWebSocketHandler(ledger)

	deps := games.Deps{
		Wallet:  ledger,
		History: history,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:     time.Now,
		MinBet:  cfg.MinBet,
	}
	crashEngine := games.NewCrashEngine(deps, wsHandler)
	engines := handlers.Engines{
		Crash:    crashEngine,
		Mines:    games.NewMinesEngine(deps),
		Dice:     games.NewDiceEngine(deps),
		Crystals: games.NewCrystalsEngine(deps),
		Solitra:  games.NewSolitraEngine(deps),
		Vampire:  games.NewVampireEngine(deps),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			crashEngine.CleanupStale(10 * time.Minute)
		}
	}()
	defer crashEngine.Stop()

	authHandler := handlers.NewAuthHandler(authService, jwtService, history)
	walletHandler := handlers.NewWalletHandler(ledger, authService)
	gameHandler := handlers.NewGameHandler(engines, history)
	adminHandler := handlers.NewAdminHandler(ledger, authService, supportService)
	supportHandler := handlers.NewSupportHandler(supportService, authService, ledger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/logout", authHandler.Logout)
		protected.PUT("/kyc", authHandler.UpdateKyc)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		wallet := protected.Group("/wallet")
		{
			wallet.GET("/balance", walletHandler.GetBalance)
			wallet.POST("/deposit", walletHandler.Deposit)
			wallet.POST("/withdraw", walletHandler.Withdraw)
			wallet.GET("/transactions", walletHandler.GetTransactions)
		}

		support := protected.Group("/support")
		{
			support.POST("/tickets", supportHandler.CreateTicket)
			support.POST("/chat", supportHandler.Chat)
		}

		gamesGroup := protected.Group("/games")
		{
			gamesGroup.GET("/history", gameHandler.GetHistory)

			crash := gamesGroup.Group("/crash")
			{
				crash.POST("/start", gameHandler.StartCrash)
				crash.POST("/cashout", gameHandler.CashoutCrash)
			}

			mines := gamesGroup.Group("/mines")
			{
				mines.POST("/start", gameHandler.StartMines)
				mines.POST("/reveal", gameHandler.RevealMine)
				mines.POST("/cashout", gameHandler.CashoutMines)
			}

			dice := gamesGroup.Group("/dice")
			{
				dice.POST("/play", gameHandler.PlayDice)
			}

			crystals := gamesGroup.Group("/crystals")
			{
				crystals.POST("/spin", gameHandler.SpinCrystals)
			}

			solitra := gamesGroup.Group("/solitra")
			{
				solitra.POST("/start", gameHandler.StartSolitra)
				solitra.POST("/guess", gameHandler.GuessSolitra)
				solitra.POST("/cashout", gameHandler.CashoutSolitra)
			}

			vampire := gamesGroup.Group("/vampire")
			{
				vampire.POST("/smash", gameHandler.SmashVampire)
			}
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/deposits", adminHandler.PendingDeposits)
			admin.GET("/withdrawals", adminHandler.PendingWithdrawals)
			admin.POST("/transactions/:id/approve", adminHandler.ApproveTransaction)
			admin.POST("/transactions/:id/reject", adminHandler.RejectTransaction)
			admin.GET("/transactions", adminHandler.SearchTransactions)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/tickets", adminHandler.ListTickets)
		}
	}

	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
