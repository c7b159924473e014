package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentgrind-service/chain"
	"agentgrind-service/conf"
	"agentgrind-service/controller"
	"agentgrind-service/database"
	"agentgrind-service/service/bounty_service"
	"agentgrind-service/service/profile_service"
	"agentgrind-service/service/xauth_service"
)

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "devnet", "Environment: loc/devnet/mainnet")
}

// @title           AgentGrind Service API
// @version         1.0
// @description     Escrow bounty board client API: on-chain bounty decoding, lifecycle transaction building, creator profiles and off-chain metadata.

// @host      localhost:7391
// @BasePath  /

// @schemes https http

func main() {
	srv, cleanup := initAll()
	defer cleanup()

	// Start HTTP API service (in goroutine)
	go startServer(srv)
	log.Println("AgentGrind API service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	log.Println("Shutting down AgentGrind service...")
	shutdownServer(srv)
	log.Println("Server exited")
}

// initEnv initialize environment
func initEnv() {
	switch ENV {
	case "loc":
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	case "mainnet":
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	default:
		conf.SystemEnvironmentEnum = conf.DevnetEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)
}

// initAll initialize all components
func initAll() (*http.Server, func()) {
	flag.Parse()

	initEnv()

	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	log.Printf("Configuration loaded: env=%s, net=%s, port=%s", ENV, conf.Cfg.Net, conf.Cfg.Api.Port)

	if err := initDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Connect ledger client
	ledger := chain.NewClient(conf.Cfg.Chain.RpcUrl)
	log.Printf("Ledger RPC endpoint: %s", conf.Cfg.Chain.RpcUrl)

	// Create services
	bountyService, err := bounty_service.NewBountyServiceFromConfig(ledger)
	if err != nil {
		log.Fatalf("Failed to create bounty service: %v", err)
	}
	profileService, err := profile_service.NewProfileServiceFromConfig(ledger)
	if err != nil {
		log.Fatalf("Failed to create profile service: %v", err)
	}
	xauthService := xauth_service.NewXAuthService()

	router := controller.SetupRouter(bountyService, profileService, xauthService)

	srv := &http.Server{
		Addr:    ":" + conf.Cfg.Api.Port,
		Handler: router,
	}

	cleanup := func() {
		if database.DB != nil {
			if err := database.DB.Close(); err != nil {
				log.Printf("Failed to close database: %v", err)
			}
		}
	}
	return srv, cleanup
}

// initDatabase initialize the metadata store
func initDatabase() error {
	switch database.DBType(conf.Cfg.Database.StoreType) {
	case database.DBTypeMySQL:
		return database.InitDatabase(database.DBTypeMySQL, &database.MySQLConfig{
			Dsn:          conf.Cfg.Database.Dsn,
			MaxOpenConns: conf.Cfg.Database.MaxOpenConns,
			MaxIdleConns: conf.Cfg.Database.MaxIdleConns,
		})
	case database.DBTypePebble:
		return database.InitDatabase(database.DBTypePebble, &database.PebbleConfig{
			DataDir: conf.Cfg.Database.DataDir,
		})
	default:
		return fmt.Errorf("unsupported store type: %s", conf.Cfg.Database.StoreType)
	}
}

// startServer start HTTP service
func startServer(srv *http.Server) {
	log.Printf("API service listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for interrupt signal
func waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

// shutdownServer gracefully shutdown HTTP service
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
