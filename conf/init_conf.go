package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	// Network configuration
	Net string

	// Ledger configuration
	Chain ChainConfig

	// Database configuration (off-chain metadata store)
	Database DatabaseConfig

	// API configuration
	Api ApiConfig

	// X (Twitter) OAuth configuration
	X XConfig
}

// ChainConfig ledger configuration
type ChainConfig struct {
	RpcUrl      string // Solana RPC endpoint
	ProgramId   string // AgentGrind program address
	Mint        string // Escrow token mint (USDC)
	Treasury    string // Platform fee collection wallet
	KeypairPath string // Local signer keypair (CLI and server-side submits)
}

// DatabaseConfig metadata store configuration
type DatabaseConfig struct {
	StoreType    string // Metadata store type: mysql, pebble
	Dsn          string // MySQL DSN
	MaxOpenConns int    // MySQL max open connections
	MaxIdleConns int    // MySQL max idle connections
	DataDir      string // PebbleDB data directory
}

// ApiConfig API service configuration
type ApiConfig struct {
	Port           string // API service port
	SwaggerBaseUrl string // Swagger API base URL
	PathPrefix     string // Path prefix for reverse proxy (e.g., "/agentgrind")
}

// XConfig X OAuth configuration for handle linking
type XConfig struct {
	ClientId     string
	ClientSecret string
	RedirectUrl  string
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration
func InitConfig() error {
	viper.SetConfigFile(GetYaml())
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("Fatal error config file: %s", err)
	}

	// Create configuration instance
	Cfg = &Config{
		Net: viper.GetString("net"),

		Chain: ChainConfig{
			RpcUrl:      viper.GetString("chain.rpc_url"),
			ProgramId:   viper.GetString("chain.program_id"),
			Mint:        viper.GetString("chain.mint"),
			Treasury:    viper.GetString("chain.treasury"),
			KeypairPath: viper.GetString("chain.keypair_path"),
		},

		Database: DatabaseConfig{
			StoreType:    viper.GetString("database.store_type"),
			Dsn:          viper.GetString("database.dsn"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			DataDir:      viper.GetString("database.data_dir"),
		},

		Api: ApiConfig{
			Port:           viper.GetString("api.port"),
			SwaggerBaseUrl: viper.GetString("api.swagger_base_url"),
			PathPrefix:     viper.GetString("api.path_prefix"),
		},

		X: XConfig{
			ClientId:     viper.GetString("x.client_id"),
			ClientSecret: viper.GetString("x.client_secret"),
			RedirectUrl:  viper.GetString("x.redirect_url"),
		},
	}

	// Set default values
	if Cfg.Chain.RpcUrl == "" {
		Cfg.Chain.RpcUrl = "https://api.devnet.solana.com"
	}
	if Cfg.Chain.ProgramId == "" {
		Cfg.Chain.ProgramId = DefaultProgramId
	}
	if Cfg.Chain.Mint == "" {
		Cfg.Chain.Mint = UsdcMintDevnet
	}
	if Cfg.Api.Port == "" {
		Cfg.Api.Port = "7391"
	}
	if Cfg.Api.SwaggerBaseUrl == "" {
		Cfg.Api.SwaggerBaseUrl = "localhost:" + Cfg.Api.Port
	}
	if Cfg.Database.StoreType == "" {
		Cfg.Database.StoreType = "pebble"
	}
	if Cfg.Database.DataDir == "" {
		Cfg.Database.DataDir = "./metadata_db"
	}
	if Cfg.Database.MaxOpenConns == 0 {
		Cfg.Database.MaxOpenConns = 100
	}
	if Cfg.Database.MaxIdleConns == 0 {
		Cfg.Database.MaxIdleConns = 10
	}

	return nil
}
