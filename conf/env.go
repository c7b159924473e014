package conf

// Environment environment type
type Environment string

const (
	LocalEnvironmentEnum   Environment = "loc"
	DevnetEnvironmentEnum  Environment = "devnet"
	MainnetEnvironmentEnum Environment = "mainnet"
)

// SystemEnvironmentEnum current system environment, set from the -env flag
var SystemEnvironmentEnum = DevnetEnvironmentEnum

// Program constants
const (
	// DefaultProgramId AgentGrind program address (devnet)
	DefaultProgramId = "HMUV19dpEUPxjSYdqnp4usgcsjHp6WrZ5ijutmKXcTDz"

	// UsdcMintMainnet USDC mint address (mainnet)
	UsdcMintMainnet = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	// UsdcMintDevnet USDC mint address (devnet)
	UsdcMintDevnet = "Gh9ZwEmdLJ8DscKNTkTqPbNwLNNBjuSzaG9Vp2KGtKJr"
)

// GetYaml get configuration file path for current environment
func GetYaml() string {
	switch SystemEnvironmentEnum {
	case LocalEnvironmentEnum:
		return "./config_loc.yaml"
	case MainnetEnvironmentEnum:
		return "./config_mainnet.yaml"
	default:
		return "./config_devnet.yaml"
	}
}
