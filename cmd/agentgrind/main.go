package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"

	"agentgrind-service/chain"
	"agentgrind-service/conf"
	"agentgrind-service/service/bounty_service"
	"agentgrind-service/service/profile_service"
)

// Agent-side command line client: browse the board, claim work, submit proof.
// Creator actions go through the API service; this tool covers what an agent
// automates.

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "devnet", "Environment: loc/devnet/mainnet")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: agentgrind [-env devnet] <command> [args]

Commands:
  list                                     list all bounties
  status <creator> <bounty_id>             show one bounty
  claim <creator> <bounty_id>              claim an open bounty
  submit-proof <creator> <bounty_id> <url> submit proof for a claimed bounty
  abandon <creator> <bounty_id>            release a claimed bounty
  profile <wallet>                         show a creator profile
`)
	os.Exit(2)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	switch ENV {
	case "loc":
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	case "mainnet":
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	default:
		conf.SystemEnvironmentEnum = conf.DevnetEnvironmentEnum
	}
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	ledger := chain.NewClient(conf.Cfg.Chain.RpcUrl)
	bountyService, err := bounty_service.NewBountyServiceFromConfig(ledger)
	if err != nil {
		log.Fatalf("Failed to create bounty service: %v", err)
	}
	profileService, err := profile_service.NewProfileServiceFromConfig(ledger)
	if err != nil {
		log.Fatalf("Failed to create profile service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	switch args[0] {
	case "list":
		views, err := bountyService.ListBounties(ctx)
		if err != nil {
			log.Fatalf("list: %v", err)
		}
		printJSON(views)

	case "status":
		creator, bountyID := parseSeedArgs(args, 3)
		view, err := bountyService.GetBounty(ctx, creator, bountyID)
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		printJSON(view)

	case "claim":
		creator, bountyID := parseSeedArgs(args, 3)
		signer := loadSigner()
		tx, err := bountyService.BuildClaim(ctx, signer.PublicKey(), creator, bountyID)
		if err != nil {
			log.Fatalf("claim: %v", err)
		}
		submit(ctx, bountyService, tx, signer)

	case "submit-proof":
		if len(args) != 4 {
			usage()
		}
		creator, bountyID := parseSeedArgs(args[:3], 3)
		signer := loadSigner()
		tx, err := bountyService.BuildSubmitProof(ctx, signer.PublicKey(), creator, bountyID, args[3])
		if err != nil {
			log.Fatalf("submit-proof: %v", err)
		}
		submit(ctx, bountyService, tx, signer)

	case "abandon":
		creator, bountyID := parseSeedArgs(args, 3)
		signer := loadSigner()
		tx, err := bountyService.BuildAbandon(ctx, signer.PublicKey(), creator, bountyID)
		if err != nil {
			log.Fatalf("abandon: %v", err)
		}
		submit(ctx, bountyService, tx, signer)

	case "profile":
		if len(args) != 2 {
			usage()
		}
		wallet, err := solana.PublicKeyFromBase58(args[1])
		if err != nil {
			log.Fatalf("invalid wallet: %v", err)
		}
		view, err := profileService.GetProfile(ctx, wallet)
		if err != nil {
			log.Fatalf("profile: %v", err)
		}
		printJSON(view)

	default:
		usage()
	}
}

func parseSeedArgs(args []string, want int) (solana.PublicKey, string) {
	if len(args) != want {
		usage()
	}
	creator, err := solana.PublicKeyFromBase58(args[1])
	if err != nil {
		log.Fatalf("invalid creator: %v", err)
	}
	return creator, args[2]
}

func loadSigner() solana.PrivateKey {
	path := conf.Cfg.Chain.KeypairPath
	if path == "" {
		log.Fatal("chain.keypair_path not configured")
	}
	signer, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		log.Fatalf("load keypair %s: %v", path, err)
	}
	return signer
}

func submit(ctx context.Context, svc *bounty_service.BountyService, tx *chain.UnsignedTx, signer solana.PrivateKey) {
	sig, err := svc.Submit(ctx, tx, signer)
	if err != nil {
		log.Fatalf("submit: %v", err)
	}
	printJSON(map[string]string{"signature": sig.String()})
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(out))
}
