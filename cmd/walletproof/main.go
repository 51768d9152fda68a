package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/veridian-labs/walletproof/adapters/events"
	"github.com/veridian-labs/walletproof/adapters/ledger"
	"github.com/veridian-labs/walletproof/adapters/signer"
	"github.com/veridian-labs/walletproof/adapters/store"
	"github.com/veridian-labs/walletproof/adapters/tokenizer"
	"github.com/veridian-labs/walletproof/core"
	"github.com/veridian-labs/walletproof/ports"
	"github.com/veridian-labs/walletproof/service"
	"github.com/veridian-labs/walletproof/transport/http"
)

func main() {
	// Generate a fresh ES256 key for challenge envelope tokens (you would
	// normally load this from somewhere secure)
	envelopeKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic(err)
	}

	signingMode := core.SigningModeReal
	if os.Getenv("SIGNING_MODE") == string(core.SigningModeMock) {
		signingMode = core.SigningModeMock
		log.Println("Warning: mock signing mode enabled, do not use in production")
	}

	didMethod := os.Getenv("DID_METHOD")
	if didMethod == "" {
		didMethod = core.DefaultDIDMethod
	}

	challengeTTL := core.DefaultChallengeTTL
	if raw := os.Getenv("CHALLENGE_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Fatalf("Invalid CHALLENGE_TTL_SECONDS: %q", raw)
		}
		challengeTTL = time.Duration(seconds) * time.Second
	}

	// Get Redis URL from environment
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)

	// Initialize Watermill Redis publisher
	logger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	jwtTokenizer := tokenizer.NewJWTTokenizer(envelopeKey)
	nonceStore := store.NewRedisNonceStore(redisClient)
	eventPub := events.NewWatermillPublisher(publisher)

	// Holder keys stay with the holders in production: the issuer only
	// signs locally in mock mode, with an explicitly flagged signature.
	var holderSigner ports.Signer
	if signingMode == core.SigningModeMock {
		holderSigner = signer.FailingSigner{}
	}

	issuer := service.NewIssuer(service.IssuerConfig{
		DIDMethod:    didMethod,
		ChallengeTTL: challengeTTL,
		SigningMode:  signingMode,
		ServiceURL:   os.Getenv("SERVICE_URL"),
	}, holderSigner, jwtTokenizer)

	credentials := service.NewCredentialIssuer(service.CredentialConfig{
		IssuerDID: core.BuildDID(didMethod, "wallet-verifier"),
	})

	verifierOpts := []service.VerifierOption{
		service.WithTokenizer(jwtTokenizer),
		service.WithCorroborator(service.NewOwnershipCorroborator()),
		service.WithEventPublisher(eventPub),
	}

	var ledgerAdapter ports.Ledger
	if url := os.Getenv("LEDGER_RPC_URL"); url != "" {
		eth, err := ledger.Dial(url, ledger.DefaultLookupTimeout)
		if err != nil {
			log.Fatalf("Failed to connect to ledger node: %v", err)
		}
		ledgerAdapter = eth
		verifierOpts = append(verifierOpts, service.WithLedger(eth))
	}

	verifier := service.NewVerifier(service.VerifierConfig{
		DIDMethod:          didMethod,
		RequireSignature:   true,
		AllowMockSignature: signingMode == core.SigningModeMock,
		MinReplayTTL:       challengeTTL,
	}, signer.NewECDSAVerifier(), nonceStore, credentials, verifierOpts...)

	router := http.SetupRouter(issuer, verifier, ledgerAdapter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
