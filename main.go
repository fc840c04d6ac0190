package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/shelook/storebot/agent/contract"
	llmx "github.com/shelook/storebot/agent/llm"
	notifyx "github.com/shelook/storebot/agent/notify"
	orchestratorx "github.com/shelook/storebot/agent/orchestrator"
	configx "github.com/shelook/storebot/pkg/config"
	_ "github.com/shelook/storebot/pkg/logger/autoload"
	openrouterx "github.com/shelook/storebot/pkg/openrouter"
	pgstorex "github.com/shelook/storebot/pkg/pgstore"
	qstashx "github.com/shelook/storebot/pkg/qstash"
	shopifyx "github.com/shelook/storebot/pkg/shopify"
)

type AppConfig struct {
	RepositoryBackend string `envconfig:"REPOSITORY_BACKEND" split_words:"true" default:"shopify"`
	StorePrefix       string `envconfig:"STORE_PREFIX" split_words:"true" default:"SL"`
	PublicDomain      string `envconfig:"PUBLIC_DOMAIN" split_words:"true" default:"shelook.in"`
	SupportEmail      string `envconfig:"SUPPORT_EMAIL" split_words:"true" default:"support@shelook.com"`
	SupportWebhook    string `envconfig:"SUPPORT_WEBHOOK" split_words:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	client := openrouterx.MustNewClient(*openRouterCfg)

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	resolver, err := llmx.NewResolver(client, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create resolver")
	}

	repo := buildRepository(appCfg.RepositoryBackend)
	notifier := buildNotifier(appCfg.SupportWebhook)

	assistant, err := orchestratorx.New(resolver, repo, notifier, orchestratorx.Config{
		StorePrefix:  appCfg.StorePrefix,
		SupportEmail: appCfg.SupportEmail,
		PublicDomain: appCfg.PublicDomain,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create orchestrator")
	}

	runREPL(assistant)
}

func buildRepository(backend string) contractx.Repository {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "postgres":
		pgCfg := configx.MustNew[pgstorex.Config]("POSTGRES")
		store, err := pgstorex.New(*pgCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("create postgres store")
		}
		return store
	default:
		shopifyCfg := configx.MustNew[shopifyx.Config]("SHOPIFY")
		repo, err := shopifyx.NewClient(*shopifyCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("create shopify client")
		}
		return repo
	}
}

func buildNotifier(webhook string) contractx.Notifier {
	if strings.TrimSpace(webhook) == "" {
		return nil
	}
	qstashCfg := configx.MustNew[qstashx.Config]("QSTASH")
	notifier, err := notifyx.NewSupportNotifier(qstashx.MustNew(*qstashCfg), webhook)
	if err != nil {
		log.Fatal().Err(err).Msg("create support notifier")
	}
	return notifier
}

// runREPL is a minimal console client: it carries the resolved email/order
// id and history across turns the way a stateless HTTP caller would.
func runREPL(assistant *orchestratorx.Orchestrator) {
	scanner := bufio.NewScanner(os.Stdin)
	var (
		email   string
		orderID string
		history []contractx.HistoryEntry
	)

	fmt.Println("SHELOOK assistant ready. Type a message, Ctrl-D to quit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		result, err := assistant.HandleTurn(context.Background(), contractx.Turn{
			Message: message,
			Email:   email,
			OrderID: orderID,
			History: history,
		})
		if err != nil {
			log.Error().Err(err).Msg("turn rejected")
			continue
		}

		fmt.Println(result.Reply)
		email = result.Email
		orderID = result.OrderID
		history = append(history,
			contractx.HistoryEntry{Role: "user", Text: message},
			contractx.HistoryEntry{Role: "assistant", Text: result.Reply},
		)
	}
}
