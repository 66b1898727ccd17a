package cli

import (
	"github.com/urfave/cli/v2"

	"invoicegen-cli/api"
	"invoicegen-cli/config"
	"invoicegen-cli/logger"
	"invoicegen-cli/session"
)

// env bundles the pieces every command needs. Each CLI invocation runs
// exactly one command, so requests are serialized by construction.
type env struct {
	cfg    config.Config
	store  session.Store
	client *api.Client
	log    *logger.Logger
}

// NewApp wires the command tree. Commands are the CLI's "views": they
// collect input into a draft, hand it to the access client, and render
// the normalized result.
func NewApp() *cli.App {
	log := logger.New()
	cfg := config.Load()
	store := session.NewFileStore(cfg.SessionFile)
	e := &env{
		cfg:    cfg,
		store:  store,
		client: api.New(cfg, store, log),
		log:    log,
	}

	return &cli.App{
		Name:  "invoicegen",
		Usage: "create, list, edit and delete invoices against the invoice service",
		Commands: []*cli.Command{
			e.signupCommand(),
			e.loginCommand(),
			e.logoutCommand(),
			e.whoamiCommand(),
			e.createCommand(),
			e.listCommand(),
			e.updateCommand(),
			e.deleteCommand(),
			e.exportCommand(),
		},
	}
}
