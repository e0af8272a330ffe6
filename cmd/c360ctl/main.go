// Command c360ctl inspects a customer 360 dataset from the terminal.
//
//	c360ctl search ortiz
//	c360ctl search 99887 --select c-001
//	c360ctl show c-003
//	c360ctl programs
//	c360ctl validate --fixture ./dataset.json
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Raymond9734/customer360-backend/internal/fixture"
	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/repository"
	"github.com/Raymond9734/customer360-backend/internal/service"
)

type cliOptions struct {
	fixturePath   string
	labelTemplate string
	verbose       bool
}

// services is what every subcommand needs from one loaded dataset
type services struct {
	dataset     *models.Dataset
	customers   service.CustomerService
	opportunity service.OpportunityService
	labels      service.LabelService
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:          "c360ctl",
		Short:        "Query a customer 360 dataset",
		Long:         `Searches customers, prints 360 overviews and program tallies, and validates dataset files.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.fixturePath, "fixture", "", "dataset JSON file (default: built-in demo dataset)")
	root.PersistentFlags().StringVar(&opts.labelTemplate, "label-template", "", "selection label template (default: "+service.DefaultLabelTemplate+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newSearchCmd(opts),
		newShowCmd(opts),
		newProgramsCmd(opts),
		newValidateCmd(opts),
	)

	return root
}

func (o *cliOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (o *cliOptions) load(ctx context.Context) (*models.Dataset, error) {
	if o.fixturePath == "" {
		return fixture.Load(ctx, fixture.Options{Source: fixture.SourceEmbedded})
	}
	return fixture.Load(ctx, fixture.Options{Source: fixture.SourceFile, Path: o.fixturePath})
}

func (o *cliOptions) services(cmd *cobra.Command) (*services, error) {
	dataset, err := o.load(cmd.Context())
	if err != nil {
		return nil, err
	}

	labels, err := service.NewLabelService(service.NewTemplateService(), o.labelTemplate)
	if err != nil {
		return nil, err
	}

	logger := o.logger(cmd)
	customerRepo := repository.NewCustomerRepository(dataset)
	programRepo := repository.NewProgramRepository(dataset)

	return &services{
		dataset:     dataset,
		customers:   service.NewCustomerService(customerRepo, repository.NewAccountRepository(dataset), programRepo, logger),
		opportunity: service.NewOpportunityService(programRepo, customerRepo, logger),
		labels:      labels,
	}, nil
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
