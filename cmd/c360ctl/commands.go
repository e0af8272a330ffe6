package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Raymond9734/customer360-backend/internal/service"
)

func newSearchCmd(opts *cliOptions) *cobra.Command {
	var selectID string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "List customers matching a search box query",
		Long: `Matches the query the way the agent search box does: names, email and
premise addresses ignore case; business partner ID, phone and account
numbers must match as typed. Queries shorter than two characters match nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.services(cmd)
			if err != nil {
				return err
			}

			session := service.NewSearchSession(svc.dataset.Customers, svc.labels, nil)
			matches := session.Type(args[0])
			out := cmd.OutOrStdout()

			if session.State() == service.SessionIdle {
				fmt.Fprintf(out, "query must be at least %d characters\n", service.MinQueryLength)
				return nil
			}

			if selectID != "" {
				if _, err := session.Select(cmd.Context(), selectID); err != nil {
					return err
				}
				fmt.Fprintln(out, session.Query())
				return nil
			}

			if len(matches) == 0 {
				fmt.Fprintln(out, "no matching customers")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBP ID\tNAME\tPHONE\tACCOUNTS\tADDRESS")
			for i := range matches {
				s := service.NewCustomerSummary(&matches[i])
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.BusinessPartnerID, s.Name, s.Phone,
					strings.Join(s.AccountNumbers, ","), s.PrimaryAddress)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&selectID, "select", "", "select this customer ID from the matches and print its label")
	return cmd
}

func newShowCmd(opts *cliOptions) *cobra.Command {
	var byBP bool

	cmd := &cobra.Command{
		Use:   "show <customer-id>",
		Short: "Print the 360 overview of a customer as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.services(cmd)
			if err != nil {
				return err
			}

			id := args[0]
			if byBP {
				customer, err := svc.customers.GetByBusinessPartnerID(cmd.Context(), id)
				if err != nil {
					return err
				}
				id = customer.ID
			}

			overview, err := svc.customers.GetOverview(cmd.Context(), id)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(overview)
		},
	}

	cmd.Flags().BoolVar(&byBP, "bp", false, "treat the argument as a business partner ID")
	return cmd
}

func newProgramsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "Print the opportunities dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.services(cmd)
			if err != nil {
				return err
			}

			programs, err := svc.opportunity.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tELIGIBLE\tENROLLED\tDECLINED")
			for _, p := range programs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
					p.ID, p.Name, p.Status, p.Eligible, p.Enrolled, p.Declined)
			}
			return w.Flush()
		},
	}
}

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			var outstanding int64
			for _, bills := range dataset.Bills {
				for _, b := range bills {
					if b.IsOutstanding() {
						outstanding += b.AmountCents
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d customers, %d programs, %s outstanding\n",
				len(dataset.Customers), len(dataset.Programs), formatCents(outstanding))
			return nil
		},
	}
}
