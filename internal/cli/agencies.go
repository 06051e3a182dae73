package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"regscope/internal/api"
	"regscope/internal/sortfilter"
)

// ListOptions holds flags for the agencies command
type ListOptions struct {
	Query  string
	Sort   string
	Desc   bool
	Output string
}

// NewAgenciesCommand creates the agencies command
func NewAgenciesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "agencies",
		Short: "List agencies, filtered and sorted",
		Long: `List top-level agencies with their word and section counts.

--query keeps agencies whose name contains the text, ignoring case.
--sort orders by name, word_count, sections or none (API order).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.state(rootOpts)
			if err != nil {
				return err
			}
			out, err := NewOutputFormatter(opts.Output, cmd.OutOrStdout(), rootOpts.Config.Language())
			if err != nil {
				return err
			}
			client, err := rootOpts.newClient()
			if err != nil {
				return err
			}

			agencies, err := client.Agencies(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load agencies: %w", err)
			}
			rows := sortfilter.Apply(agencies, st, sortfilter.NewComparer(rootOpts.Config.Language()))
			rootOpts.Logger.Debug("listing agencies",
				zap.Int("total", len(agencies)),
				zap.Int("shown", len(rows)),
				zap.Stringer("sort", st.SortKey),
				zap.Stringer("direction", st.Direction))
			return out.Agencies(rows)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "only agencies whose name contains this text")
	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "", "sort key: name, word_count, sections or none (default from config)")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "sort descending")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", FormatTable, "output format (table|json|yaml)")

	return cmd
}

// state builds the engine state from flags, falling back to the configured
// initial sort when --sort is not given
func (o *ListOptions) state(rootOpts *RootOptions) (sortfilter.State, error) {
	st, err := rootOpts.Config.InitialSortState()
	if err != nil {
		return sortfilter.State{}, err
	}
	if o.Sort != "" {
		field, err := sortfilter.ParseField(o.Sort)
		if err != nil {
			return sortfilter.State{}, err
		}
		st.SortKey = field
		st.Direction = sortfilter.Ascending
		if o.Desc {
			st.Direction = sortfilter.Descending
		}
	}
	st.Query = o.Query
	return st, nil
}

// NewAgencyCommand creates the agency command
func NewAgencyCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "agency <slug>",
		Short: "Show one agency and its child agencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := NewOutputFormatter(output, cmd.OutOrStdout(), rootOpts.Config.Language())
			if err != nil {
				return err
			}
			client, err := rootOpts.newClient()
			if err != nil {
				return err
			}

			detail, err := client.Agency(cmd.Context(), args[0])
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("agency %q not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to load agency details: %w", err)
			}

			// Children use the same initial order as the dashboard
			st, err := rootOpts.Config.InitialSortState()
			if err != nil {
				return err
			}
			detail.Children = sortfilter.Apply(detail.Children, st, sortfilter.NewComparer(rootOpts.Config.Language()))
			return out.AgencyDetail(detail)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", FormatTable, "output format (table|json|yaml)")
	return cmd
}

// NewStatsCommand creates the stats command
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show total statistics and corrections per year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := NewOutputFormatter(output, cmd.OutOrStdout(), rootOpts.Config.Language())
			if err != nil {
				return err
			}
			client, err := rootOpts.newClient()
			if err != nil {
				return err
			}

			analytics, err := client.Analytics(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load analytics data: %w", err)
			}
			return out.Analytics(analytics)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", FormatTable, "output format (table|json|yaml)")
	return cmd
}
