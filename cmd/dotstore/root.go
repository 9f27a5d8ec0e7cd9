package dotstore

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotstore/internal/version"
	"github.com/arthur-debert/dotstore/pkg/commands/add"
	"github.com/arthur-debert/dotstore/pkg/commands/initialize"
	storesync "github.com/arthur-debert/dotstore/pkg/commands/sync"
	"github.com/arthur-debert/dotstore/pkg/logging"
	"github.com/arthur-debert/dotstore/pkg/paths"
)

// NewRootCmd creates and returns the root command. The operation flags
// map one-to-one onto the store operations: --init, --sync, --add.
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		initURL   string
		directory string
		doSync    bool
		addPath   string
	)

	rootCmd := &cobra.Command{
		Use:     "dotstore",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			switch {
			case initURL != "":
				result, err := initialize.Initialize(ctx, initialize.Options{
					RemoteURL: initURL,
					TargetDir: directory,
				})
				if err != nil {
					return err
				}
				successPrinter().Printfln(MsgStoreInitialized, formatBold(result.StoreRoot), len(result.Linked))
				for _, entry := range result.Linked {
					fmt.Fprintf(cmd.OutOrStdout(), MsgLinkedItem, entry.LinkPath, entry.StorePath)
				}
				return nil

			case doSync:
				result, err := storesync.Sync(ctx, storesync.Options{})
				if err != nil {
					return err
				}
				successPrinter().Printfln(MsgStoreSynced, len(result.Linked))
				return nil

			case addPath != "":
				result, err := add.Add(ctx, add.Options{Path: addPath})
				if err != nil {
					return err
				}
				successPrinter().Printfln(MsgPathAdded, formatBold(result.SourcePath), result.RelPath)
				return nil

			default:
				_ = cmd.Help()
				return fmt.Errorf("no operation specified (use --init, --sync or --add)")
			}
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().StringVar(&initURL, "init", "", MsgFlagInit)
	rootCmd.Flags().StringVarP(&directory, "directory", "d", "~/"+paths.DefaultStoreDir, MsgFlagDirectory)
	rootCmd.Flags().BoolVar(&doSync, "sync", false, MsgFlagSync)
	rootCmd.Flags().StringVar(&addPath, "add", "", MsgFlagAdd)
	rootCmd.MarkFlagsMutuallyExclusive("init", "sync", "add")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dotstore version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}
