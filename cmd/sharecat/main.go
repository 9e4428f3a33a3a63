// Command sharecat queries tables exposed through a data-sharing server.
//
// It needs a share profile file (JSON with endpoint and bearer token):
//
//	sharecat list --profile creds.share
//	sharecat query vendor.sales.orders --profile creds.share --filter "status = 'active'"
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vegasq/sharecat/client"
	"github.com/vegasq/sharecat/reader"
)

var (
	profilePath string
	verbose     bool
)

func main() {
	root := &cobra.Command{
		Use:           "sharecat",
		Short:         "Query tables shared through a data-sharing server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&profilePath, "profile", "", "path to the share profile file (required)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = root.MarkPersistentFlagRequired("profile")

	root.AddCommand(newListCommand(), newQueryCommand(), newSearchCommand(), newAggregateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger. Warnings and errors always show;
// --verbose adds debug output.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// newSharingClient loads the profile and wires the catalog and decoder.
func newSharingClient(log zerolog.Logger) (*client.SharingClient, *client.RestCatalog, error) {
	profile, err := client.LoadProfile(profilePath)
	if err != nil {
		return nil, nil, err
	}
	if profile.Expired(time.Now()) {
		log.Warn().Str("expiration", profile.ExpirationTime).Msg("share profile has expired")
	}

	catalog := client.NewRestCatalog(profile, log)
	return client.NewSharingClient(catalog, reader.NewParquetDecoder(), log), catalog, nil
}

// parseTableRef splits a share.schema.table argument.
func parseTableRef(arg string) (client.TableRef, error) {
	parts := strings.SplitN(arg, ".", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return client.TableRef{}, fmt.Errorf("invalid table reference %q: want share.schema.table", arg)
	}
	return client.TableRef{Share: parts[0], Schema: parts[1], Name: parts[2]}, nil
}
