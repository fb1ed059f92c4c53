package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsfixer/pkg/cache"
	"github.com/yaklabco/jsfixer/pkg/config"
)

func newCacheCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the analysis cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "cache directory (default $XDG_CACHE_HOME/jsfixer)")

	openConfigured := func(cmd *cobra.Command) (*cache.Cache, error) {
		env, err := loadConfig(commandContext(cmd), cmd, &config.Config{Cache: config.CacheConfig{Dir: dir}})
		if err != nil {
			return nil, err
		}
		c, err := cache.Open(env.cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return c, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openConfigured(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Dir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached analysis result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openConfigured(cmd)
			if err != nil {
				return err
			}
			removed, err := c.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached %s from %s\n", removed, plural(removed, "entry", "entries"), c.Dir())
			return nil
		},
	})

	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
