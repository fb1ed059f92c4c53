package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jsfixer/internal/logging"
	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <files...>",
		Short: "Restore files from the backups taken by fix",
		Long: `Put the backup taken before the first fix of each file back in place and
remove the backup. Files without a backup are reported and left alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			env, err := loadConfig(ctx, cmd, &config.Config{})
			if err != nil {
				return err
			}
			mode := fsutil.BackupMode(env.cfg.Backups.Mode)
			if mode == fsutil.BackupModeNone {
				mode = fsutil.BackupModeSidecar
			}

			restored := 0
			for _, path := range args {
				ok, err := fsutil.RestoreBackup(ctx, path, mode)
				if err != nil {
					return fmt.Errorf("restore %s: %w", path, err)
				}
				if !ok {
					env.logger.Warn("no backup found", logging.FieldPath, path)
					continue
				}
				env.logger.Info("restored", logging.FieldPath, path)
				restored++
			}

			env.logger.Debug("restore finished", logging.FieldFiles, restored)
			return nil
		},
	}

	return cmd
}
