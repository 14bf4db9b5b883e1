package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"finderhub/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if strings.TrimSpace(cfg.Notifications.Topic) == "" {
				fmt.Fprintln(out, "Notifications are not configured; set ntfy_topic in the config file")
				return nil
			}

			service := notifications.NewService(cfg)
			payload := notifications.Payload{
				"time": time.Now().Format(time.RFC3339),
			}
			if err := service.Publish(cmd.Context(), notifications.EventTest, payload); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(out, "Test notification sent")
			return nil
		},
	}
}
