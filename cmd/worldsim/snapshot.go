package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livingworld/kernel/internal/snapshot"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect saved WorldFile snapshots",
	}
	cmd.AddCommand(snapshotInspectCmd())
	return cmd
}

func snapshotInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect PATH",
		Short: "Print a summary of a saved WorldFile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("version:     %d\n", wf.Version)
			fmt.Printf("seed:        %d\n", wf.Seed)
			fmt.Printf("world_time:  %.3f\n", wf.WorldTime)
			fmt.Printf("tick_count:  %d\n", wf.TickCount)
			fmt.Printf("entities:    %d\n", len(wf.Entities))
			fmt.Printf("fields:      %d\n", len(wf.Fields))
			fmt.Printf("trust rows:  %d\n", len(wf.Trust))
			fmt.Printf("memory logs: %d\n", len(wf.MemoryLogs))
			fmt.Printf("event log:   %d\n", len(wf.EventLog))

			for _, e := range wf.Entities {
				fmt.Printf("  entity %s  material=%s  pos=(%.1f,%.1f)\n", e.ID, e.MaterialID, e.X, e.Y)
			}
			return nil
		},
	}
	return cmd
}
