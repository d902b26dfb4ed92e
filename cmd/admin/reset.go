package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetProgressCmd = &cobra.Command{
	Use:   "reset-progress",
	Short: "Delete a learner's progress and reset their profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		deleted, err := newAdminService(db).ResetProgress(cmd.Context(), email)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d progress rows for %s\n", deleted, email)
		return nil
	},
}

func init() {
	resetProgressCmd.Flags().String("email", "", "Learner email")
	_ = resetProgressCmd.MarkFlagRequired("email")
}
