package main

import (
	"errors"
	"fmt"

	"lingo-days/internal/content"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert lessons by day from a JSON seed file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		lessons, err := content.LoadSeedFile(path)
		if err != nil {
			return err
		}

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := newAdminService(db).SeedLessons(cmd.Context(), lessons)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d lessons\n", n)
		return nil
	},
}

var importVocabCmd = &cobra.Command{
	Use:   "import-vocab",
	Short: "Import vocabulary for one day from an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		day, _ := cmd.Flags().GetInt("day")
		replace, _ := cmd.Flags().GetBool("replace")
		sheetName, _ := cmd.Flags().GetString("sheet")

		sheet := content.DefaultVocabularySheet()
		if sheetName != "" {
			sheet.SheetName = sheetName
		}
		items, result, err := content.ReadVocabularyXLSX(path, sheet)
		if err != nil {
			return err
		}
		for _, rowErr := range result.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "skipped:", rowErr)
		}
		if len(items) == 0 {
			return errors.New("workbook has no vocabulary rows")
		}

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		added, err := newAdminService(db).ImportVocabulary(cmd.Context(), day, items, replace)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "day %d: %d words added, %d rows skipped\n", day, added, result.Skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("file", "", "Path to the lessons JSON file")
	_ = seedCmd.MarkFlagRequired("file")

	importVocabCmd.Flags().String("file", "", "Path to the .xlsx workbook")
	importVocabCmd.Flags().Int("day", 0, "Lesson day (1-30)")
	importVocabCmd.Flags().Bool("replace", false, "Overwrite the day's vocabulary instead of merging")
	importVocabCmd.Flags().String("sheet", "", "Sheet name (default Sheet1)")
	_ = importVocabCmd.MarkFlagRequired("file")
	_ = importVocabCmd.MarkFlagRequired("day")
}
