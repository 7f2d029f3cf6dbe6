package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kozaktomas/face-attendance/internal/fingerprint"
	"github.com/kozaktomas/face-attendance/internal/profiles"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage registered reference photos",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered identities in match order",
	Args:  cobra.NoArgs,
	RunE:  runProfilesList,
}

var profilesAddCmd = &cobra.Command{
	Use:   "add <name> <photo-file>",
	Short: "Register or replace the reference photo for a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfilesAdd,
}

var profilesImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Register every image in a directory, named after its file",
	Long: `Register every .jpg, .jpeg and .png file in a directory. The identity is
taken from the filename with underscores read as spaces, so "Ada_Lovelace.png"
registers "Ada Lovelace".`,
	Args: cobra.ExactArgs(1),
	RunE: runProfilesImport,
}

var profilesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove the reference photo for a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesRemove,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd, profilesAddCmd, profilesImportCmd, profilesRemoveCmd)

	profilesListCmd.Flags().Bool("json", false, "Output as JSON")
	profilesImportCmd.Flags().Bool("json", false, "Output as JSON")
}

// ProfileOutput is one identity in `profiles list --json`.
type ProfileOutput struct {
	Identity string `json:"identity"`
	Filename string `json:"filename"`
}

// ImportResult reports a `profiles import` run.
type ImportResult struct {
	Imported   int      `json:"imported"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

func openStore() (*profiles.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return profiles.Open(cfg.Storage.ProfilesDir)
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	store, err := openStore()
	if err != nil {
		return err
	}
	list, err := store.List()
	if err != nil {
		return err
	}

	if jsonOutput {
		out := make([]ProfileOutput, 0, len(list))
		for _, p := range list {
			out = append(out, ProfileOutput{Identity: p.Identity, Filename: p.Filename})
		}
		return outputJSON(out)
	}

	if len(list) == 0 {
		fmt.Printf("No profiles registered in %s\n", store.Dir())
		return nil
	}
	for i, p := range list {
		fmt.Printf("%3d. %-30s %s\n", i+1, p.Identity, p.Filename)
	}
	fmt.Printf("\n%d profiles\n", len(list))
	return nil
}

// readUsablePhoto reads a photo file and checks that it decodes, so a broken
// file is rejected at registration instead of being skipped at every match.
func readUsablePhoto(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	if _, err := fingerprint.Normalize(data, fingerprint.DefaultOptions()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func runProfilesAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	data, err := readUsablePhoto(args[1])
	if err != nil {
		return err
	}
	profile, err := store.Save(args[0], data)
	if err != nil {
		return err
	}
	fmt.Printf("%s added to database (%s)\n", profile.Identity, profile.Filename)
	return nil
}

func runProfilesImport(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	store, err := openStore()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(args[0])
	if err != nil {
		return fmt.Errorf("reading import directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && profiles.IsImageFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no images found in %s", args[0])
	}

	var bar *progressbar.ProgressBar
	if !jsonOutput {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Importing profiles"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("photos"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionFullWidth(),
		)
	}

	start := time.Now()
	result := importProfiles(cmd.Context(), store, args[0], files, func() {
		if bar != nil {
			bar.Add(1)
		}
	})
	result.DurationMs = time.Since(start).Milliseconds()

	if jsonOutput {
		return outputJSON(result)
	}

	fmt.Println("\nImport complete!")
	fmt.Printf("  Imported: %d\n", result.Imported)
	fmt.Printf("  Failed:   %d\n", result.Failed)
	for _, e := range result.Errors {
		fmt.Printf("    %s\n", e)
	}
	fmt.Printf("  Duration: %s\n", formatDuration(time.Since(start)))
	return nil
}

// importProfiles registers each file under dir. Failures are collected and do
// not stop the import.
func importProfiles(ctx context.Context, store *profiles.Store, dir string, files []string, progress func()) ImportResult {
	var result ImportResult
	for _, name := range files {
		if ctx.Err() != nil {
			break
		}
		err := importOne(store, filepath.Join(dir, name))
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Imported++
		}
		progress()
	}
	return result
}

func importOne(store *profiles.Store, path string) error {
	data, err := readUsablePhoto(path)
	if err != nil {
		return err
	}
	if _, err := store.Save(profiles.IdentityFromFilename(path), data); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

func runProfilesRemove(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Delete(args[0]); err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return fmt.Errorf("no profile registered for %q", args[0])
		}
		return err
	}
	fmt.Printf("Removed %s\n", profiles.CleanName(args[0]))
	return nil
}
