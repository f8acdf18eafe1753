package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
	"quill/internal/project"
)

var (
	checkFailFast bool
	checkJobs     int
	checkNoCache  bool
)

var errCheckFailed = errors.New("check failed")

func init() {
	checkCmd.Flags().BoolVar(&checkFailFast, "fail-fast", false, "stop at the first failed declaration")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "parse parallelism (0 = number of CPUs)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "skip the on-disk result cache")
	checkCmd.SilenceErrors = true
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check declarations under a directory or the project roots",
	Long: `Check parses every .ql file under the given path (or the [build].roots of
the nearest quill.toml) and runs declaration resolution over the combined tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
	// The diagnostics are the error report; cobra's own echo would
	// duplicate them.
	SilenceUsage: true,
}

func runCheck(cmd *cobra.Command, args []string) error {
	colored := configureColor(cmd)

	roots, opts, err := resolveCheckConfig(cmd, args)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if !checkNoCache {
		// A broken cache never blocks a check.
		cache, _ = driver.OpenDiskCache("quill")
	}

	hadErrors := false
	for _, root := range roots {
		failed, err := checkRoot(cmd, root, opts, cache, colored)
		if err != nil {
			return err
		}
		hadErrors = hadErrors || failed
	}
	if hadErrors {
		return errCheckFailed
	}
	return nil
}

func checkRoot(cmd *cobra.Command, root string, opts driver.Options, cache *driver.DiskCache, colored bool) (bool, error) {
	if cache != nil {
		if fileSet, err := driver.LoadDir(root); err == nil {
			key := driver.TreeDigest(fileSet)
			var payload driver.CheckPayload
			if hit, err := cache.Get(key, &payload); err == nil && hit {
				fmt.Fprint(cmd.OutOrStdout(), payload.Rendered)
				return payload.HadErrors, nil
			}
		}
	}

	result, err := driver.CheckDir(cmd.Context(), root, opts)
	if err != nil {
		return false, err
	}

	rendered := renderBag(result, colored)
	fmt.Fprint(cmd.OutOrStdout(), rendered)

	if cache != nil {
		// Cache the uncolored rendering so a hit can replay into any
		// terminal.
		plain := renderBag(result, false)
		_ = cache.Put(driver.TreeDigest(result.FileSet), &driver.CheckPayload{
			Rendered:  plain,
			HadErrors: result.HasErrors(),
			Includes:  result.Includes,
		})
	}
	return result.HasErrors(), nil
}

func renderBag(result *driver.Result, colored bool) string {
	var sb strings.Builder
	diagfmt.Pretty(&sb, result.Bag, result.FileSet, diagfmt.PrettyOpts{
		Color:      colored,
		ShowNotes:  true,
		ShowSource: true,
	})
	return sb.String()
}

func resolveCheckConfig(cmd *cobra.Command, args []string) ([]string, driver.Options, error) {
	maxDiags, _ := cmd.Flags().GetInt("max-diagnostics")

	if len(args) == 1 {
		if maxDiags <= 0 {
			maxDiags = project.DefaultMaxDiagnostics
		}
		return []string{args[0]}, driver.Options{
			MaxDiagnostics: maxDiags,
			Jobs:           checkJobs,
			FailFast:       checkFailFast,
		}, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, driver.Options{}, err
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return nil, driver.Options{}, err
	}
	if !ok {
		return nil, driver.Options{}, errors.New("no quill.toml found; specify a path, e.g. quill check src")
	}

	roots := make([]string, 0, len(manifest.Config.Roots()))
	for _, r := range manifest.Config.Roots() {
		roots = append(roots, filepath.Join(manifest.Root, filepath.FromSlash(r)))
	}
	if maxDiags <= 0 {
		maxDiags = manifest.Config.MaxDiagnostics()
	}
	failFast := checkFailFast || manifest.Config.Diagnostics.FailFast
	return roots, driver.Options{
		MaxDiagnostics: maxDiags,
		Jobs:           checkJobs,
		FailFast:       failFast,
	}, nil
}
