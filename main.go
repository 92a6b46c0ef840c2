package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"insight-hrm/internal/backup"
	"insight-hrm/internal/config"
	"insight-hrm/internal/handler"
	"insight-hrm/internal/storage"
	"insight-hrm/internal/store"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "insight-hrm",
		Short: "HR roster, budget and compensation simulation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "export [file]",
			Short: "Write a backup JSON file",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out := "insight-hrm-backup.json"
				if len(args) == 1 {
					out = args[0]
				}
				return runExport(out)
			},
		},
		&cobra.Command{
			Use:   "import <file>",
			Short: "Restore data from a backup JSON file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImport(args[0])
			},
		},
		&cobra.Command{
			Use:   "cleanup",
			Short: "Remove duplicate members across all years",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCleanup()
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore(cfg config.Config, log *zap.Logger) (*store.Store, storage.Backend, error) {
	var backend storage.Backend
	switch cfg.Backend {
	case config.BackendMemory:
		backend = storage.NewMemoryBackend()
	default:
		b, err := storage.NewSQLiteBackend(cfg.DataPath)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening database")
		}
		backend = b
	}
	return store.Open(backend, log), backend, nil
}

func runServe() error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	st, backend, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	// Stale duplicates from older installs are swept once at startup.
	removed, err := st.CleanupDuplicateMembers()
	if err != nil {
		return errors.Wrap(err, "startup cleanup")
	}
	if removed > 0 {
		log.Info("removed duplicate members at startup", zap.Int("count", removed))
	}

	srv := handler.New(st, log)
	log.Info("listening",
		zap.String("port", cfg.Port),
		zap.String("backend", cfg.Backend),
		zap.Int("currentYear", st.CurrentYear()))
	return fasthttp.ListenAndServe(":"+cfg.Port, srv.Handle)
}

func runExport(path string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	st, backend, err := openStore(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer backend.Close()

	years, evals := st.Snapshot()
	raw, err := backup.Export(years, evals)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	fmt.Printf("exported %d year(s) to %s\n", len(years), path)
	return nil
}

func runImport(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	file, err := backup.Parse(raw)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	st, backend, err := openStore(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer backend.Close()

	// Only sections present in the file overwrite stored data.
	if file.Data.Main != nil {
		if err := st.RestoreMain(file.Data.Main); err != nil {
			return err
		}
	}
	if file.Data.YearlyEvaluations != nil {
		if err := st.RestoreEvaluations(file.Data.YearlyEvaluations); err != nil {
			return err
		}
	}
	fmt.Printf("restored %d year(s) from %s\n", len(file.Data.Main), path)
	return nil
}

func runCleanup() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	st, backend, err := openStore(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer backend.Close()

	removed, err := st.CleanupDuplicateMembers()
	if err != nil {
		return err
	}
	fmt.Printf("removed %d duplicate member(s)\n", removed)
	return nil
}
