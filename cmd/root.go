package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nilabh/campusmate/internal/account"
	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/config"
	"github.com/nilabh/campusmate/internal/logging"
	"github.com/nilabh/campusmate/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "campusmate",
	Short: "Campus learning assistant in your terminal",
	Long:  "CampusMate — practice adaptive quizzes on your own study material, ask questions about it, and track progress, all from the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CAMPUSMATE_DB env var)")
	rootCmd.PersistentFlags().String("api", "", "Backend base URL (overrides CAMPUSMATE_API_URL env var)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// env assembles the shared services used by every command.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	store   *store.Store
	manager *account.Manager
	client  *api.Client
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.log != nil {
		_ = e.log.Sync()
	}
}

func buildEnv(cmd *cobra.Command) (*env, error) {
	cfg := config.FromEnv()
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		cfg.APIBaseURL = u
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logFile, err := cfg.ResolveLogFile()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logFile, cfg.LogEnabled)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sessionPath, err := account.DefaultSessionPath()
	if err != nil {
		st.Close()
		return nil, err
	}
	manager, err := account.NewManager(sessionPath)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	client := api.New(cfg.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithTokenSource(manager),
		api.WithLogger(log.Named("api")),
	)

	return &env{
		cfg:     cfg,
		log:     log,
		store:   st,
		manager: manager,
		client:  client,
	}, nil
}
