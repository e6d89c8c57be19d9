package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"
	"github.com/deemkeen/disclosures/catalog"
	"github.com/deemkeen/disclosures/db"
	"github.com/deemkeen/disclosures/middleware"
	"github.com/deemkeen/disclosures/util"
	"github.com/deemkeen/disclosures/web"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	exportOut   string
	resetYes    bool
)

var rootCmd = &cobra.Command{
	Use:   util.Name,
	Short: "Mandatory customer disclosures over SSH and HTTP",
	Long: `disclosures serves the mandatory information blocks agents read out to
customers. Readers connect over SSH or the web; admins manage blocks,
categories and pages from the terminal UI.

Run without a subcommand to start the servers.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("%s v%s\n", util.Name, util.GetVersion())
			return nil
		}
		return runServe()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in blocks, categories and pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return errors.New("reset deletes all changes; run again with --yes to confirm")
		}
		svc, err := openCatalog()
		if err != nil {
			return err
		}
		svc.ResetAll()
		fmt.Println("All data was reset to the defaults.")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write blocks, categories and pages as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openCatalog()
		if err != nil {
			return err
		}
		export := svc.Export()
		out, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding export: %w", err)
		}
		if exportOut == "" || exportOut == "-" {
			fmt.Println(string(out))
			return nil
		}
		if err := os.WriteFile(exportOut, append(out, '\n'), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOut, err)
		}
		log.Printf("Exported %d blocks to %s", len(export.Blocks), exportOut)
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print the version and exit")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm the reset")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(serveCmd, resetCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*util.AppConfig, error) {
	conf, err := util.ReadConf()
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	util.SetupLogging(conf)
	return conf, nil
}

func openCatalog() (*catalog.Service, error) {
	conf, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalogFor(conf), nil
}

func catalogFor(conf *util.AppConfig) *catalog.Service {
	db.Driver = conf.Conf.DbDriver
	db.Path = util.ResolveFilePath(conf.Conf.DbPath)
	return catalog.NewService(db.NewStore(db.GetDB()))
}

func runServe() error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	log.Printf("Starting %s", util.GetNameAndVersion())
	log.Printf("Configuration: ")
	log.Println(util.PrettyPrint(conf))

	svc := catalogFor(conf)
	defer db.GetDB().Close()

	hostKey := filepath.Join(filepath.Dir(util.ResolveFilePath(util.ConfigFileName)), ".ssh", "disclosures_ed25519")
	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(conf.Conf.Host, strconv.Itoa(conf.Conf.SshPort))),
		wish.WithHostKeyPath(hostKey),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		}),
		wish.WithMiddleware(
			middleware.MainTui(conf, svc),
			middleware.AuthMiddleware(conf),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("creating ssh server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting SSH server on %s:%d", conf.Conf.Host, conf.Conf.SshPort)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Printf("SSH server stopped: %v", err)
			done <- syscall.SIGTERM
		}
	}()

	if !conf.Conf.SshOnly {
		go func() {
			if err := web.Router(conf, svc); err != nil {
				log.Printf("HTTP server stopped: %v", err)
				done <- syscall.SIGTERM
			}
		}()
	} else {
		log.Printf("sshOnly is set, not starting the HTTP server")
	}

	<-done
	log.Println("Stopping servers")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutting down ssh server: %w", err)
	}
	return nil
}
