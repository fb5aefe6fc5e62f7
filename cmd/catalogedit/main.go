// catalogedit opens a terminal editor for one catalog product.
//
//	catalogedit edit <product-id>
//	catalogedit signin <vendor-id>
//	catalogedit signout
//	catalogedit whoami
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jask/catalogedit/internal/api"
	"github.com/jask/catalogedit/internal/config"
	"github.com/jask/catalogedit/internal/logging"
	"github.com/jask/catalogedit/internal/session"
	"github.com/jask/catalogedit/internal/tui"
)

const confirmWindow = 2 * time.Second

var errUsage = errors.New("usage: catalogedit [--config path] edit <product-id> | signin <vendor-id> | signout | whoami")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var configPath string
	var baseURL string

	flagSet := pflag.NewFlagSet("catalogedit", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to config.toml")
	flagSet.StringVar(&baseURL, "api", "", "catalog backend base URL (overrides api.base_url)")
	flagSet.BoolP("help", "h", false, "show help")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprintln(out, errUsage.Error())
		fmt.Fprint(out, flagSet.FlagUsages())
		return nil
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		return errUsage
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	sess := session.NewFileStore(cfg.Session.Path)

	switch rest[0] {
	case "signin":
		if len(rest) != 2 {
			return errUsage
		}
		if err := sess.SignIn(rest[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "signed in as %s\n", rest[1])
		return nil
	case "signout":
		if err := sess.SignOut(); err != nil {
			return err
		}
		fmt.Fprintln(out, "signed out")
		return nil
	case "whoami":
		if actor, ok := sess.ActorID(); ok {
			fmt.Fprintln(out, actor)
			return nil
		}
		return errors.New("not signed in")
	case "edit":
		if len(rest) != 2 {
			return errUsage
		}
		return edit(cfg, sess, rest[1], out)
	}
	return errUsage
}

func edit(cfg config.Config, sess *session.FileStore, productID string, out io.Writer) error {
	// The TUI owns the terminal, so logs only go to the file.
	logger, err := logging.Setup(cfg.Log, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("editor starting", zap.String("product_id", productID), zap.String("api", cfg.API.BaseURL))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := api.New(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout), api.WithLogger(logger))
	app := tui.New(ctx, tui.Options{
		ProductID:     productID,
		Store:         client,
		Session:       sess,
		Logger:        logger,
		ConfirmDelete: cfg.UI.ConfirmDelete,
		ConfirmWindow: confirmWindow,
		NoticeTimeout: cfg.UI.NoticeTimeout,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	logger.Info("editor finished", zap.Stringer("outcome", app.Outcome()))
	fmt.Fprintf(out, "product %s: %s\n", productID, app.Outcome())
	if n := app.Notice(); n.Visible && app.Outcome() != tui.OutcomeCancelled {
		fmt.Fprintln(out, n.Message)
	}
	return nil
}
